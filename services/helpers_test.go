package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"edumatch-server/models"
	"edumatch-server/storage"
)

type env struct {
	store      *storage.Memory
	catalog    *Catalog
	resolver   *Resolver
	reconciler *Reconciler
	grader     *Grader
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := storage.NewMemory()
	reconciler := NewReconciler(store)
	return &env{
		store:      store,
		catalog:    NewCatalog(store),
		resolver:   NewResolver(store),
		reconciler: reconciler,
		grader:     NewGrader(store, reconciler, false),
	}
}

func (e *env) seedStudent(t *testing.T, id string) {
	t.Helper()
	err := e.store.InsertStudent(context.Background(), &models.Student{ID: id, Name: "Student " + id})
	require.NoError(t, err)
}

func (e *env) seedCollege(t *testing.T, id, name string) {
	t.Helper()
	err := e.store.InsertCollege(context.Background(), &models.College{ID: id, Name: name})
	require.NoError(t, err)
}

func (e *env) seedQuestion(t *testing.T, q models.Question) {
	t.Helper()
	require.NoError(t, e.store.InsertQuestion(context.Background(), &q))
}

func (e *env) seedTest(t *testing.T, test models.AptitudeTest) {
	t.Helper()
	require.NoError(t, e.store.InsertTest(context.Background(), &test))
}

func (e *env) seedApplication(t *testing.T, app models.Application) {
	t.Helper()
	require.NoError(t, e.store.InsertApplication(context.Background(), &app))
}

func (e *env) seedResult(t *testing.T, r models.TestResult) {
	t.Helper()
	require.NoError(t, e.store.InsertResult(context.Background(), &r))
}

// singleChoice builds a single-choice question whose first option is the
// correct one; remaining option ids are wrong answers.
func singleChoice(id, collegeID, correctOpt string, wrongOpts ...string) models.Question {
	opts := []models.Option{{ID: correctOpt, Text: correctOpt, Correct: true}}
	for _, w := range wrongOpts {
		opts = append(opts, models.Option{ID: w, Text: w})
	}
	return models.Question{
		ID:        id,
		CollegeID: collegeID,
		Text:      "question " + id,
		Type:      models.QuestionSingleChoice,
		Options:   opts,
	}
}

func multiChoice(id, collegeID string, correctOpts []string, wrongOpts ...string) models.Question {
	var opts []models.Option
	for _, c := range correctOpts {
		opts = append(opts, models.Option{ID: c, Text: c, Correct: true})
	}
	for _, w := range wrongOpts {
		opts = append(opts, models.Option{ID: w, Text: w})
	}
	return models.Question{
		ID:        id,
		CollegeID: collegeID,
		Text:      "question " + id,
		Type:      models.QuestionMultiChoice,
		Options:   opts,
	}
}

func textQuestion(id, collegeID string) models.Question {
	return models.Question{
		ID:        id,
		CollegeID: collegeID,
		Text:      "question " + id,
		Type:      models.QuestionText,
	}
}
