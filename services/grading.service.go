package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"edumatch-server/apperrors"
	"edumatch-server/models"
	"edumatch-server/storage"
)

// Grader resolves a test's question set, scores submitted answers against the
// answer keys, and persists an immutable result.
type Grader struct {
	Store storage.Store
	// Strict fails GetQuestions when a referenced question id cannot be
	// resolved. The default (false) silently drops such ids: they contribute
	// to neither the numerator nor the denominator of the score.
	Strict     bool
	Reconciler *Reconciler
}

func NewGrader(store storage.Store, reconciler *Reconciler, strict bool) *Grader {
	return &Grader{Store: store, Strict: strict, Reconciler: reconciler}
}

// GradeOutcome is what a submission returns: the persisted result plus, when
// the submission was tied to an application, the reconciliation outcome.
type GradeOutcome struct {
	Result         *models.TestResult `json:"result"`
	Reconciliation *ReconcileOutcome  `json:"reconciliation,omitempty"`
}

// GetQuestions resolves the question documents a test references. Lookup is
// scoped to the test's owning college, so ids pointing at another college's
// questions do not resolve. Tests without a college id are legacy data and
// fall back to the flat question store.
func (g *Grader) GetQuestions(ctx context.Context, testID string) ([]models.Question, error) {
	test, err := g.Store.GetTest(ctx, testID)
	if err != nil {
		return nil, err
	}

	if test.CollegeID == "" {
		return g.questionsFlat(ctx, test)
	}

	pool, err := g.Store.QuestionsByCollege(ctx, test.CollegeID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Question, len(pool))
	for _, q := range pool {
		byID[q.ID] = q
	}

	questions := make([]models.Question, 0, len(test.QuestionIDs))
	for _, id := range test.QuestionIDs {
		q, ok := byID[id]
		if !ok {
			if g.Strict {
				return nil, fmt.Errorf("test %s: %w", testID, apperrors.NewNotFound("question", id))
			}
			continue
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (g *Grader) questionsFlat(ctx context.Context, test *models.AptitudeTest) ([]models.Question, error) {
	questions := make([]models.Question, 0, len(test.QuestionIDs))
	for _, id := range test.QuestionIDs {
		q, err := g.Store.FindQuestion(ctx, id)
		if err != nil {
			if apperrors.IsNotFound(err) {
				if g.Strict {
					return nil, fmt.Errorf("test %s: %w", test.ID, err)
				}
				continue
			}
			return nil, err
		}
		questions = append(questions, *q)
	}
	return questions, nil
}

// GradeAndSave scores a submission, appends an immutable result row, and,
// when the submission discharges an application's test obligation, reconciles
// that application's status.
func (g *Grader) GradeAndSave(ctx context.Context, testID, studentID string, answers models.AnswerSet, applicationID string) (*GradeOutcome, error) {
	questions, err := g.GetQuestions(ctx, testID)
	if err != nil {
		return nil, err
	}

	correct, total := scoreAnswers(questions, answers)
	score := 0
	if total > 0 {
		score = int(math.Round(float64(correct*100) / float64(total)))
	}

	result := &models.TestResult{
		TestID:        testID,
		StudentID:     studentID,
		ApplicationID: applicationID,
		Score:         score,
		Passed:        score >= PassThreshold,
		Answers:       answers,
		CompletedAt:   time.Now().UTC(),
	}
	if err := g.Store.InsertResult(ctx, result); err != nil {
		return nil, err
	}

	outcome := &GradeOutcome{Result: result}
	if applicationID != "" {
		rec, err := g.Reconciler.Reconcile(ctx, applicationID, score)
		if err != nil {
			return nil, fmt.Errorf("result %s saved but reconciliation failed: %w", result.ID, err)
		}
		outcome.Reconciliation = rec
	}
	return outcome, nil
}

// scoreAnswers applies the deterministic, no-partial-credit scoring rules.
// Single choice: the one submitted option id must equal the one correct id.
// Multi choice: the submitted set must equal the correct set exactly.
// Any other question type is not auto-gradable and counts toward nothing.
func scoreAnswers(questions []models.Question, answers models.AnswerSet) (correct, total int) {
	for _, q := range questions {
		switch q.Type {
		case models.QuestionSingleChoice:
			total++
			keys := q.CorrectOptionIDs()
			selected := answers.Selected(q.ID)
			if len(keys) == 1 && len(selected) == 1 && selected[0] == keys[0] {
				correct++
			}
		case models.QuestionMultiChoice:
			total++
			if sameSet(answers.Selected(q.ID), q.CorrectOptionIDs()) {
				correct++
			}
		}
	}
	return correct, total
}

func sameSet(submitted, expected []string) bool {
	if len(expected) == 0 {
		return false
	}
	set := make(map[string]bool, len(submitted))
	for _, id := range submitted {
		set[id] = true
	}
	if len(set) != len(expected) {
		return false
	}
	for _, id := range expected {
		if !set[id] {
			return false
		}
	}
	return true
}
