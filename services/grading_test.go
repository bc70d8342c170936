package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edumatch-server/apperrors"
	"edumatch-server/models"
)

func TestGradeSingleChoice(t *testing.T) {
	e := newEnv(t)
	e.seedCollege(t, "col1", "Tech College")
	e.seedQuestion(t, singleChoice("q1", "col1", "a", "b", "c"))
	e.seedTest(t, models.AptitudeTest{ID: "t1", CollegeID: "col1", Title: "Basics", QuestionIDs: []string{"q1"}})

	cases := []struct {
		name      string
		answer    any
		wantScore int
	}{
		{"correct option", "a", 100},
		{"wrong option", "b", 0},
		{"no answer", nil, 0},
	}
	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			answers := models.AnswerSet{}
			if tc.answer != nil {
				answers["q1"] = tc.answer
			}
			student := fmt.Sprintf("s%d", i)
			outcome, err := e.grader.GradeAndSave(context.Background(), "t1", student, answers, "")
			require.NoError(t, err)
			assert.Equal(t, tc.wantScore, outcome.Result.Score)
		})
	}
}

func TestGradeMultiChoiceExactness(t *testing.T) {
	e := newEnv(t)
	e.seedCollege(t, "col1", "Tech College")
	e.seedQuestion(t, multiChoice("q1", "col1", []string{"a", "c"}, "b", "d"))
	e.seedTest(t, models.AptitudeTest{ID: "t1", CollegeID: "col1", Title: "Basics", QuestionIDs: []string{"q1"}})

	cases := []struct {
		name      string
		answer    []string
		wantScore int
	}{
		{"subset misses", []string{"a"}, 0},
		{"superset misses", []string{"a", "b", "c"}, 0},
		{"extra option misses", []string{"a", "c", "d"}, 0},
		{"exact set scores", []string{"a", "c"}, 100},
		{"order does not matter", []string{"c", "a"}, 100},
	}
	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			student := fmt.Sprintf("s%d", i)
			outcome, err := e.grader.GradeAndSave(context.Background(), "t1", student,
				models.AnswerSet{"q1": tc.answer}, "")
			require.NoError(t, err)
			assert.Equal(t, tc.wantScore, outcome.Result.Score)
		})
	}
}

func TestGradeRoundsHalfUp(t *testing.T) {
	e := newEnv(t)
	e.seedCollege(t, "col1", "Tech College")
	answers := models.AnswerSet{"q1": "a"}
	var ids []string
	for i := 1; i <= 8; i++ {
		id := fmt.Sprintf("q%d", i)
		e.seedQuestion(t, singleChoice(id, "col1", "a", "b"))
		ids = append(ids, id)
	}
	e.seedTest(t, models.AptitudeTest{ID: "t1", CollegeID: "col1", Title: "Basics", QuestionIDs: ids})

	// 1 of 8 correct = 12.5, rounded half-up to 13.
	outcome, err := e.grader.GradeAndSave(context.Background(), "t1", "s1", answers, "")
	require.NoError(t, err)
	assert.Equal(t, 13, outcome.Result.Score)
}

func TestGradePassThreshold(t *testing.T) {
	e := newEnv(t)
	e.seedCollege(t, "col1", "Tech College")
	var ids []string
	for i := 1; i <= 5; i++ {
		id := fmt.Sprintf("q%d", i)
		e.seedQuestion(t, singleChoice(id, "col1", "a", "b"))
		ids = append(ids, id)
	}
	e.seedTest(t, models.AptitudeTest{ID: "t1", CollegeID: "col1", Title: "Basics", QuestionIDs: ids})

	// 3 of 5 = 60, exactly the threshold.
	outcome, err := e.grader.GradeAndSave(context.Background(), "t1", "s1",
		models.AnswerSet{"q1": "a", "q2": "a", "q3": "a", "q4": "b", "q5": "b"}, "")
	require.NoError(t, err)
	assert.Equal(t, 60, outcome.Result.Score)
	assert.True(t, outcome.Result.Passed)

	// 2 of 5 = 40, below it.
	outcome, err = e.grader.GradeAndSave(context.Background(), "t1", "s2",
		models.AnswerSet{"q1": "a", "q2": "a"}, "")
	require.NoError(t, err)
	assert.Equal(t, 40, outcome.Result.Score)
	assert.False(t, outcome.Result.Passed)
}

func TestGradeNoGradableQuestions(t *testing.T) {
	e := newEnv(t)
	e.seedCollege(t, "col1", "Tech College")
	e.seedQuestion(t, textQuestion("q1", "col1"))
	e.seedTest(t, models.AptitudeTest{ID: "t1", CollegeID: "col1", Title: "Essay", QuestionIDs: []string{"q1"}})

	outcome, err := e.grader.GradeAndSave(context.Background(), "t1", "s1",
		models.AnswerSet{"q1": "anything"}, "")
	require.NoError(t, err)
	assert.Equal(t, 0, outcome.Result.Score)
	assert.False(t, outcome.Result.Passed)
}

func TestGradeTextQuestionExcludedFromDenominator(t *testing.T) {
	e := newEnv(t)
	e.seedCollege(t, "col1", "Tech College")
	e.seedQuestion(t, singleChoice("q1", "col1", "a", "b"))
	e.seedQuestion(t, textQuestion("q2", "col1"))
	e.seedTest(t, models.AptitudeTest{ID: "t1", CollegeID: "col1", Title: "Mixed", QuestionIDs: []string{"q1", "q2"}})

	outcome, err := e.grader.GradeAndSave(context.Background(), "t1", "s1",
		models.AnswerSet{"q1": "a"}, "")
	require.NoError(t, err)
	assert.Equal(t, 100, outcome.Result.Score)
}

func TestGradeMalformedAnswersCountIncorrect(t *testing.T) {
	e := newEnv(t)
	e.seedCollege(t, "col1", "Tech College")
	e.seedQuestion(t, singleChoice("q1", "col1", "a", "b"))
	e.seedQuestion(t, singleChoice("q2", "col1", "a", "b"))
	e.seedTest(t, models.AptitudeTest{ID: "t1", CollegeID: "col1", Title: "Basics", QuestionIDs: []string{"q1", "q2"}})

	// Numbers and nested maps are what an unvalidated UI payload can carry.
	outcome, err := e.grader.GradeAndSave(context.Background(), "t1", "s1",
		models.AnswerSet{"q1": 42, "q2": map[string]any{"a": true}}, "")
	require.NoError(t, err)
	assert.Equal(t, 0, outcome.Result.Score)
}

func TestGradeCrossCollegeQuestionDropped(t *testing.T) {
	e := newEnv(t)
	e.seedCollege(t, "colX", "College X")
	e.seedCollege(t, "colY", "College Y")
	e.seedQuestion(t, singleChoice("qx", "colX", "a", "b"))
	e.seedQuestion(t, singleChoice("qy", "colY", "a", "b"))
	// Test owned by X references a question that only exists under Y.
	e.seedTest(t, models.AptitudeTest{ID: "t1", CollegeID: "colX", Title: "Mixed", QuestionIDs: []string{"qx", "qy"}})

	questions, err := e.grader.GetQuestions(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "qx", questions[0].ID)

	// The foreign question contributes to neither numerator nor denominator.
	outcome, err := e.grader.GradeAndSave(context.Background(), "t1", "s1",
		models.AnswerSet{"qx": "a", "qy": "a"}, "")
	require.NoError(t, err)
	assert.Equal(t, 100, outcome.Result.Score)
}

func TestGradeStrictModeFailsOnUnresolvedQuestion(t *testing.T) {
	e := newEnv(t)
	e.grader.Strict = true
	e.seedCollege(t, "colX", "College X")
	e.seedQuestion(t, singleChoice("qx", "colX", "a", "b"))
	e.seedTest(t, models.AptitudeTest{ID: "t1", CollegeID: "colX", Title: "Mixed", QuestionIDs: []string{"qx", "missing"}})

	_, err := e.grader.GetQuestions(context.Background(), "t1")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGradeCollegelessTestUsesFlatLookup(t *testing.T) {
	e := newEnv(t)
	e.seedCollege(t, "col1", "Tech College")
	e.seedQuestion(t, singleChoice("q1", "col1", "a", "b"))
	// Legacy test document without an owning college.
	e.seedTest(t, models.AptitudeTest{ID: "t1", Title: "Legacy", QuestionIDs: []string{"q1", "missing"}})

	questions, err := e.grader.GetQuestions(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, questions, 1)

	outcome, err := e.grader.GradeAndSave(context.Background(), "t1", "s1",
		models.AnswerSet{"q1": "a"}, "")
	require.NoError(t, err)
	assert.Equal(t, 100, outcome.Result.Score)
}

func TestGradeDuplicateSubmissionRejected(t *testing.T) {
	e := newEnv(t)
	e.seedCollege(t, "col1", "Tech College")
	e.seedQuestion(t, singleChoice("q1", "col1", "a", "b"))
	e.seedTest(t, models.AptitudeTest{ID: "t1", CollegeID: "col1", Title: "Basics", QuestionIDs: []string{"q1"}})

	_, err := e.grader.GradeAndSave(context.Background(), "t1", "s1", models.AnswerSet{"q1": "a"}, "")
	require.NoError(t, err)

	_, err = e.grader.GradeAndSave(context.Background(), "t1", "s1", models.AnswerSet{"q1": "b"}, "")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateResult)
}

func TestGradeMissingTest(t *testing.T) {
	e := newEnv(t)
	_, err := e.grader.GradeAndSave(context.Background(), "nope", "s1", models.AnswerSet{}, "")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGradeReconcilesLinkedApplication(t *testing.T) {
	e := newEnv(t)
	e.seedStudent(t, "s1")
	e.seedCollege(t, "col1", "Tech College")
	e.seedQuestion(t, singleChoice("q1", "col1", "a", "b"))
	e.seedTest(t, models.AptitudeTest{ID: "t1", CollegeID: "col1", Title: "Basics", QuestionIDs: []string{"q1"}})
	e.seedApplication(t, models.Application{
		ID: "app1", StudentID: "s1", CollegeID: "col1", CourseID: "c1",
		Status: models.ApplicationApproved, AptitudeTestID: "t1",
	})

	outcome, err := e.grader.GradeAndSave(context.Background(), "t1", "s1",
		models.AnswerSet{"q1": "b"}, "app1")
	require.NoError(t, err)
	require.NotNil(t, outcome.Reconciliation)
	assert.Equal(t, models.ApplicationApproved, outcome.Reconciliation.PreviousStatus)
	assert.Equal(t, models.ApplicationDeclined, outcome.Reconciliation.NewStatus)
	assert.False(t, outcome.Reconciliation.Passed)

	app, err := e.store.GetApplication(context.Background(), "s1", "app1")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationDeclined, app.Status)
	require.NotNil(t, app.TestResult)
	assert.Equal(t, 0, app.TestResult.Score)
}
