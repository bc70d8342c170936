package models

import "time"

// AnswerSet is the raw answer map the UI submits: question id to a selected
// option id or list of option ids. It arrives unvalidated; malformed entries
// are treated as incorrect answers rather than errors.
type AnswerSet map[string]any

// Selected normalizes the entry for a question to a list of option ids.
// Missing or malformed entries yield nil.
func (a AnswerSet) Selected(questionID string) []string {
	v, ok := a[questionID]
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case string:
		return []string{t}
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil
			}
			out = append(out, s)
		}
		return out
	default:
		return nil
	}
}

// TestResult is an immutable fact row recording one graded attempt. It
// references the test and student by id only; nothing cascades to it.
type TestResult struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	TestID        string    `bson:"test_id" json:"testId"`
	StudentID     string    `bson:"student_id" json:"studentId"`
	ApplicationID string    `bson:"application_id,omitempty" json:"applicationId,omitempty"`
	Score         int       `bson:"score" json:"score"`
	Passed        bool      `bson:"passed" json:"passed"`
	Answers       AnswerSet `bson:"answers,omitempty" json:"answers,omitempty"`
	CompletedAt   time.Time `bson:"completed_at" json:"completedAt"`
}
