package models

type QuestionType string

const (
	QuestionSingleChoice QuestionType = "single"
	QuestionMultiChoice  QuestionType = "multiple"
	// QuestionText is not auto-gradable and never contributes to a score.
	QuestionText QuestionType = "text"
)

type Option struct {
	ID      string `bson:"id" json:"id" validate:"required"`
	Text    string `bson:"text" json:"text"`
	Correct bool   `bson:"correct" json:"correct"`
}

// Question belongs to exactly one college. Tests from other colleges cannot
// see it: question lookup is always scoped by college id.
type Question struct {
	ID         string       `bson:"_id,omitempty" json:"id"`
	CollegeID  string       `bson:"college_id" json:"collegeId"`
	Text       string       `bson:"text" json:"text" validate:"required"`
	Type       QuestionType `bson:"type" json:"type" validate:"required,oneof=single multiple text"`
	Options    []Option     `bson:"options,omitempty" json:"options,omitempty" validate:"dive"`
	Difficulty string       `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	Topics     []string     `bson:"topics,omitempty" json:"topics,omitempty"`
}

// CorrectOptionIDs returns the ids of the options flagged correct, in
// document order.
func (q *Question) CorrectOptionIDs() []string {
	var ids []string
	for _, opt := range q.Options {
		if opt.Correct {
			ids = append(ids, opt.ID)
		}
	}
	return ids
}
