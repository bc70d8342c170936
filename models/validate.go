package models

import (
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(questionStructLevel, Question{})
	return v
}

// questionStructLevel enforces the option invariants that tag-based rules
// cannot express: a single-choice question has exactly one correct option,
// a multi-choice question at least one.
func questionStructLevel(sl validator.StructLevel) {
	q := sl.Current().Interface().(Question)
	correct := 0
	for _, opt := range q.Options {
		if opt.Correct {
			correct++
		}
	}
	switch q.Type {
	case QuestionSingleChoice:
		if correct != 1 {
			sl.ReportError(q.Options, "Options", "options", "onecorrect", "")
		}
	case QuestionMultiChoice:
		if correct == 0 {
			sl.ReportError(q.Options, "Options", "options", "anycorrect", "")
		}
	}
}

// ValidateQuestion checks a question against its declared invariants.
func ValidateQuestion(q *Question) error {
	return validate.Struct(q)
}
