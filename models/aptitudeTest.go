package models

// AptitudeTest is owned by a college and references that college's questions
// by id. Ids pointing at questions of other colleges are invisible to lookup
// and get dropped at grading time. A test with an empty CollegeID is legacy
// data; its question ids are resolved through the flat question store instead.
type AptitudeTest struct {
	ID          string   `bson:"_id,omitempty" json:"id"`
	CollegeID   string   `bson:"college_id,omitempty" json:"collegeId,omitempty"`
	Title       string   `bson:"title" json:"title"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	QuestionIDs []string `bson:"question_ids" json:"questionIds"`
	// Elective tests are offered to every student, not tied to an application.
	Elective bool `bson:"elective,omitempty" json:"elective,omitempty"`
}
