package models

import "time"

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	// ApplicationRejected is reached only through direct reviewer action.
	ApplicationRejected ApplicationStatus = "rejected"
	// ApplicationDeclined is the terminal state a failed aptitude test forces.
	ApplicationDeclined ApplicationStatus = "declined"
)

// TestResultSnapshot is the copy of a graded outcome embedded on the owning
// application. Once present it is authoritative for "this application's test
// obligation is discharged" and blocks re-assignment.
type TestResultSnapshot struct {
	Score       int       `bson:"score" json:"score"`
	Passed      bool      `bson:"passed" json:"passed"`
	CompletedAt time.Time `bson:"completed_at" json:"completedAt"`
}

type Application struct {
	ID             string              `bson:"_id,omitempty" json:"id"`
	StudentID      string              `bson:"student_id" json:"studentId"`
	CollegeID      string              `bson:"college_id" json:"collegeId"`
	CourseID       string              `bson:"course_id" json:"courseId"`
	Status         ApplicationStatus   `bson:"status" json:"status"`
	AptitudeTestID string              `bson:"aptitude_test_id,omitempty" json:"aptitudeTestId,omitempty"`
	TestResult     *TestResultSnapshot `bson:"test_result,omitempty" json:"testResult,omitempty"`
	CreatedAt      time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updated_at" json:"updatedAt"`
}
