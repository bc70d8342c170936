// Package storage is the record-store boundary. The production implementation
// is MongoDB; tests use the in-memory implementation. The store is a plain
// document interface: no joins, no cross-document transactions. Ownership is
// modeled by parent-id fields, so a point lookup for an owned document always
// filters on (id, parent id) and documents of other parents stay invisible.
package storage

import (
	"context"

	"edumatch-server/models"
)

type Store interface {
	// Students.
	InsertStudent(ctx context.Context, s *models.Student) error
	GetStudent(ctx context.Context, id string) (*models.Student, error)
	// FindStudentByAuthUID resolves the auth provider's opaque identity to a
	// student document through the auth_uid lookup field.
	FindStudentByAuthUID(ctx context.Context, uid string) (*models.Student, error)
	// ListStudentIDs supports the legacy owner scan in reconciliation.
	ListStudentIDs(ctx context.Context) ([]string, error)

	// Colleges and their owned catalogs.
	InsertCollege(ctx context.Context, c *models.College) error
	GetCollege(ctx context.Context, id string) (*models.College, error)
	InsertCourse(ctx context.Context, c *models.Course) error
	InsertQuestion(ctx context.Context, q *models.Question) error
	QuestionsByCollege(ctx context.Context, collegeID string) ([]models.Question, error)
	// FindQuestion looks a question up without a college scope. Only the
	// degraded path for college-less legacy tests uses it.
	FindQuestion(ctx context.Context, id string) (*models.Question, error)

	// Aptitude tests.
	InsertTest(ctx context.Context, t *models.AptitudeTest) error
	GetTest(ctx context.Context, id string) (*models.AptitudeTest, error)
	ListElectiveTests(ctx context.Context) ([]models.AptitudeTest, error)

	// Applications. InsertApplication also records the application's owner in
	// the application_index collection; an index row that failed to land is
	// tolerated because reconciliation falls back to scanning students.
	InsertApplication(ctx context.Context, a *models.Application) error
	GetApplication(ctx context.Context, studentID, applicationID string) (*models.Application, error)
	// ApplicationsByStudent filters by status when status is non-empty.
	ApplicationsByStudent(ctx context.Context, studentID string, status models.ApplicationStatus) ([]models.Application, error)
	SetApplicationStatus(ctx context.Context, studentID, applicationID string, status models.ApplicationStatus) error
	// LookupApplicationOwner resolves an application id to its student id via
	// the index; ErrNotFound means the index has no row, not that the
	// application does not exist.
	LookupApplicationOwner(ctx context.Context, applicationID string) (string, error)
	// ApplyTestOutcome writes the embedded result snapshot and the new status
	// onto the application in a single document update.
	ApplyTestOutcome(ctx context.Context, studentID, applicationID string, snapshot models.TestResultSnapshot, status models.ApplicationStatus) error

	// Test results. InsertResult enforces uniqueness over
	// (test_id, student_id, application_id) and returns ErrDuplicateResult on
	// a repeat submission.
	InsertResult(ctx context.Context, r *models.TestResult) error
	ResultsByStudent(ctx context.Context, studentID string) ([]models.TestResult, error)
}
