package services

import (
	"context"
	"fmt"
	"time"

	"edumatch-server/apperrors"
	"edumatch-server/models"
	"edumatch-server/storage"
)

// Catalog carries the management operations the portal needs to populate the
// store: students, colleges and their courses/questions, tests, and
// applications with their reviewer transitions.
type Catalog struct {
	Store storage.Store
}

func NewCatalog(store storage.Store) *Catalog {
	return &Catalog{Store: store}
}

func (c *Catalog) CreateStudent(ctx context.Context, s *models.Student) error {
	if s.Name == "" {
		return fmt.Errorf("%w: student name is required", apperrors.ErrInvalidInput)
	}
	s.CreatedAt = time.Now().UTC()
	return c.Store.InsertStudent(ctx, s)
}

func (c *Catalog) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	return c.Store.GetStudent(ctx, id)
}

// ResolveStudentByAuthUID maps the auth provider's opaque identity to a
// student document. The identity is never assumed to equal the document id.
func (c *Catalog) ResolveStudentByAuthUID(ctx context.Context, uid string) (*models.Student, error) {
	if uid == "" {
		return nil, fmt.Errorf("%w: missing auth identity", apperrors.ErrInvalidInput)
	}
	return c.Store.FindStudentByAuthUID(ctx, uid)
}

func (c *Catalog) CreateCollege(ctx context.Context, college *models.College) error {
	if college.Name == "" {
		return fmt.Errorf("%w: college name is required", apperrors.ErrInvalidInput)
	}
	return c.Store.InsertCollege(ctx, college)
}

func (c *Catalog) GetCollege(ctx context.Context, id string) (*models.College, error) {
	return c.Store.GetCollege(ctx, id)
}

func (c *Catalog) CreateCourse(ctx context.Context, collegeID string, course *models.Course) error {
	if _, err := c.Store.GetCollege(ctx, collegeID); err != nil {
		return err
	}
	course.CollegeID = collegeID
	return c.Store.InsertCourse(ctx, course)
}

func (c *Catalog) CreateQuestion(ctx context.Context, collegeID string, q *models.Question) error {
	if _, err := c.Store.GetCollege(ctx, collegeID); err != nil {
		return err
	}
	q.CollegeID = collegeID
	if err := models.ValidateQuestion(q); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return c.Store.InsertQuestion(ctx, q)
}

func (c *Catalog) QuestionsByCollege(ctx context.Context, collegeID string) ([]models.Question, error) {
	if _, err := c.Store.GetCollege(ctx, collegeID); err != nil {
		return nil, err
	}
	return c.Store.QuestionsByCollege(ctx, collegeID)
}

// CreateTest stores an aptitude test. Question ids are not verified here:
// ids outside the owning college stay invisible to lookup and are dropped at
// grading time.
func (c *Catalog) CreateTest(ctx context.Context, t *models.AptitudeTest) error {
	if t.Title == "" {
		return fmt.Errorf("%w: test title is required", apperrors.ErrInvalidInput)
	}
	if t.CollegeID != "" {
		if _, err := c.Store.GetCollege(ctx, t.CollegeID); err != nil {
			return err
		}
	}
	return c.Store.InsertTest(ctx, t)
}

func (c *Catalog) GetTest(ctx context.Context, id string) (*models.AptitudeTest, error) {
	return c.Store.GetTest(ctx, id)
}

func (c *Catalog) CreateApplication(ctx context.Context, studentID string, app *models.Application) error {
	if _, err := c.Store.GetStudent(ctx, studentID); err != nil {
		return err
	}
	app.StudentID = studentID
	if app.Status == "" {
		app.Status = models.ApplicationPending
	}
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now
	return c.Store.InsertApplication(ctx, app)
}

func (c *Catalog) ApplicationsByStudent(ctx context.Context, studentID string) ([]models.Application, error) {
	if _, err := c.Store.GetStudent(ctx, studentID); err != nil {
		return nil, err
	}
	return c.Store.ApplicationsByStudent(ctx, studentID, "")
}

// ReviewApplication applies a reviewer decision. Only pending applications
// can be approved or rejected; test outcomes own the approved -> declined
// transition and are not available here.
func (c *Catalog) ReviewApplication(ctx context.Context, studentID, applicationID string, status models.ApplicationStatus) error {
	if status != models.ApplicationApproved && status != models.ApplicationRejected {
		return fmt.Errorf("%w: reviewer can only approve or reject", apperrors.ErrInvalidInput)
	}
	app, err := c.Store.GetApplication(ctx, studentID, applicationID)
	if err != nil {
		return err
	}
	if app.Status != models.ApplicationPending {
		return fmt.Errorf("%w: application is %s, only pending applications can be reviewed",
			apperrors.ErrInvalidInput, app.Status)
	}
	return c.Store.SetApplicationStatus(ctx, studentID, applicationID, status)
}
