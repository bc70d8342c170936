package storage

import (
	"context"
	"sync"
	"time"

	"edumatch-server/apperrors"
	"edumatch-server/models"
)

// Memory is the in-memory Store used by tests. It mirrors the document-store
// semantics: point lookups for owned documents require the owning parent id,
// and the result uniqueness rule matches the mongo index.
type Memory struct {
	mu           sync.RWMutex
	students     map[string]models.Student
	colleges     map[string]models.College
	courses      map[string]models.Course
	questions    map[string]models.Question
	tests        map[string]models.AptitudeTest
	applications map[string]models.Application
	appOwner     map[string]string
	results      []models.TestResult
}

func NewMemory() *Memory {
	return &Memory{
		students:     make(map[string]models.Student),
		colleges:     make(map[string]models.College),
		courses:      make(map[string]models.Course),
		questions:    make(map[string]models.Question),
		tests:        make(map[string]models.AptitudeTest),
		applications: make(map[string]models.Application),
		appOwner:     make(map[string]string),
	}
}

func (m *Memory) InsertStudent(_ context.Context, s *models.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = newID(s.ID)
	m.students[s.ID] = *s
	return nil
}

func (m *Memory) GetStudent(_ context.Context, id string) (*models.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.students[id]
	if !ok {
		return nil, apperrors.NewNotFound("student", id)
	}
	return &s, nil
}

func (m *Memory) FindStudentByAuthUID(_ context.Context, uid string) (*models.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.students {
		if s.AuthUID == uid {
			s := s
			return &s, nil
		}
	}
	return nil, apperrors.NewNotFound("student", uid)
}

func (m *Memory) ListStudentIDs(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.students))
	for id := range m.students {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *Memory) InsertCollege(_ context.Context, c *models.College) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = newID(c.ID)
	m.colleges[c.ID] = *c
	return nil
}

func (m *Memory) GetCollege(_ context.Context, id string) (*models.College, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.colleges[id]
	if !ok {
		return nil, apperrors.NewNotFound("college", id)
	}
	return &c, nil
}

func (m *Memory) InsertCourse(_ context.Context, c *models.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = newID(c.ID)
	m.courses[c.ID] = *c
	return nil
}

func (m *Memory) InsertQuestion(_ context.Context, q *models.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	q.ID = newID(q.ID)
	m.questions[q.ID] = *q
	return nil
}

func (m *Memory) QuestionsByCollege(_ context.Context, collegeID string) ([]models.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Question
	for _, q := range m.questions {
		if q.CollegeID == collegeID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *Memory) FindQuestion(_ context.Context, id string) (*models.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.questions[id]
	if !ok {
		return nil, apperrors.NewNotFound("question", id)
	}
	return &q, nil
}

func (m *Memory) InsertTest(_ context.Context, t *models.AptitudeTest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = newID(t.ID)
	m.tests[t.ID] = *t
	return nil
}

func (m *Memory) GetTest(_ context.Context, id string) (*models.AptitudeTest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tests[id]
	if !ok {
		return nil, apperrors.NewNotFound("test", id)
	}
	return &t, nil
}

func (m *Memory) ListElectiveTests(_ context.Context) ([]models.AptitudeTest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.AptitudeTest
	for _, t := range m.tests {
		if t.Elective {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *Memory) InsertApplication(_ context.Context, a *models.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = newID(a.ID)
	m.applications[a.ID] = *a
	m.appOwner[a.ID] = a.StudentID
	return nil
}

// ForgetOwner drops the owner index row for an application, simulating
// legacy rows written before the index existed. Tests only.
func (m *Memory) ForgetOwner(applicationID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.appOwner, applicationID)
}

func (m *Memory) GetApplication(_ context.Context, studentID, applicationID string) (*models.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.applications[applicationID]
	if !ok || a.StudentID != studentID {
		return nil, apperrors.NewNotFound("application", applicationID)
	}
	return &a, nil
}

func (m *Memory) ApplicationsByStudent(_ context.Context, studentID string, status models.ApplicationStatus) ([]models.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Application
	for _, a := range m.applications {
		if a.StudentID != studentID {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *Memory) SetApplicationStatus(_ context.Context, studentID, applicationID string, status models.ApplicationStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.applications[applicationID]
	if !ok || a.StudentID != studentID {
		return apperrors.NewNotFound("application", applicationID)
	}
	a.Status = status
	a.UpdatedAt = time.Now().UTC()
	m.applications[applicationID] = a
	return nil
}

func (m *Memory) ApplyTestOutcome(_ context.Context, studentID, applicationID string, snapshot models.TestResultSnapshot, status models.ApplicationStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.applications[applicationID]
	if !ok || a.StudentID != studentID {
		return apperrors.NewNotFound("application", applicationID)
	}
	snap := snapshot
	a.TestResult = &snap
	a.Status = status
	a.UpdatedAt = time.Now().UTC()
	m.applications[applicationID] = a
	return nil
}

func (m *Memory) LookupApplicationOwner(_ context.Context, applicationID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	owner, ok := m.appOwner[applicationID]
	if !ok {
		return "", apperrors.NewNotFound("application", applicationID)
	}
	return owner, nil
}

func (m *Memory) InsertResult(_ context.Context, r *models.TestResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.results {
		if existing.TestID == r.TestID &&
			existing.StudentID == r.StudentID &&
			existing.ApplicationID == r.ApplicationID {
			return apperrors.ErrDuplicateResult
		}
	}
	r.ID = newID(r.ID)
	m.results = append(m.results, *r)
	return nil
}

func (m *Memory) ResultsByStudent(_ context.Context, studentID string) ([]models.TestResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.TestResult
	for _, r := range m.results {
		if r.StudentID == studentID {
			out = append(out, r)
		}
	}
	return out, nil
}
