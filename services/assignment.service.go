package services

import (
	"context"
	"log"

	"edumatch-server/apperrors"
	"edumatch-server/models"
	"edumatch-server/storage"
)

// UnknownCollege is the placeholder shown when a college name cannot be
// resolved. Display data is best-effort; its absence never fails a request.
const UnknownCollege = "Unknown College"

// Resolver computes the aptitude tests a student still owes. Applications and
// results live in disjoint collections with no relational integrity, so a
// completed obligation is detected through three independent signals: the
// embedded snapshot on the application, the fact table keyed by application
// id, and the fact table keyed by test id. Any one of them suppresses
// re-assignment, which keeps the resolver resilient to partial writes from
// reconciliation.
type Resolver struct {
	Store storage.Store
}

func NewResolver(store storage.Store) *Resolver {
	return &Resolver{Store: store}
}

type PendingTest struct {
	TestID        string `json:"testId"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	ApplicationID string `json:"applicationId,omitempty"`
	CollegeName   string `json:"collegeName"`
	IsRequired    bool   `json:"isRequired"`
}

// GetPendingTests returns the tests owed because of an approved, test-gated
// application that has not produced a result yet.
func (r *Resolver) GetPendingTests(ctx context.Context, studentID string) ([]PendingTest, error) {
	pending, _, err := r.resolvePending(ctx, studentID)
	return pending, err
}

// GetAvailableTests merges the required pending tests with the globally
// offered elective tests. A test owed as required wins over its elective
// entry, and a completed test never reappears, not even as an elective.
func (r *Resolver) GetAvailableTests(ctx context.Context, studentID string) ([]PendingTest, error) {
	pending, completedTests, err := r.resolvePending(ctx, studentID)
	if err != nil {
		return nil, err
	}

	required := make(map[string]bool, len(pending))
	for _, p := range pending {
		required[p.TestID] = true
	}

	electives, err := r.Store.ListElectiveTests(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range electives {
		if required[t.ID] || completedTests[t.ID] {
			continue
		}
		pending = append(pending, PendingTest{
			TestID:      t.ID,
			Title:       t.Title,
			Description: t.Description,
			CollegeName: r.collegeName(ctx, t.CollegeID),
			IsRequired:  false,
		})
	}
	return pending, nil
}

func (r *Resolver) resolvePending(ctx context.Context, studentID string) ([]PendingTest, map[string]bool, error) {
	apps, err := r.Store.ApplicationsByStudent(ctx, studentID, models.ApplicationApproved)
	if err != nil {
		return nil, nil, err
	}

	results, err := r.Store.ResultsByStudent(ctx, studentID)
	if err != nil {
		return nil, nil, err
	}
	completedTests := make(map[string]bool, len(results))
	completedApps := make(map[string]bool, len(results))
	for _, res := range results {
		completedTests[res.TestID] = true
		if res.ApplicationID != "" {
			completedApps[res.ApplicationID] = true
		}
	}

	var pending []PendingTest
	for _, app := range apps {
		if app.TestResult != nil {
			continue // resolved locally, the strongest signal
		}
		if completedApps[app.ID] {
			continue // resolved via the fact table even if the document wasn't updated
		}
		if app.AptitudeTestID == "" {
			continue // no test obligation
		}
		if completedTests[app.AptitudeTestID] {
			continue
		}

		test, err := r.Store.GetTest(ctx, app.AptitudeTestID)
		if err != nil {
			if apperrors.IsNotFound(err) {
				log.Printf("pending tests: application %s references missing test %s", app.ID, app.AptitudeTestID)
				continue
			}
			return nil, nil, err
		}

		pending = append(pending, PendingTest{
			TestID:        test.ID,
			Title:         test.Title,
			Description:   test.Description,
			ApplicationID: app.ID,
			CollegeName:   r.collegeName(ctx, app.CollegeID),
			IsRequired:    true,
		})
	}
	return pending, completedTests, nil
}

// collegeName is best-effort display data.
func (r *Resolver) collegeName(ctx context.Context, collegeID string) string {
	if collegeID == "" {
		return UnknownCollege
	}
	college, err := r.Store.GetCollege(ctx, collegeID)
	if err != nil {
		return UnknownCollege
	}
	return college.Name
}
