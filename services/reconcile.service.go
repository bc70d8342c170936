package services

import (
	"context"
	"log"
	"time"

	"edumatch-server/apperrors"
	"edumatch-server/models"
	"edumatch-server/storage"
)

// PassThreshold is the fixed passing score. It is not configurable per test.
const PassThreshold = 60

// Reconciler propagates a freshly graded score into the lifecycle state of
// the application that required the test.
type Reconciler struct {
	Store storage.Store
}

func NewReconciler(store storage.Store) *Reconciler {
	return &Reconciler{Store: store}
}

type ReconcileOutcome struct {
	ApplicationID  string                   `json:"applicationId"`
	StudentID      string                   `json:"studentId"`
	PreviousStatus models.ApplicationStatus `json:"previousStatus"`
	NewStatus      models.ApplicationStatus `json:"newStatus"`
	Passed         bool                     `json:"passed"`
}

// Reconcile locates the application owning applicationID, writes the embedded
// result snapshot, and applies the status rule: a pass leaves the status
// untouched, a fail forces declined regardless of the previous status. It
// returns NotFound, with zero writes, when no student owns the application.
func (r *Reconciler) Reconcile(ctx context.Context, applicationID string, score int) (*ReconcileOutcome, error) {
	studentID, err := r.findOwner(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	app, err := r.Store.GetApplication(ctx, studentID, applicationID)
	if err != nil {
		return nil, err
	}

	passed := score >= PassThreshold
	newStatus := app.Status
	if !passed {
		newStatus = models.ApplicationDeclined
	}

	snapshot := models.TestResultSnapshot{
		Score:       score,
		Passed:      passed,
		CompletedAt: time.Now().UTC(),
	}
	if err := r.Store.ApplyTestOutcome(ctx, studentID, applicationID, snapshot, newStatus); err != nil {
		return nil, err
	}

	// Read back and verify. The store offers no transaction spanning this
	// sequence, so a concurrent writer can still race us; one corrective write
	// on the fail path, then the state is accepted as final.
	written, err := r.Store.GetApplication(ctx, studentID, applicationID)
	switch {
	case err != nil:
		log.Printf("reconcile: verify read for application %s failed: %v", applicationID, err)
	case written.Status != newStatus && !passed:
		log.Printf("reconcile: application %s read back status %q, forcing %q",
			applicationID, written.Status, models.ApplicationDeclined)
		if err := r.Store.SetApplicationStatus(ctx, studentID, applicationID, models.ApplicationDeclined); err != nil {
			log.Printf("reconcile: corrective write for application %s failed: %v", applicationID, err)
		}
	}

	return &ReconcileOutcome{
		ApplicationID:  applicationID,
		StudentID:      studentID,
		PreviousStatus: app.Status,
		NewStatus:      newStatus,
		Passed:         passed,
	}, nil
}

// findOwner resolves the student owning an application. The owner index is
// tried first; rows created before the index existed are found by scanning
// every student and probing the application as a point lookup.
func (r *Reconciler) findOwner(ctx context.Context, applicationID string) (string, error) {
	studentID, err := r.Store.LookupApplicationOwner(ctx, applicationID)
	if err == nil {
		return studentID, nil
	}
	if !apperrors.IsNotFound(err) {
		return "", err
	}

	studentIDs, err := r.Store.ListStudentIDs(ctx)
	if err != nil {
		return "", err
	}
	for _, sid := range studentIDs {
		_, err := r.Store.GetApplication(ctx, sid, applicationID)
		if err == nil {
			return sid, nil
		}
		if !apperrors.IsNotFound(err) {
			return "", err
		}
	}
	return "", apperrors.NewNotFound("application", applicationID)
}
