package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	EmployeeCreated         = "employee.created"
	EmployeeUpdated         = "employee.updated"
	EmployeeDeleted         = "employee.deleted"
	DepartmentManagerChange = "department.manager_changed"
	CandidateUpdated        = "candidate.updated"
	JobClosed               = "job.closed"
	TrainingEnrolled        = "training.enrolled"
	TrainingUnenrolled      = "training.unenrolled"
	EvaluationCreated       = "evaluation.created"
)

type Event struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId"`
	RequestID  string    `json:"requestId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload,omitempty"`
}

func New(eventType, entityType, entityID string, payload any) Event {
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		EntityType: entityType,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// Noop discards events. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
