package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/attendx/hrms-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountCreated    EventType = "account_created"
	EventDepartmentCreated EventType = "department_created"
	EventOfficeCreated     EventType = "office_created"
	EventLoginSucceeded    EventType = "login_succeeded"
)

// AllTypes lists every event type the service emits.
var AllTypes = []EventType{EventAccountCreated, EventDepartmentCreated, EventOfficeCreated, EventLoginSucceeded}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	SubjectID string    `json:"subject_id"`
	ActorID   *int64    `json:"actor_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// New builds an event with a fresh id and the current UTC time.
func New(eventType EventType, subjectID string, actor *domain.Account, payload any) Event {
	ev := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
	if actor != nil {
		id := actor.ID
		ev.ActorID = &id
	}
	return ev
}

// AccountCreatedPayload payload.
type AccountCreatedPayload struct {
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	Bootstrap bool        `json:"bootstrap"`
}

// DepartmentCreatedPayload payload.
type DepartmentCreatedPayload struct {
	Name string `json:"department_name"`
}

// OfficeCreatedPayload payload.
type OfficeCreatedPayload struct {
	Name    string `json:"office_name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// LoginSucceededPayload payload.
type LoginSucceededPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}
