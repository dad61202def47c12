package events

import (
	"time"

	"github.com/helpdesk-labs/incident-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventIncidentCreated EventType = "incident_created"
	EventIncidentUpdated EventType = "incident_updated"
	EventIncidentDeleted EventType = "incident_deleted"
	EventAuditRecorded   EventType = "audit_recorded"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Role      domain.Role `json:"role"`
	SubjectID int64       `json:"subject_id"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	IncidentID int64       `json:"incident_id"`
	Actor      Actor       `json:"actor"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// IncidentCreatedPayload payload.
type IncidentCreatedPayload struct {
	Title      string `json:"titulo"`
	StatusID   int64  `json:"estado_id"`
	CategoryID int64  `json:"categoria_id"`
	OwnerID    int64  `json:"usuario_id"`
}

// IncidentUpdatedPayload payload.
type IncidentUpdatedPayload struct {
	Title    string `json:"titulo"`
	StatusID int64  `json:"estado_id"`
}

// AuditRecordedPayload payload.
type AuditRecordedPayload struct {
	FromStatusID int64  `json:"estado_anterior_id"`
	ToStatusID   int64  `json:"estado_nuevo_id"`
	Description  string `json:"descripcion"`
}
