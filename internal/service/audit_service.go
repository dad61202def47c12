package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/helpdesk-labs/incident-service/internal/auth"
	"github.com/helpdesk-labs/incident-service/internal/domain"
	"github.com/helpdesk-labs/incident-service/internal/events"
	"github.com/helpdesk-labs/incident-service/internal/repository"
	apperrors "github.com/helpdesk-labs/incident-service/pkg/util"
)

// AuditInput carries the six required fields of a status transition.
type AuditInput struct {
	ChangedAt        time.Time
	Description      string
	FromStatusID     int64
	ToStatusID       int64
	IncidentID       int64
	ChangedByAdminID int64
}

// AuditService records and lists incident status transitions. The trail
// is a correctable log: administrators may amend or remove entries, so
// it is not a compliance-grade immutable history.
type AuditService struct {
	audits     repository.AuditRepository
	incidents  repository.IncidentRepository
	dispatcher events.Dispatcher
}

// AuditDependencies bundles repositories for audit service.
type AuditDependencies struct {
	AuditRepo    repository.AuditRepository
	IncidentRepo repository.IncidentRepository
	Dispatcher   events.Dispatcher
}

// NewAuditService constructs the service.
func NewAuditService(deps AuditDependencies) *AuditService {
	return &AuditService{
		audits:     deps.AuditRepo,
		incidents:  deps.IncidentRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create records a transition. Every field is required and the incident
// must exist.
func (s *AuditService) Create(ctx context.Context, claims *auth.Claims, input AuditInput) (*domain.AuditEntry, error) {
	if err := validateAuditInput(input); err != nil {
		return nil, err
	}
	if _, err := s.incidents.GetByID(ctx, input.IncidentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewBadRequest("incidencia_id no existe", nil)
		}
		return nil, apperrors.MapError(err)
	}

	entry := &domain.AuditEntry{
		ChangedAt:        input.ChangedAt,
		Description:      input.Description,
		FromStatusID:     input.FromStatusID,
		ToStatusID:       input.ToStatusID,
		IncidentID:       input.IncidentID,
		ChangedByAdminID: input.ChangedByAdminID,
	}
	if err := s.audits.Create(ctx, entry); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:         uuid.NewString(),
			Type:       events.EventAuditRecorded,
			IncidentID: entry.IncidentID,
			Actor:      events.Actor{Role: claims.Role, SubjectID: claims.SubjectID},
			Timestamp:  time.Now(),
			Payload: events.AuditRecordedPayload{
				FromStatusID: entry.FromStatusID,
				ToStatusID:   entry.ToStatusID,
				Description:  entry.Description,
			},
		})
	}
	return entry, nil
}

// List returns every transition, enriched and newest first.
func (s *AuditService) List(ctx context.Context) ([]domain.AuditDetail, error) {
	items, err := s.audits.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return items, nil
}

// ListByIncident returns the transitions of one incident, newest first.
func (s *AuditService) ListByIncident(ctx context.Context, incidentID int64) ([]domain.AuditDetail, error) {
	items, err := s.audits.ListByIncident(ctx, incidentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return items, nil
}

// Get fetches one enriched entry.
func (s *AuditService) Get(ctx context.Context, id int64) (*domain.AuditDetail, error) {
	detail, err := s.audits.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("historial", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return detail, nil
}

// Update amends a recorded transition (correctable-log policy).
func (s *AuditService) Update(ctx context.Context, id int64, input AuditInput) error {
	if err := validateAuditInput(input); err != nil {
		return err
	}
	entry := &domain.AuditEntry{
		ID:               id,
		ChangedAt:        input.ChangedAt,
		Description:      input.Description,
		FromStatusID:     input.FromStatusID,
		ToStatusID:       input.ToStatusID,
		IncidentID:       input.IncidentID,
		ChangedByAdminID: input.ChangedByAdminID,
	}
	if err := s.audits.Update(ctx, entry); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("historial", nil)
		}
		return apperrors.MapError(err)
	}
	return nil
}

// Delete removes a recorded transition (correctable-log policy).
func (s *AuditService) Delete(ctx context.Context, id int64) error {
	if err := s.audits.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("historial", nil)
		}
		return apperrors.MapError(err)
	}
	return nil
}

func validateAuditInput(input AuditInput) error {
	if input.ChangedAt.IsZero() || input.Description == "" ||
		input.FromStatusID == 0 || input.ToStatusID == 0 ||
		input.IncidentID == 0 || input.ChangedByAdminID == 0 {
		return apperrors.NewBadRequest("faltan campos obligatorios", nil)
	}
	return nil
}
