package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/helpdesk-labs/incident-service/internal/auth"
	"github.com/helpdesk-labs/incident-service/internal/domain"
	"github.com/helpdesk-labs/incident-service/internal/events"
	"github.com/helpdesk-labs/incident-service/internal/repository"
	apperrors "github.com/helpdesk-labs/incident-service/pkg/util"
)

// PageMeta describes one listing page.
type PageMeta struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int64
}

// IncidentInput describes the full editable field set of an incident.
type IncidentInput struct {
	Title           string
	Description     string
	StatusID        int64
	CategoryID      int64
	OwnerUserID     *int64
	AssignedAdminID *int64
}

// AdminListFilter captures the administrative listing filters; all are
// optional and combine with logical AND.
type AdminListFilter struct {
	StatusID   *int64
	CategoryID *int64
	SearchTerm *string
}

// IncidentService coordinates incident workflows.
type IncidentService struct {
	incidents  repository.IncidentRepository
	statuses   repository.StatusRepository
	categories repository.CategoryRepository
	dispatcher events.Dispatcher
}

// IncidentDependencies bundles repositories for incident service.
type IncidentDependencies struct {
	IncidentRepo repository.IncidentRepository
	StatusRepo   repository.StatusRepository
	CategoryRepo repository.CategoryRepository
	Dispatcher   events.Dispatcher
}

// NewIncidentService constructs the service.
func NewIncidentService(deps IncidentDependencies) *IncidentService {
	return &IncidentService{
		incidents:  deps.IncidentRepo,
		statuses:   deps.StatusRepo,
		categories: deps.CategoryRepo,
		dispatcher: deps.Dispatcher,
	}
}

// ListForAdmin returns one page of the global listing.
func (s *IncidentService) ListForAdmin(ctx context.Context, page, limit int, filter AdminListFilter) ([]domain.IncidentDetail, PageMeta, error) {
	page, limit = normalizePage(page, limit)
	repoFilter := repository.IncidentFilter{
		StatusID:   filter.StatusID,
		CategoryID: filter.CategoryID,
		SearchTerm: filter.SearchTerm,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}
	items, total, err := s.incidents.ListPage(ctx, repoFilter)
	if err != nil {
		return nil, PageMeta{}, apperrors.MapError(err)
	}
	return items, pageMeta(page, limit, total), nil
}

// ListForOwner returns one page of the caller's own incidents.
func (s *IncidentService) ListForOwner(ctx context.Context, ownerID int64, page, limit int) ([]domain.IncidentDetail, PageMeta, error) {
	page, limit = normalizePage(page, limit)
	repoFilter := repository.IncidentFilter{
		OwnerUserID: &ownerID,
		Limit:       limit,
		Offset:      (page - 1) * limit,
	}
	items, total, err := s.incidents.ListPage(ctx, repoFilter)
	if err != nil {
		return nil, PageMeta{}, apperrors.MapError(err)
	}
	return items, pageMeta(page, limit, total), nil
}

// Get fetches one enriched incident, applying the ownership rule for
// end-user callers.
func (s *IncidentService) Get(ctx context.Context, claims *auth.Claims, id int64) (*domain.IncidentDetail, error) {
	detail, err := s.incidents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("incidencia", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if !auth.CanAccessIncident(claims, detail.OwnerUserID) {
		return nil, apperrors.NewForbidden("no puedes ver incidencias de otros usuarios")
	}
	return detail, nil
}

// Create registers a new incident. End users always own what they file:
// any client-supplied owner is ignored and replaced by the claim
// subject. Administrators must name the owner explicitly and become the
// assigned administrator unless the payload overrides it.
func (s *IncidentService) Create(ctx context.Context, claims *auth.Claims, input IncidentInput) (*domain.Incident, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" ||
		input.StatusID == 0 || input.CategoryID == 0 {
		return nil, apperrors.NewBadRequest("faltan campos obligatorios", nil)
	}
	if err := s.checkReferences(ctx, input.StatusID, input.CategoryID); err != nil {
		return nil, err
	}

	var ownerID int64
	var adminID *int64
	switch claims.Role {
	case domain.RoleEndUser:
		ownerID = claims.SubjectID
		adminID = input.AssignedAdminID
	case domain.RoleAdmin:
		if input.OwnerUserID == nil {
			return nil, apperrors.NewBadRequest("usuario_id es obligatorio cuando crea un administrador", nil)
		}
		ownerID = *input.OwnerUserID
		if input.AssignedAdminID != nil {
			adminID = input.AssignedAdminID
		} else {
			self := claims.SubjectID
			adminID = &self
		}
	default:
		return nil, apperrors.NewForbidden("rol desconocido")
	}

	incident := &domain.Incident{
		Title:           strings.TrimSpace(input.Title),
		Description:     strings.TrimSpace(input.Description),
		StatusID:        input.StatusID,
		CategoryID:      input.CategoryID,
		OwnerUserID:     ownerID,
		AssignedAdminID: adminID,
	}
	if err := s.incidents.Create(ctx, incident); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:       events.EventIncidentCreated,
		IncidentID: incident.ID,
		Actor:      events.Actor{Role: claims.Role, SubjectID: claims.SubjectID},
		Payload: events.IncidentCreatedPayload{
			Title:      incident.Title,
			StatusID:   incident.StatusID,
			CategoryID: incident.CategoryID,
			OwnerID:    incident.OwnerUserID,
		},
	})
	return incident, nil
}

// Update replaces the six editable fields of an incident.
func (s *IncidentService) Update(ctx context.Context, claims *auth.Claims, id int64, input IncidentInput) error {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" ||
		input.StatusID == 0 || input.CategoryID == 0 || input.OwnerUserID == nil {
		return apperrors.NewBadRequest("faltan campos obligatorios", nil)
	}
	if err := s.checkReferences(ctx, input.StatusID, input.CategoryID); err != nil {
		return err
	}

	incident := &domain.Incident{
		ID:              id,
		Title:           strings.TrimSpace(input.Title),
		Description:     strings.TrimSpace(input.Description),
		StatusID:        input.StatusID,
		CategoryID:      input.CategoryID,
		OwnerUserID:     *input.OwnerUserID,
		AssignedAdminID: input.AssignedAdminID,
	}
	if err := s.incidents.Update(ctx, incident); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("incidencia", nil)
		}
		return apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:       events.EventIncidentUpdated,
		IncidentID: id,
		Actor:      events.Actor{Role: claims.Role, SubjectID: claims.SubjectID},
		Payload:    events.IncidentUpdatedPayload{Title: incident.Title, StatusID: incident.StatusID},
	})
	return nil
}

// Delete removes an incident unless the audit trail references it.
func (s *IncidentService) Delete(ctx context.Context, claims *auth.Claims, id int64) error {
	if err := s.incidents.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrReferenced):
			return apperrors.NewConflict("no se puede eliminar la incidencia porque tiene historial asociado", nil)
		case errors.Is(err, pgx.ErrNoRows):
			return apperrors.NewNotFound("incidencia", nil)
		default:
			return apperrors.MapError(err)
		}
	}

	s.publishEvent(ctx, events.Event{
		Type:       events.EventIncidentDeleted,
		IncidentID: id,
		Actor:      events.Actor{Role: claims.Role, SubjectID: claims.SubjectID},
	})
	return nil
}

func (s *IncidentService) checkReferences(ctx context.Context, statusID, categoryID int64) error {
	if _, err := s.statuses.GetByID(ctx, statusID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewBadRequest("estado_id no existe", nil)
		}
		return apperrors.MapError(err)
	}
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewBadRequest("categoria_id no existe", nil)
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *IncidentService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

func pageMeta(page, limit int, total int64) PageMeta {
	return PageMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int64(math.Ceil(float64(total) / float64(limit))),
	}
}
