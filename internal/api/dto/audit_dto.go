package dto

import (
	"time"

	"github.com/helpdesk-labs/incident-service/internal/domain"
)

// AuditRequest is the create/replace payload for a status transition.
type AuditRequest struct {
	ChangedAt        time.Time `json:"fecha_cambio"`
	Description      string    `json:"descripcion"`
	FromStatusID     int64     `json:"estado_anterior_id"`
	ToStatusID       int64     `json:"estado_nuevo_id"`
	IncidentID       int64     `json:"incidencia_id"`
	ChangedByAdminID int64     `json:"realizado_por_id"`
}

// AuditResponse is the bare audit entry representation.
type AuditResponse struct {
	ID               int64     `json:"id_historial"`
	ChangedAt        time.Time `json:"fecha_cambio"`
	Description      string    `json:"descripcion"`
	FromStatusID     int64     `json:"estado_anterior_id"`
	ToStatusID       int64     `json:"estado_nuevo_id"`
	IncidentID       int64     `json:"incidencia_id"`
	ChangedByAdminID int64     `json:"realizado_por_id"`
}

// AuditDetailResponse carries the joined display names.
type AuditDetailResponse struct {
	AuditResponse
	FromStatusName string `json:"estado_anterior"`
	ToStatusName   string `json:"estado_nuevo"`
	IncidentTitle  string `json:"incidencia_titulo"`
	AdminName      string `json:"administrador_nombre"`
}

// NewAuditResponse maps a domain audit entry.
func NewAuditResponse(entry *domain.AuditEntry) AuditResponse {
	return AuditResponse{
		ID:               entry.ID,
		ChangedAt:        entry.ChangedAt,
		Description:      entry.Description,
		FromStatusID:     entry.FromStatusID,
		ToStatusID:       entry.ToStatusID,
		IncidentID:       entry.IncidentID,
		ChangedByAdminID: entry.ChangedByAdminID,
	}
}

// NewAuditDetailResponse maps an enriched audit entry.
func NewAuditDetailResponse(detail *domain.AuditDetail) AuditDetailResponse {
	return AuditDetailResponse{
		AuditResponse:  NewAuditResponse(&detail.AuditEntry),
		FromStatusName: detail.FromStatusName,
		ToStatusName:   detail.ToStatusName,
		IncidentTitle:  detail.IncidentTitle,
		AdminName:      detail.AdminName,
	}
}

// NewAuditDetailResponses maps a listing.
func NewAuditDetailResponses(details []domain.AuditDetail) []AuditDetailResponse {
	items := make([]AuditDetailResponse, 0, len(details))
	for i := range details {
		items = append(items, NewAuditDetailResponse(&details[i]))
	}
	return items
}
