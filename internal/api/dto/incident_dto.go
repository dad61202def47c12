package dto

import (
	"time"

	"github.com/helpdesk-labs/incident-service/internal/domain"
)

// IncidentRequest is the create/replace payload.
type IncidentRequest struct {
	Title           string `json:"titulo"`
	Description     string `json:"descripcion"`
	StatusID        int64  `json:"estado_id"`
	CategoryID      int64  `json:"categoria_id"`
	OwnerUserID     *int64 `json:"usuario_id"`
	AssignedAdminID *int64 `json:"administrador_id"`
}

// IncidentResponse is the bare incident representation.
type IncidentResponse struct {
	ID              int64     `json:"id_incidencia"`
	Title           string    `json:"titulo"`
	Description     string    `json:"descripcion"`
	CreatedAt       time.Time `json:"fecha_registro"`
	StatusID        int64     `json:"estado_id"`
	CategoryID      int64     `json:"categoria_id"`
	OwnerUserID     int64     `json:"usuario_id"`
	AssignedAdminID *int64    `json:"administrador_id"`
}

// IncidentDetailResponse adds the joined reference names.
type IncidentDetailResponse struct {
	IncidentResponse
	StatusName   string  `json:"estado_nombre"`
	CategoryName string  `json:"categoria_nombre"`
	OwnerName    string  `json:"usuario_nombre"`
	AdminName    *string `json:"administrador_nombre"`
}

// NewIncidentResponse maps a domain incident.
func NewIncidentResponse(incident *domain.Incident) IncidentResponse {
	return IncidentResponse{
		ID:              incident.ID,
		Title:           incident.Title,
		Description:     incident.Description,
		CreatedAt:       incident.CreatedAt,
		StatusID:        incident.StatusID,
		CategoryID:      incident.CategoryID,
		OwnerUserID:     incident.OwnerUserID,
		AssignedAdminID: incident.AssignedAdminID,
	}
}

// NewIncidentDetailResponse maps an enriched incident.
func NewIncidentDetailResponse(detail *domain.IncidentDetail) IncidentDetailResponse {
	return IncidentDetailResponse{
		IncidentResponse: NewIncidentResponse(&detail.Incident),
		StatusName:       detail.StatusName,
		CategoryName:     detail.CategoryName,
		OwnerName:        detail.OwnerName,
		AdminName:        detail.AdminName,
	}
}

// NewIncidentDetailResponses maps a listing page.
func NewIncidentDetailResponses(details []domain.IncidentDetail) []IncidentDetailResponse {
	items := make([]IncidentDetailResponse, 0, len(details))
	for i := range details {
		items = append(items, NewIncidentDetailResponse(&details[i]))
	}
	return items
}
