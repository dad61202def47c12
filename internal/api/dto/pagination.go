package dto

import "github.com/helpdesk-labs/incident-service/internal/service"

// PageMeta is the pagination envelope metadata.
type PageMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// PagedResponse wraps one listing page.
type PagedResponse struct {
	Meta PageMeta `json:"meta"`
	Data any      `json:"data"`
}

// NewPagedResponse converts service metadata into the wire envelope.
func NewPagedResponse(meta service.PageMeta, data any) PagedResponse {
	return PagedResponse{
		Meta: PageMeta{
			Page:       meta.Page,
			Limit:      meta.Limit,
			Total:      meta.Total,
			TotalPages: meta.TotalPages,
		},
		Data: data,
	}
}
