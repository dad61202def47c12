package dto

import "github.com/helpdesk-labs/incident-service/internal/domain"

// NameRequest is the payload for category/status writes.
type NameRequest struct {
	Name string `json:"nombre"`
}

// PrincipalResponse is the safe projection of a user or administrator;
// it never carries the password hash.
type PrincipalResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"nombre"`
	Email string `json:"correo"`
}

// NewUserResponses maps user listings.
func NewUserResponses(users []domain.User) []PrincipalResponse {
	items := make([]PrincipalResponse, 0, len(users))
	for _, u := range users {
		items = append(items, PrincipalResponse{ID: u.ID, Name: u.Name, Email: u.Email})
	}
	return items
}

// NewAdministratorResponses maps administrator listings.
func NewAdministratorResponses(admins []domain.Administrator) []PrincipalResponse {
	items := make([]PrincipalResponse, 0, len(admins))
	for _, a := range admins {
		items = append(items, PrincipalResponse{ID: a.ID, Name: a.Name, Email: a.Email})
	}
	return items
}
