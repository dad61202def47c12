package domain

// FAQ is a canned answer matched by keyword lookup in the support chat.
type FAQ struct {
	ID       int64    `json:"id"`
	Keywords []string `json:"keywords"`
	Answer   string   `json:"respuesta"`
}
