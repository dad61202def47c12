package domain

import "time"

// Incident is the aggregate for reported issues. OwnerUserID always
// references an end user; AssignedAdminID is set when an administrator
// creates or triages the incident and may otherwise be null.
type Incident struct {
	ID              int64
	Title           string
	Description     string
	CreatedAt       time.Time
	StatusID        int64
	CategoryID      int64
	OwnerUserID     int64
	AssignedAdminID *int64
}

// IncidentDetail is an incident enriched with joined reference names.
type IncidentDetail struct {
	Incident
	StatusName   string
	CategoryName string
	OwnerName    string
	AdminName    *string
}
