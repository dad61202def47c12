package domain

import "time"

// AuditEntry records one incident status transition. Every field is
// required at creation; only administrators record transitions.
type AuditEntry struct {
	ID               int64
	ChangedAt        time.Time
	Description      string
	FromStatusID     int64
	ToStatusID       int64
	IncidentID       int64
	ChangedByAdminID int64
}

// AuditDetail is an audit entry enriched with joined names for display.
type AuditDetail struct {
	AuditEntry
	FromStatusName string
	ToStatusName   string
	IncidentTitle  string
	AdminName      string
}
