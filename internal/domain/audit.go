package domain

import "time"

// AuditLog records every significant action in the system for compliance.
type AuditLog struct {
	ID         string    `json:"id"         db:"id"`
	Caller     string    `json:"caller"     db:"caller"`
	Action     string    `json:"action"     db:"action"`
	Resource   string    `json:"resource"   db:"resource"`
	ResourceID string    `json:"resource_id" db:"resource_id"`
	Details    string    `json:"details"    db:"details"` // JSON blob
	IP         string    `json:"ip"         db:"ip"`
	UserAgent  string    `json:"user_agent" db:"user_agent"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Audit action constants.
const (
	AuditActionSourceCreate = "source_create"
	AuditActionIngestRun    = "ingest_run"
	AuditActionEmbed        = "embed"
	AuditActionSearch       = "search"
	AuditActionMCPCall      = "mcp_call"
)
