package types

import "time"

type LogAction string

const (
	LogActionCreate LogAction = "create"
	LogActionUpdate LogAction = "update"
	LogActionDelete LogAction = "delete"
)

// FieldChange is one entry of an audit diff. Field uses the caller-facing
// camelCase name (the json tag), not the storage column, so the log display
// needs no second translation step.
type FieldChange struct {
	Field    string `json:"field"`
	OldValue any    `json:"oldValue"`
	NewValue any    `json:"newValue"`
}

// LogEntry is an append-only audit record. Entries are never mutated or
// deleted by the application; they outlive the request they reference.
type LogEntry struct {
	ID          string        `db:"id" json:"id"`
	RequestID   string        `db:"request_id" json:"requestId"`
	Timestamp   time.Time     `db:"timestamp" json:"timestamp"`
	Action      LogAction     `db:"action" json:"action"`
	Changes     []FieldChange `db:"changes" json:"changes"`
	Guncelleyen string        `db:"guncelleyen" json:"guncelleyen"`
}
