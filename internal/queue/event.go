// Package queue defines the audit events exchanged over the message
// broker and the background consumer that records them.
package queue

// Event types published to the audit queue.
const (
	EventUserRegistered = "user.registered"
	EventNoteCreated    = "note.created"
)

// AuditEvent is published after a successful registration or note
// creation. It carries enough for downstream consumers to log or
// alert without querying the primary database. Note content is never
// included; titles and attachment counts are the most a consumer sees.
type AuditEvent struct {
	Type        string `json:"type"`
	UserID      uint64 `json:"user_id"`
	Username    string `json:"username,omitempty"`
	NoteID      uint64 `json:"note_id,omitempty"`
	Attachments int    `json:"attachments,omitempty"`
	OccurredAt  string `json:"occurred_at"`
}
