package model

import "time"

// Note mirrors the `notes` table. Every note belongs to exactly one
// user; listing is always scoped by OwnerID. FileRefs holds the object
// keys of attachments stored in the blob store, persisted as a single
// comma-separated TEXT column.
type Note struct {
	ID        uint64    `json:"id"`         // notes.id
	OwnerID   uint64    `json:"owner_id"`   // notes.owner_id
	Title     string    `json:"title"`      // notes.title
	Content   string    `json:"content"`    // notes.content
	FileRefs  []string  `json:"file_refs"`  // notes.file_refs (CSV column)
	CreatedAt time.Time `json:"created_at"` // notes.created_at, set server-side in UTC
}
