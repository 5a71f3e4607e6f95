package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/okandemir/vault-api/internal/model"
)

// NoteStore persists notes. Every read is scoped by owner id; there is
// no operation that crosses owners.
type NoteStore interface {
	// Create inserts a note for ownerID and returns its id. The
	// creation timestamp is set here, never taken from the client.
	Create(ctx context.Context, ownerID uint64, title, content string, fileRefs []string) (uint64, error)
	// ListByOwner returns all notes whose owner_id equals ownerID,
	// oldest first.
	ListByOwner(ctx context.Context, ownerID uint64) ([]model.Note, error)
}

// NoteRepo is the MySQL-backed NoteStore. Attachment refs are stored
// as a comma-separated TEXT column; refs never contain commas because
// object keys are sanitized before upload.
type NoteRepo struct{ DB *sql.DB }

func NewNoteRepo(db *sql.DB) *NoteRepo { return &NoteRepo{DB: db} }

func joinRefs(refs []string) string { return strings.Join(refs, ",") }

func splitRefs(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func (r *NoteRepo) Create(ctx context.Context, ownerID uint64, title, content string, fileRefs []string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO notes (owner_id, title, content, file_refs, created_at) VALUES (?,?,?,?,?)",
		ownerID, title, content, joinRefs(fileRefs), time.Now().UTC())
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *NoteRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Note, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,owner_id,title,content,file_refs,created_at FROM notes WHERE owner_id=? ORDER BY id",
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]model.Note, 0)
	for rows.Next() {
		var n model.Note
		var refs string
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.Title, &n.Content, &refs, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.FileRefs = splitRefs(refs)
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
