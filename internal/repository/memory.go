package repository

// In-memory implementations of UserStore and NoteStore. They back the
// handler tests so the HTTP layer can be exercised without a MySQL
// instance; the semantics (uniqueness, owner scoping, server-side
// timestamps) match the SQL implementations.

import (
	"context"
	"sync"
	"time"

	"github.com/okandemir/vault-api/internal/model"
)

// MemoryUserStore is a mutex-guarded map keyed by username.
type MemoryUserStore struct {
	mu     sync.Mutex
	nextID uint64
	users  map[string]model.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]model.User)}
}

func (s *MemoryUserStore) Create(ctx context.Context, username, passwordHash, role string) (uint64, error) {
	if role == "" {
		role = model.RoleUser
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; ok {
		return 0, ErrDuplicateUser
	}
	s.nextID++
	s.users[username] = model.User{
		ID:           s.nextID,
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
	}
	return s.nextID, nil
}

func (s *MemoryUserStore) GetByUsername(ctx context.Context, username string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return u, nil
}

// MemoryNoteStore keeps notes in insertion order per owner.
type MemoryNoteStore struct {
	mu     sync.Mutex
	nextID uint64
	notes  []model.Note
}

func NewMemoryNoteStore() *MemoryNoteStore { return &MemoryNoteStore{} }

func (s *MemoryNoteStore) Create(ctx context.Context, ownerID uint64, title, content string, fileRefs []string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.notes = append(s.notes, model.Note{
		ID:        s.nextID,
		OwnerID:   ownerID,
		Title:     title,
		Content:   content,
		FileRefs:  append([]string(nil), fileRefs...),
		CreatedAt: time.Now().UTC(),
	})
	return s.nextID, nil
}

func (s *MemoryNoteStore) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Note, 0)
	for _, n := range s.notes {
		if n.OwnerID == ownerID {
			out = append(out, n)
		}
	}
	return out, nil
}
