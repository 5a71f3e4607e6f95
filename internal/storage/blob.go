// Package storage stores note attachments as opaque blobs. The vault
// core only ever sees the object keys ("refs"); content is written to
// and served from the blob store directly.
package storage

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// BlobStore is the external attachment collaborator. Keys are opaque
// to callers; build them with ObjectKey so ownership stays encoded in
// the key itself.
type BlobStore interface {
	// Put uploads an object. size must be the exact content length.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// PresignedURL returns a time-limited download URL for an existing
	// object, with the given filename suggested to the browser.
	// A missing object yields ErrObjectNotFound.
	PresignedURL(ctx context.Context, key, filename string) (string, error)
}

// ErrObjectNotFound is returned by PresignedURL for unknown keys.
var ErrObjectNotFound = fmt.Errorf("object not found")

// ObjectKey builds the storage key for an upload:
// "<ownerID>/<uuid>-<sanitized filename>". The random component avoids
// collisions between same-named files; the owner prefix lets the file
// endpoint check ownership without a database lookup.
func ObjectKey(ownerID uint64, filename string) string {
	return fmt.Sprintf("%d/%s-%s", ownerID, uuid.NewString(), SanitizeFilename(filename))
}

// OwnerOf extracts the owner id encoded in an object key. Keys that do
// not carry a numeric owner prefix return 0, which matches no user.
func OwnerOf(key string) uint64 {
	prefix, _, ok := strings.Cut(key, "/")
	if !ok {
		return 0
	}
	id, err := strconv.ParseUint(prefix, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// SanitizeFilename strips quotes, path separators, commas and control
// characters and collapses whitespace. Commas must go because note
// refs are persisted as a comma-separated column.
func SanitizeFilename(name string) string {
	cleaned := strings.NewReplacer("\"", "", "\\", "", "/", "", ",", "", "..", "").Replace(name)
	b := make([]rune, 0, len(cleaned))
	for _, r := range cleaned {
		if r < 32 || r == 127 {
			continue
		}
		b = append(b, r)
	}
	s := strings.Join(strings.Fields(string(b)), " ")
	if s == "" {
		s = "file"
	}
	return s
}
