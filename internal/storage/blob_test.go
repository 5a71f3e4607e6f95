package storage

import (
	"context"
	"strings"
	"testing"
)

func TestObjectKey(t *testing.T) {
	t.Parallel()

	k1 := ObjectKey(7, "photo.png")
	k2 := ObjectKey(7, "photo.png")
	if k1 == k2 {
		t.Fatalf("two keys for the same upload collide: %q", k1)
	}
	if !strings.HasPrefix(k1, "7/") {
		t.Fatalf("key %q missing owner prefix", k1)
	}
	if !strings.HasSuffix(k1, "-photo.png") {
		t.Fatalf("key %q lost the filename", k1)
	}
	if OwnerOf(k1) != 7 {
		t.Fatalf("OwnerOf(%q) = %d, want 7", k1, OwnerOf(k1))
	}
}

func TestOwnerOf_Malformed(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"", "no-slash", "abc/file", "-1/file"} {
		if got := OwnerOf(key); got != 0 {
			t.Fatalf("OwnerOf(%q) = %d, want 0", key, got)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"notes.txt", "notes.txt"},
		{`a"b\c/d.txt`, "abcd.txt"},
		{"a,b.txt", "ab.txt"},
		{"  spaced   name.png ", "spaced name.png"},
		{"\x00\x01", "file"},
		{"", "file"},
	}
	for _, tc := range cases {
		if got := SanitizeFilename(tc.in); got != tc.want {
			t.Fatalf("SanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMemoryStore_PresignedURL(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()
	if _, err := s.PresignedURL(ctx, "1/missing", "missing"); err != ErrObjectNotFound {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
	if err := s.Put(ctx, "1/key", strings.NewReader("data"), 4, "text/plain"); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	u, err := s.PresignedURL(ctx, "1/key", "key")
	if err != nil {
		t.Fatalf("PresignedURL error: %v", err)
	}
	if u != "memory://1/key" {
		t.Fatalf("url = %q", u)
	}
}
