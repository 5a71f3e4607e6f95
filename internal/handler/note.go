package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/okandemir/vault-api/internal/middleware"
	"github.com/okandemir/vault-api/internal/queue"
	"github.com/okandemir/vault-api/internal/repository"
	"github.com/okandemir/vault-api/internal/storage"
)

// maxAttachments caps the number of files accepted with one note.
const maxAttachments = 5

// NoteHandler bundles dependencies for the protected note endpoints.
type NoteHandler struct {
	Notes       repository.NoteStore
	Blobs       storage.BlobStore
	MaxFileSize int64
	FileTypes   []string
	Audit       AuditFunc
}

func NewNoteHandler(notes repository.NoteStore, blobs storage.BlobStore, maxSize int64, fileTypes []string, audit AuditFunc) *NoteHandler {
	return &NoteHandler{Notes: notes, Blobs: blobs, MaxFileSize: maxSize, FileTypes: fileTypes, Audit: audit}
}

type createNoteReq struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Create saves a note for the authenticated user. The body is either
// JSON {title, content} or a multipart form with title, content and up
// to five "files" parts. Attachments go to the blob store first; the
// note row records only their keys.
func (h *NoteHandler) Create(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing token"})
	}

	var title, content string
	var fileRefs []string

	ct := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(ct, echo.MIMEMultipartForm) {
		title = c.FormValue("title")
		content = c.FormValue("content")

		form, err := c.MultipartForm()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid form"})
		}
		files := form.File["files"]
		if len(files) > maxAttachments {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "too many files"})
		}
		for _, fh := range files {
			if fh.Size > h.MaxFileSize {
				return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "file size exceeds the limit"})
			}
			// Detect the real MIME type from content, not from the
			// client-supplied header.
			sniff, err := fh.Open()
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot open uploaded file"})
			}
			mt, detectErr := mimetype.DetectReader(sniff)
			_ = sniff.Close()
			if detectErr != nil || mt == nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "failed to detect file type"})
			}
			detected := strings.Split(mt.String(), ";")[0]
			if !h.typeAllowed(detected) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "file type is not allowed"})
			}

			src, err := fh.Open() // fresh reader after detection
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot open uploaded file"})
			}
			key := storage.ObjectKey(ident.UserID, fh.Filename)
			err = h.Blobs.Put(c.Request().Context(), key, src, fh.Size, detected)
			_ = src.Close()
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
			}
			fileRefs = append(fileRefs, key)
		}
	} else {
		var req createNoteReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
		}
		title, content = req.Title, req.Content
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	noteID, err := h.Notes.Create(ctx, ident.UserID, title, content, fileRefs)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save note failed"})
	}

	h.publish(queue.AuditEvent{
		Type:        queue.EventNoteCreated,
		UserID:      ident.UserID,
		NoteID:      noteID,
		Attachments: len(fileRefs),
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{"message": "note saved"})
}

// List returns the caller's notes. Scoping by the token's user id is
// the confidentiality invariant of the whole service; there is no
// parameter that widens it.
func (h *NoteHandler) List(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	notes, err := h.Notes.ListByOwner(ctx, ident.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, notes)
}

// GetFile resolves an attachment ref to a presigned download URL. The
// owner prefix embedded in the key must match the caller.
func (h *NoteHandler) GetFile(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing token"})
	}
	ref, err := url.PathUnescape(c.Param("*"))
	if err != nil || ref == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file ref required"})
	}
	if storage.OwnerOf(ref) != ident.UserID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no access"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	link, err := h.Blobs.PresignedURL(ctx, ref, displayName(ref))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "file not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "presign failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"url": link})
}

// displayName recovers the original filename from an object key by
// stripping the uuid prefix inserted at upload time.
func displayName(ref string) string {
	base := path.Base(ref)
	if len(base) > 37 && base[36] == '-' {
		if _, err := uuid.Parse(base[:36]); err == nil {
			return base[37:]
		}
	}
	return base
}

func (h *NoteHandler) typeAllowed(mime string) bool {
	for _, t := range h.FileTypes {
		if t == mime {
			return true
		}
	}
	return false
}

func (h *NoteHandler) publish(ev queue.AuditEvent) {
	if h.Audit == nil {
		return
	}
	go func() { _ = h.Audit(context.Background(), ev) }()
}
