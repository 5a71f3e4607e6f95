package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/okandemir/vault-api/internal/auth"
	"github.com/okandemir/vault-api/internal/model"
)

// authedReq attaches the token to the Authorization header verbatim,
// the way the vault client does (no "Bearer " prefix).
func authedReq(method, path, token string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderAuthorization, token)
	return req
}

func (s *testServer) listNotes(t *testing.T, token string) []model.Note {
	t.Helper()
	w := s.do(authedReq(http.MethodGet, "/notes", token, nil))
	require.Equal(t, http.StatusOK, w.Code, "list body: %s", w.Body.String())
	var notes []model.Note
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &notes))
	return notes
}

func TestNoteLifecycleIsOwnerScoped(t *testing.T) {
	srv := newTestServer(t)

	srv.register(t, "alice", "pw1")
	tokenA := srv.login(t, "alice", "pw1")

	req := authedReq(http.MethodPost, "/notes", tokenA,
		strings.NewReader(`{"title":"x","content":"y"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w := srv.do(req)
	require.Equal(t, http.StatusCreated, w.Code, "create body: %s", w.Body.String())

	notes := srv.listNotes(t, tokenA)
	require.Len(t, notes, 1)
	require.Equal(t, "x", notes[0].Title)
	require.Equal(t, "y", notes[0].Content)
	require.Equal(t, uint64(1), notes[0].OwnerID)
	require.False(t, notes[0].CreatedAt.IsZero())

	// A freshly registered second user sees nothing.
	srv.register(t, "bob", "pw2")
	tokenB := srv.login(t, "bob", "pw2")
	require.Empty(t, srv.listNotes(t, tokenB))
}

func TestNotesRequireAuthentication(t *testing.T) {
	srv := newTestServer(t)

	// No Authorization header at all.
	w := srv.do(httptest.NewRequest(http.MethodGet, "/notes", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// A corrupted token string.
	w = srv.do(authedReq(http.MethodGet, "/notes", "corrupted-token", nil))
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestNotesRejectExpiredToken(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "alice", "pw1")

	expired, err := auth.NewToken(testSecret, 1, "user", -time.Minute)
	require.NoError(t, err)

	w := srv.do(authedReq(http.MethodGet, "/notes", expired, nil))
	require.Equal(t, http.StatusForbidden, w.Code)
}

func multipartNote(t *testing.T, title, content string, files map[string]string) (io.Reader, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	require.NoError(t, mw.WriteField("title", title))
	require.NoError(t, mw.WriteField("content", content))
	for name, data := range files {
		fw, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(data))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func TestCreateNoteWithAttachment(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "alice", "pw1")
	token := srv.login(t, "alice", "pw1")

	body, ct := multipartNote(t, "shopping", "milk, eggs",
		map[string]string{"list.txt": "plain text attachment"})
	req := authedReq(http.MethodPost, "/notes", token, body)
	req.Header.Set(echo.HeaderContentType, ct)
	w := srv.do(req)
	require.Equal(t, http.StatusCreated, w.Code, "create body: %s", w.Body.String())
	require.Equal(t, 1, srv.blobs.Len())

	notes := srv.listNotes(t, token)
	require.Len(t, notes, 1)
	require.Len(t, notes[0].FileRefs, 1)
	ref := notes[0].FileRefs[0]
	require.True(t, strings.HasPrefix(ref, "1/"), "ref %q should carry the owner prefix", ref)
	require.True(t, strings.HasSuffix(ref, "-list.txt"), "ref %q should keep the filename", ref)

	// The owner can resolve the ref to a download URL.
	w = srv.do(authedReq(http.MethodGet, "/files/"+ref, token, nil))
	require.Equal(t, http.StatusOK, w.Code, "get file body: %s", w.Body.String())
	var resp struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "memory://"+ref, resp.URL)

	// Another user cannot, even with a valid token.
	srv.register(t, "bob", "pw2")
	tokenB := srv.login(t, "bob", "pw2")
	w = srv.do(authedReq(http.MethodGet, "/files/"+ref, tokenB, nil))
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateNoteRejectsTooManyFiles(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "alice", "pw1")
	token := srv.login(t, "alice", "pw1")

	files := map[string]string{}
	for _, name := range []string{"a.txt", "b.txt", "c.txt", "d.txt", "e.txt", "f.txt"} {
		files[name] = "data"
	}
	body, ct := multipartNote(t, "t", "c", files)
	req := authedReq(http.MethodPost, "/notes", token, body)
	req.Header.Set(echo.HeaderContentType, ct)
	w := srv.do(req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, 0, srv.blobs.Len())
}

func TestCreateNoteRejectsDisallowedType(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "alice", "pw1")
	token := srv.login(t, "alice", "pw1")

	// %PDF magic makes mimetype detect application/pdf, which the test
	// server does not allow.
	body, ct := multipartNote(t, "t", "c", map[string]string{"doc.pdf": "%PDF-1.4 fake"})
	req := authedReq(http.MethodPost, "/notes", token, body)
	req.Header.Set(echo.HeaderContentType, ct)
	w := srv.do(req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, 0, srv.blobs.Len())
}
