package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/okandemir/vault-api/internal/auth"
	"github.com/okandemir/vault-api/internal/model"
	"github.com/okandemir/vault-api/internal/queue"
	"github.com/okandemir/vault-api/internal/repository"
)

// AuditFunc publishes an audit event. Handlers call it on a separate
// goroutine and ignore its error; a nil AuditFunc disables publishing.
type AuditFunc func(ctx context.Context, ev queue.AuditEvent) error

// AuthHandler bundles dependencies for the credential endpoints.
type AuthHandler struct {
	Users      repository.UserStore
	Secret     []byte
	TokenTTL   time.Duration
	BcryptCost int
	Audit      AuditFunc
}

func NewAuthHandler(users repository.UserStore, secret []byte, ttl time.Duration, cost int, audit AuditFunc) *AuthHandler {
	return &AuthHandler{Users: users, Secret: secret, TokenTTL: ttl, BcryptCost: cost, Audit: audit}
}

// ----- DTOs -----

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a user with a bcrypt-hashed password. The response
// carries no token; the client logs in afterwards.
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	hash, err := auth.HashPassword(req.Password, h.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Username, hash, model.RoleUser)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "user already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	h.publish(queue.AuditEvent{
		Type:       queue.EventUserRegistered,
		UserID:     uid,
		Username:   req.Username,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{"message": "registered"})
}

// Login verifies credentials and mints a bearer token. Unknown
// username and wrong password produce the same response so usernames
// cannot be enumerated.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !auth.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := auth.NewToken(h.Secret, u.ID, u.Role, h.TokenTTL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

// publish fires an audit event without blocking the request.
func (h *AuthHandler) publish(ev queue.AuditEvent) {
	if h.Audit == nil {
		return
	}
	go func() { _ = h.Audit(context.Background(), ev) }()
}
