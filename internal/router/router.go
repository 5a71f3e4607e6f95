// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/okandemir/vault-api/internal/handler"
	"github.com/okandemir/vault-api/internal/middleware"
)

// Register attaches all routes. The credential endpoints carry the
// rate limiter (pass nil to skip it); every note and file endpoint sits
// behind the token auth gate.
func Register(e *echo.Echo, a *handler.AuthHandler, n *handler.NoteHandler, secret []byte, limiter echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	pub := e.Group("")
	if limiter != nil {
		pub.Use(limiter)
	}
	pub.POST("/register", a.Register)
	pub.POST("/login", a.Login)

	prot := e.Group("", middleware.TokenAuth(secret))
	prot.POST("/notes", n.Create)
	prot.GET("/notes", n.List)
	// Attachment keys contain slashes, so the file route is a wildcard.
	prot.GET("/files/*", n.GetFile)
}
