// Package handler exposes the report and moderation services over HTTP.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"meetz/backend/internal/apperr"
	"meetz/backend/internal/identity"
	"meetz/backend/internal/mail"
	"meetz/backend/internal/meetchat"
	"meetz/backend/internal/report"

	"github.com/gin-gonic/gin"
)

// Handler holds the services the HTTP surface delegates to.
type Handler struct {
	Reports   *report.Service
	Mail      *mail.Service
	Hub       *meetchat.Hub
	Identity  *identity.Resolver
	JWTSecret []byte
}

func NewHandler(reports *report.Service, mailSvc *mail.Service, hub *meetchat.Hub, resolver *identity.Resolver, jwtSecret []byte) *Handler {
	return &Handler{
		Reports:   reports,
		Mail:      mailSvc,
		Hub:       hub,
		Identity:  resolver,
		JWTSecret: jwtSecret,
	}
}

// Routes wires all endpoints onto the engine.
func (h *Handler) Routes(r *gin.Engine) {
	r.POST("/api/auth/token", h.IssueToken)

	authed := r.Group("/", h.RequirePrincipal)
	{
		authed.POST("/api/report/:fanId", h.FileReport)
		authed.DELETE("/api/report/:fanId", h.CancelReport)

		authed.GET("/api/manager/report/:meetingId", h.GetReportList)
		authed.GET("/api/manager/report/:meetingId/:reportId", h.GetReportDetail)
		authed.GET("/api/manager/blacklist", h.GetBlackList)

		authed.GET("/ws", h.ServeWebSocket)
	}

	r.GET("/api/manager/checkemail", h.CheckEmail)
	r.GET("/api/manager/authemail", h.AuthEmail)
	r.GET("/api/manager/checkauth", h.CheckAuth)
}

// writeError maps the error taxonomy onto HTTP statuses with stable message
// categories, so clients can tell "not found" from "forbidden" from
// "evidence unavailable".
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, apperr.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, gin.H{"error": "target is not a fan"})
	case errors.Is(err, apperr.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "report already filed"})
	case errors.Is(err, apperr.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, apperr.ErrBadRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
	case errors.Is(err, apperr.ErrStorageUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not fetch evidence"})
	case errors.Is(err, apperr.ErrTranscriptionFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not transcribe evidence"})
	default:
		slog.Error("unhandled error", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
