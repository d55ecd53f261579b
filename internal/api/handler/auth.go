package handler

import (
	"net/http"
	"strings"
	"time"

	"meetz/backend/internal/identity"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// tokenRequest is the dev/test token issuance body. Production deployments
// put a real login flow in front; the core only cares that a verified
// principal arrives in the bearer token.
type tokenRequest struct {
	Email string `json:"email" binding:"required,email"`
	Kind  string `json:"kind" binding:"required,oneof=user manager"`
}

// IssueToken signs a bearer token for the given principal.
func (h *Handler) IssueToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	p := identity.Principal{Email: req.Email, Kind: identity.Kind(req.Kind)}
	token, err := identity.IssueToken(h.JWTSecret, p, 72*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// RequirePrincipal validates the bearer token and stashes the principal in
// the request context for downstream handlers.
func (h *Handler) RequirePrincipal(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization token missing"})
		return
	}

	p, err := identity.ParseToken(h.JWTSecret, strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	c.Set(principalKey, p)
	c.Next()
}

// currentPrincipal reads the principal RequirePrincipal stored.
func currentPrincipal(c *gin.Context) identity.Principal {
	p, _ := c.Get(principalKey)
	principal, _ := p.(identity.Principal)
	return principal
}
