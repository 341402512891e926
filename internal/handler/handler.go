package handler

import (
	"time"

	"github.com/abhishek622/prepai/internal/auth"
	"github.com/abhishek622/prepai/internal/groq"
	"github.com/abhishek622/prepai/internal/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	Logger     *zap.Logger
	Repository *repository.Repository
	TokenMaker *auth.JWTMaker
	JwtTTL     time.Duration
	Groq       *groq.Client
}

// GetClaimsFromContext returns the verified claims set by the auth
// middleware, or nil when the request is unauthenticated.
func (h *Handler) GetClaimsFromContext(c *gin.Context) *auth.UserClaims {
	v, exists := c.Get("claims")
	if !exists {
		return nil
	}
	claims, ok := v.(*auth.UserClaims)
	if !ok {
		return nil
	}
	return claims
}
