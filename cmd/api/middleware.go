package main

import (
	"fmt"
	"strings"

	"github.com/abhishek622/prepai/internal/auth"
	"github.com/abhishek622/prepai/pkg/response"
	"github.com/gin-gonic/gin"
)

func (app *application) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := verifyClaimsFromAuthHeader(c, app.Handler.TokenMaker)
		if err != nil {
			response.Unauthorized(c, err.Error())
			c.Abort()
			return
		}

		// the token may outlive the account
		if _, err := app.Handler.Repository.GetUserByID(c.Request.Context(), claims.UserID); err != nil {
			response.Unauthorized(c, "unauthorized access")
			c.Abort()
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}

func (app *application) CORSMiddleware() gin.HandlerFunc {
	allowed := make(map[string]bool)
	for _, origin := range app.Config.GetCORSOrigins() {
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowed[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Origin, Cache-Control, X-Requested-With")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func (app *application) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := app.Limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			app.Logger.Sugar().Warnw("rate limiter error", "err", err)
		}
		if !ok {
			response.TooManyRequests(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

func verifyClaimsFromAuthHeader(c *gin.Context, tokenMaker *auth.JWTMaker) (*auth.UserClaims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, fmt.Errorf("authorization header is missing")
	}

	fields := strings.Fields(authHeader)
	if len(fields) != 2 || fields[0] != "Bearer" {
		return nil, fmt.Errorf("invalid authorization header")
	}

	claims, err := tokenMaker.VerifyToken(fields[1])
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return claims, nil
}
