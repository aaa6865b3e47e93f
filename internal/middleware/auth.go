package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/gradhunt/gradboard-backend/internal/response"
	"github.com/gradhunt/gradboard-backend/internal/service"
)

const (
	// ContextKeyClaims is the Gin context key for validated admin claims.
	ContextKeyClaims = "claims"
)

// RequireAdmin validates an admin credential token from the Authorization
// header. Every failure mode — missing, malformed, expired, bad signature —
// answers the same 401; the underlying reason is only logged.
func RequireAdmin(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := validateBearer(c, authService)
		if err != nil {
			log.Debug().Err(err).Msg("admin token rejected")
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// OptionalAdmin validates a bearer token when present but never rejects the
// request. Listing routes use this: a valid token escalates to the admin
// view, anything else degrades to the public one.
func OptionalAdmin(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := validateBearer(c, authService); err == nil {
			c.Set(ContextKeyClaims, claims)
		}
		c.Next()
	}
}

// GetClaims retrieves the validated claims from the Gin context, or nil.
func GetClaims(c *gin.Context) *service.Claims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}

// IsAdmin reports whether the request carries a valid admin token.
func IsAdmin(c *gin.Context) bool {
	return GetClaims(c) != nil
}

func validateBearer(c *gin.Context, authService *service.AuthService) (*service.Claims, error) {
	tokenStr := ""

	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			tokenStr = parts[1]
		}
	}

	if tokenStr == "" {
		return nil, errors.New("authorization bearer token required")
	}

	return authService.ValidateToken(tokenStr)
}
