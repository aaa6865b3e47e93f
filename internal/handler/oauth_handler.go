package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/gradhunt/gradboard-backend/internal/config"
	"github.com/gradhunt/gradboard-backend/internal/response"
	"github.com/gradhunt/gradboard-backend/internal/service"
)

// OAuthHandler handles the Google admin sign-in endpoints.
type OAuthHandler struct {
	cfg          *config.Config
	oauthService *service.OAuthService
}

// NewOAuthHandler creates a new OAuthHandler.
func NewOAuthHandler(cfg *config.Config, oauthService *service.OAuthService) *OAuthHandler {
	return &OAuthHandler{cfg: cfg, oauthService: oauthService}
}

// GoogleLogin godoc
// GET /api/v1/auth/admin/google/login
// Redirects the caller to the Google consent screen.
func (h *OAuthHandler) GoogleLogin(c *gin.Context) {
	authURL, err := h.oauthService.BeginLogin(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrOAuthNotConfigured) {
			response.Fail(c, http.StatusInternalServerError, response.ErrOAuthNotConfigured)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	c.Redirect(http.StatusFound, authURL)
}

// GoogleCallback godoc
// GET /api/v1/auth/admin/google/callback
// Completes the code exchange and hands the minted token to the frontend —
// via redirect when a frontend base URL is configured, otherwise via a
// minimal page that stores the token client-side without printing it.
func (h *OAuthHandler) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	token, email, err := h.oauthService.CompleteLogin(c.Request.Context(), c.Query("state"), code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOAuthNotConfigured):
			response.Fail(c, http.StatusInternalServerError, response.ErrOAuthNotConfigured)
		case errors.Is(err, service.ErrInvalidOAuthState):
			response.Fail(c, http.StatusBadRequest, response.ErrOAuthState)
		case errors.Is(err, service.ErrEmailNotVerified):
			response.Fail(c, http.StatusForbidden, response.ErrEmailNotVerified)
		case errors.Is(err, service.ErrEmailNotAllowed):
			response.Fail(c, http.StatusForbidden, response.ErrEmailNotAllowed)
		default:
			response.Fail(c, http.StatusBadGateway, response.ErrOAuthFailed)
		}
		return
	}

	if h.cfg.FrontendBaseURL != "" {
		redirectTo := fmt.Sprintf("%s/secure-admin-login?token=%s&email=%s",
			h.cfg.FrontendBaseURL, url.QueryEscape(token), url.QueryEscape(email))
		c.Redirect(http.StatusFound, redirectTo)
		return
	}

	// No frontend configured: store the token in localStorage and navigate
	// onward. The raw token never appears in visible markup.
	safeToken := url.QueryEscape(token)
	safeEmail := url.QueryEscape(email)
	html := fmt.Sprintf(`<!doctype html><html><head><meta charset="utf-8"><meta name="viewport" content="width=device-width,initial-scale=1"></head><body><script>
try {
  localStorage.setItem('admin_token', decodeURIComponent('%s'));
  localStorage.setItem('admin_email', decodeURIComponent('%s'));
  window.location.replace('/secure-admin-login');
} catch (e) {
  window.location.replace('/secure-admin-login?token=%s&email=%s');
}
</script></body></html>`, safeToken, safeEmail, safeToken, safeEmail)

	c.Header("Content-Security-Policy", "default-src 'none'; script-src 'unsafe-inline'; connect-src 'self';")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
