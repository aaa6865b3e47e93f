package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/gradhunt/gradboard-backend/internal/config"
	"github.com/gradhunt/gradboard-backend/internal/model"
)

// OAuth bridge errors.
var (
	ErrOAuthNotConfigured = errors.New("google oauth is not configured")
	ErrInvalidOAuthState  = errors.New("unknown or reused oauth state")
	ErrNoIdentityToken    = errors.New("no id_token in provider response")
	ErrEmailNotVerified   = errors.New("email missing or not verified")
	ErrEmailNotAllowed    = errors.New("email not in admin allow-list")
)

const (
	oauthStateTTL       = 10 * time.Minute
	defaultTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"
)

// AdminStore is the account surface the bridge needs.
type AdminStore interface {
	UpsertByEmail(ctx context.Context, email, passwordHash string) (*model.Admin, error)
}

// OAuthService exchanges a Google authorization code for a verified identity
// and mints a credential token for allow-listed administrator emails.
type OAuthService struct {
	cfg          *config.Config
	admins       AdminStore
	auth         *AuthService
	rdb          *redis.Client
	httpClient   *http.Client
	tokenInfoURL string
	log          zerolog.Logger
}

// NewOAuthService creates a new OAuthService.
func NewOAuthService(cfg *config.Config, admins AdminStore, auth *AuthService, rdb *redis.Client, log zerolog.Logger) *OAuthService {
	return &OAuthService{
		cfg:          cfg,
		admins:       admins,
		auth:         auth,
		rdb:          rdb,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		tokenInfoURL: defaultTokenInfoURL,
		log:          log.With().Str("component", "oauth_service").Logger(),
	}
}

func (s *OAuthService) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.cfg.GoogleClientID,
		ClientSecret: s.cfg.GoogleClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  s.cfg.ServerBaseURL + "/api/v1/auth/admin/google/callback",
		Scopes:       []string{"openid", "email", "profile"},
	}
}

// BeginLogin builds the provider consent URL with a single-use state nonce.
// Fails when no client identifier is configured.
func (s *OAuthService) BeginLogin(ctx context.Context) (string, error) {
	if s.cfg.GoogleClientID == "" {
		return "", ErrOAuthNotConfigured
	}

	state := uuid.New().String()
	if err := s.rdb.Set(ctx, config.CacheKey.OAuthStateKey(state), "1", oauthStateTTL).Err(); err != nil {
		return "", fmt.Errorf("store oauth state: %w", err)
	}

	return s.oauthConfig().AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "select_account"),
	), nil
}

// CompleteLogin consumes the callback state and code, verifies the identity
// assertion, enforces the allow-list, upserts the admin row (with a random
// hashed password so the schema constraint holds) and mints a credential
// token. Returns the token and the verified email.
func (s *OAuthService) CompleteLogin(ctx context.Context, state, code string) (string, string, error) {
	if s.cfg.GoogleClientID == "" || s.cfg.GoogleClientSecret == "" {
		return "", "", ErrOAuthNotConfigured
	}

	consumed, err := s.rdb.GetDel(ctx, config.CacheKey.OAuthStateKey(state)).Result()
	if err != nil || consumed == "" {
		return "", "", ErrInvalidOAuthState
	}

	tok, err := s.oauthConfig().Exchange(ctx, code)
	if err != nil {
		return "", "", fmt.Errorf("exchange code: %w", err)
	}

	idToken, ok := tok.Extra("id_token").(string)
	if !ok || idToken == "" {
		return "", "", ErrNoIdentityToken
	}

	email, err := s.verifyIDToken(ctx, idToken)
	if err != nil {
		return "", "", err
	}

	if !s.emailAllowed(email) {
		return "", "", ErrEmailNotAllowed
	}

	// The admins schema requires a password hash even for OAuth accounts.
	hash, err := s.auth.HashPassword(uuid.New().String())
	if err != nil {
		return "", "", fmt.Errorf("hash random password: %w", err)
	}

	admin, err := s.admins.UpsertByEmail(ctx, email, hash)
	if err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("admin upsert failed")
		return "", "", fmt.Errorf("upsert admin: %w", err)
	}

	token, err := s.auth.GenerateAdminToken(admin.ID, admin.Email)
	if err != nil {
		return "", "", err
	}
	return token, email, nil
}

// tokenInfo is the subset of the provider metadata response we care about.
// email_verified arrives as the string "true" from the tokeninfo endpoint.
type tokenInfo struct {
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
}

// verifyIDToken confirms the assertion with the provider and that the email
// is present and verified.
func (s *OAuthService) verifyIDToken(ctx context.Context, idToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.tokenInfoURL+"?id_token="+url.QueryEscape(idToken), nil)
	if err != nil {
		return "", fmt.Errorf("build tokeninfo request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("tokeninfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tokeninfo status %d", resp.StatusCode)
	}

	var info tokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("decode tokeninfo: %w", err)
	}

	if info.Email == "" || info.EmailVerified != "true" {
		return "", ErrEmailNotVerified
	}
	return info.Email, nil
}

// emailAllowed checks the configured allow-list. An empty list permits any
// verified account (dev default).
func (s *OAuthService) emailAllowed(email string) bool {
	if len(s.cfg.AdminAllowedEmails) == 0 {
		return true
	}
	for _, allowed := range s.cfg.AdminAllowedEmails {
		if allowed == email {
			return true
		}
	}
	return false
}
