package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradhunt/gradboard-backend/internal/config"
	"github.com/gradhunt/gradboard-backend/internal/model"
)

type fakeAdminStore struct {
	upserted *model.Admin
}

func (f *fakeAdminStore) UpsertByEmail(_ context.Context, email, passwordHash string) (*model.Admin, error) {
	f.upserted = &model.Admin{ID: 1, Email: email, PasswordHash: passwordHash}
	return f.upserted, nil
}

func newTestOAuthService(cfg *config.Config) (*OAuthService, *fakeAdminStore) {
	store := &fakeAdminStore{}
	auth := NewAuthService(cfg)
	svc := NewOAuthService(cfg, store, auth, nil, zerolog.Nop())
	return svc, store
}

func TestBeginLoginNotConfigured(t *testing.T) {
	svc, _ := newTestOAuthService(&config.Config{})

	_, err := svc.BeginLogin(context.Background())
	assert.ErrorIs(t, err, ErrOAuthNotConfigured)
}

func TestCompleteLoginNotConfigured(t *testing.T) {
	svc, _ := newTestOAuthService(&config.Config{GoogleClientID: "id-only"})

	_, _, err := svc.CompleteLogin(context.Background(), "state", "code")
	assert.ErrorIs(t, err, ErrOAuthNotConfigured)
}

func TestVerifyIDToken(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		email   string
		wantErr error
	}{
		{"verified", http.StatusOK, `{"email":"admin@example.com","email_verified":"true"}`, "admin@example.com", nil},
		{"unverified", http.StatusOK, `{"email":"admin@example.com","email_verified":"false"}`, "", ErrEmailNotVerified},
		{"missing email", http.StatusOK, `{"email_verified":"true"}`, "", ErrEmailNotVerified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.NotEmpty(t, r.URL.Query().Get("id_token"))
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			svc, _ := newTestOAuthService(&config.Config{
				GoogleClientID:     "client-id",
				GoogleClientSecret: "client-secret",
				JWTSecret:          "test-secret",
				JWTExpiry:          time.Hour,
			})
			svc.tokenInfoURL = srv.URL
			svc.httpClient = srv.Client()

			email, err := svc.verifyIDToken(context.Background(), "fake-id-token")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.email, email)
		})
	}
}

func TestVerifyIDTokenUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	svc, _ := newTestOAuthService(&config.Config{})
	svc.tokenInfoURL = srv.URL
	svc.httpClient = srv.Client()

	_, err := svc.verifyIDToken(context.Background(), "expired-token")
	assert.Error(t, err)
}

func TestEmailAllowed(t *testing.T) {
	// Empty allow-list permits any verified account.
	svc, _ := newTestOAuthService(&config.Config{})
	assert.True(t, svc.emailAllowed("anyone@example.com"))

	svc, _ = newTestOAuthService(&config.Config{
		AdminAllowedEmails: []string{"a@example.com", "b@example.com"},
	})
	assert.True(t, svc.emailAllowed("a@example.com"))
	assert.True(t, svc.emailAllowed("b@example.com"))
	assert.False(t, svc.emailAllowed("c@example.com"))
	assert.False(t, svc.emailAllowed("A@example.com")) // Exact match only.
}
