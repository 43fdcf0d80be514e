package accounts

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mk-cardoso198/engajapro-digital-hub/internal/auth"
	"github.com/mk-cardoso198/engajapro-digital-hub/internal/validation"
)

func newTestHandler(repo *fakeRepo, manager *auth.Manager) *Handler {
	svc := NewService(repo, time.UTC)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(svc, manager, validation.New(), log, "", false)
}

func refreshRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: RefreshCookieName, Value: token})
	return req
}

func TestRefreshRejectsAccessTokenInCookie(t *testing.T) {
	repo := &fakeRepo{}
	user := seedUser(t, repo, "admin", "s3cret", RoleAdmin)
	manager := &auth.Manager{
		Secret:     []byte("test-secret"),
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 24 * time.Hour,
		Issuer:     "engajapro-backend",
	}
	handler := newTestHandler(repo, manager)

	access, err := manager.NewAccessToken(user.ID, user.Role)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.Refresh(rec, refreshRequest(access))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for access token in refresh cookie, got %d", rec.Code)
	}
}

func TestRefreshAcceptsRefreshToken(t *testing.T) {
	repo := &fakeRepo{}
	user := seedUser(t, repo, "admin", "s3cret", RoleAdmin)
	manager := &auth.Manager{
		Secret:     []byte("test-secret"),
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 24 * time.Hour,
		Issuer:     "engajapro-backend",
	}
	handler := newTestHandler(repo, manager)

	refresh, err := manager.NewRefreshToken(user.ID, user.Role)
	if err != nil {
		t.Fatalf("NewRefreshToken error: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.Refresh(rec, refreshRequest(refresh))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for refresh token, got %d: %s", rec.Code, rec.Body.String())
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 2 {
		t.Fatalf("expected rotated cookie pair, got %d cookies", len(cookies))
	}
}
