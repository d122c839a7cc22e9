package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"hellomiami/internal/domain"
)

type stubVerifier struct {
	memberID string
	roles    []string
	err      error
}

func (v *stubVerifier) Verify(token string) (string, []string, error) {
	if v.err != nil {
		return "", nil, v.err
	}
	return v.memberID, v.roles, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		verifier   *stubVerifier
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "missing header",
			authHeader: "",
			verifier:   &stubVerifier{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic abc123",
			verifier:   &stubVerifier{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty token",
			authHeader: "Bearer ",
			verifier:   &stubVerifier{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bad-token",
			verifier:   &stubVerifier{err: errors.New("expired")},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token",
			authHeader: "Bearer good-token",
			verifier:   &stubVerifier{memberID: "m1", roles: []string{domain.RoleMember}},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			var gotMemberID string
			var gotRoles []string
			next := func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotMemberID, _ = MemberIDFromContext(r.Context())
				gotRoles = RolesFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}

			handler := RequireAuth(tt.verifier, discardLogger())(next)
			req := httptest.NewRequest(http.MethodGet, "/members/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			handler(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if nextCalled != tt.wantNext {
				t.Fatalf("expected nextCalled=%v, got %v", tt.wantNext, nextCalled)
			}
			if tt.wantNext {
				if gotMemberID != "m1" {
					t.Fatalf("expected member ID m1 in context, got %q", gotMemberID)
				}
				if len(gotRoles) != 1 || gotRoles[0] != domain.RoleMember {
					t.Fatalf("expected member role in context, got %v", gotRoles)
				}
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	next := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
	handler := RequireAdmin(next)

	req := httptest.NewRequest(http.MethodPost, "/events", nil)
	req = req.WithContext(SetRoles(req.Context(), []string{domain.RoleMember}))
	w := httptest.NewRecorder()
	handler(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status %d for non-admin, got %d", http.StatusForbidden, w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/events", nil)
	req = req.WithContext(SetRoles(req.Context(), []string{domain.RoleMember, domain.RoleAdmin}))
	w = httptest.NewRecorder()
	handler(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d for admin, got %d", http.StatusOK, w.Code)
	}
}
