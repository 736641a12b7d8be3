package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dosada05/club-management/models"
	"github.com/golang-jwt/jwt/v4"
)

var testSecret = []byte("test-secret")

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestAuthenticatePutsClaimsInContext(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{
		"user_id": 7,
		"role":    "admin",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	var gotUserID int
	var gotRole models.UserRole
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		gotUserID, err = GetUserIDFromContext(r.Context())
		if err != nil {
			t.Errorf("GetUserIDFromContext: %v", err)
		}
		gotRole, err = GetUserRoleFromContext(r.Context())
		if err != nil {
			t.Errorf("GetUserRoleFromContext: %v", err)
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()

	Authenticate(testSecret)(next).ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if gotUserID != 7 {
		t.Fatalf("expected user id 7, got %d", gotUserID)
	}
	if gotRole != models.RoleAdmin {
		t.Fatalf("expected admin role, got %s", gotRole)
	}
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	expired := signedToken(t, jwt.MapClaims{
		"user_id": 7,
		"role":    "user",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
		{"expired token", "Bearer " + expired},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run for unauthorized requests")
	})

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if c.header != "" {
				req.Header.Set("Authorization", c.header)
			}
			recorder := httptest.NewRecorder()

			Authenticate(testSecret)(next).ServeHTTP(recorder, req)

			if recorder.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", recorder.Code)
			}
		})
	}
}

// Claims из разобранного JWT приходят с числами как float64.
func TestClaimsAccessors(t *testing.T) {
	ctx := WithClaims(httptest.NewRequest(http.MethodGet, "/", nil).Context(), jwt.MapClaims{
		"user_id": float64(12),
		"role":    "user",
	})

	userID, err := GetUserIDFromContext(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != 12 {
		t.Fatalf("expected user id 12, got %d", userID)
	}

	role, err := GetUserRoleFromContext(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role != models.RoleUser {
		t.Fatalf("expected user role, got %s", role)
	}

	if _, err := GetUserRoleFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context()); err == nil {
		t.Fatal("expected error without claims in context")
	}
}
