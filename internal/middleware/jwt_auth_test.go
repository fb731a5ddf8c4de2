package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fhuszti/event-medias-go/internal/api_context"
	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "wedding-admin-secret"

func cloneClaims(c jwt.MapClaims) jwt.MapClaims {
	out := jwt.MapClaims{}
	for k, v := range c {
		out[k] = v
	}
	return out
}

func TestWithJWTAuth(t *testing.T) {
	middleware := WithJWTAuth(testSecret)

	baseClaims := jwt.MapClaims{
		"exp": time.Now().Add(time.Minute).Unix(),
		"iat": time.Now().Unix(),
		"sub": "admin@example.com",
	}
	sign := func(claims jwt.MapClaims) (string, error) {
		return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	}

	tests := []struct {
		name           string
		modifyClaims   func(jwt.MapClaims) jwt.MapClaims
		tokenFactory   func(jwt.MapClaims) (string, error)
		authHeader     string
		wantStatus     int
		expectNextCall bool
	}{
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong prefix",
			authHeader: "Token abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "bad signature",
			tokenFactory: func(claims jwt.MapClaims) (string, error) {
				return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "wrong method",
			tokenFactory: func(claims jwt.MapClaims) (string, error) {
				return jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "expired",
			modifyClaims: func(c jwt.MapClaims) jwt.MapClaims {
				c["exp"] = time.Now().Add(-time.Minute).Unix()
				return c
			},
			tokenFactory: sign,
			wantStatus:   http.StatusUnauthorized,
		},
		{
			name: "missing exp",
			modifyClaims: func(c jwt.MapClaims) jwt.MapClaims {
				delete(c, "exp")
				return c
			},
			tokenFactory: sign,
			wantStatus:   http.StatusUnauthorized,
		},
		{
			name: "future iat",
			modifyClaims: func(c jwt.MapClaims) jwt.MapClaims {
				c["iat"] = time.Now().Add(time.Hour).Unix()
				return c
			},
			tokenFactory: sign,
			wantStatus:   http.StatusUnauthorized,
		},
		{
			name: "missing sub",
			modifyClaims: func(c jwt.MapClaims) jwt.MapClaims {
				delete(c, "sub")
				return c
			},
			tokenFactory: sign,
			wantStatus:   http.StatusUnauthorized,
		},
		{
			name:           "valid token",
			tokenFactory:   sign,
			wantStatus:     http.StatusNoContent,
			expectNextCall: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				if sub, ok := api_context.AuthSubjectFromContext(r.Context()); ok {
					w.Header().Set("X-Subject", sub)
				}
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodPost, "/media/catalog", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			} else if tc.tokenFactory != nil {
				claims := cloneClaims(baseClaims)
				if tc.modifyClaims != nil {
					claims = tc.modifyClaims(claims)
				}
				token, err := tc.tokenFactory(claims)
				if err != nil {
					t.Fatalf("sign token: %v", err)
				}
				req.Header.Set("Authorization", "Bearer "+token)
			}

			rec := httptest.NewRecorder()
			middleware(next).ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d", rec.Code, tc.wantStatus)
			}
			if nextCalled != tc.expectNextCall {
				t.Fatalf("nextCalled = %v; want %v", nextCalled, tc.expectNextCall)
			}
			if tc.expectNextCall {
				if got := rec.Header().Get("X-Subject"); got != "admin@example.com" {
					t.Fatalf("subject = %q; want %q", got, "admin@example.com")
				}
			}
		})
	}
}

func TestWithJWTAuth_Passthrough(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	WithJWTAuth("")(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/media/images", nil))

	if !called || rec.Code != http.StatusNoContent {
		t.Fatalf("passthrough failed: called=%v status=%d", called, rec.Code)
	}
}
