package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestRequireUser(t *testing.T) {
	valid := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	expired := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := signToken(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"sub": "alice"})
	noSubject := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"name": "alice"})
	unsigned := signToken(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{"sub": "alice"})

	tests := []struct {
		name       string
		header     string
		target     string
		wantStatus int
	}{
		{"owner", "Bearer " + valid, "/search?userName=alice", http.StatusOK},
		{"blank user passes through", "Bearer " + valid, "/search?userName=", http.StatusOK},
		{"other user", "Bearer " + valid, "/search?userName=bob", http.StatusForbidden},
		{"missing header", "", "/search?userName=alice", http.StatusUnauthorized},
		{"not bearer", "Basic " + valid, "/search?userName=alice", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, "/search?userName=alice", http.StatusUnauthorized},
		{"wrong key", "Bearer " + wrongKey, "/search?userName=alice", http.StatusUnauthorized},
		{"no subject", "Bearer " + noSubject, "/search?userName=alice", http.StatusUnauthorized},
		{"alg none", "Bearer " + unsigned, "/search?userName=alice", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotSubject string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotSubject, _ = Subject(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			RequireUser(testSecret)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "alice", gotSubject)
			} else {
				assert.Empty(t, gotSubject)
			}
		})
	}
}
