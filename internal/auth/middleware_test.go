package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier map[string]*Claims

func (s stubVerifier) VerifyToken(token string) (*Claims, error) {
	if c, ok := s[token]; ok {
		return c, nil
	}
	return nil, errors.New("bad token")
}

func scopeByPath(r *http.Request) string {
	if r.URL.Path == "/set" {
		return ScopeWrite
	}
	return ScopeRead
}

func TestRequireAuth(t *testing.T) {
	m := NewMiddleware(stubVerifier{
		"reader": {Subject: "r", Scopes: []string{ScopeRead}},
		"writer": {Subject: "w", Scopes: []string{ScopeRead, ScopeWrite}},
	})

	var seen *Claims
	h := m.RequireAuth(scopeByPath, func(w http.ResponseWriter, r *http.Request) {
		seen = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name    string
		path    string
		header  string
		status  int
		message string
	}{
		{"missing header", "/get", "", http.StatusUnauthorized, "Authentication required"},
		{"wrong scheme", "/get", "Basic abc", http.StatusUnauthorized, "Authentication required"},
		{"empty bearer", "/get", "Bearer  ", http.StatusUnauthorized, "Authentication required"},
		{"unknown token", "/get", "Bearer nope", http.StatusUnauthorized, "Invalid token"},
		{"reader on write", "/set", "Bearer reader", http.StatusForbidden, "Insufficient permissions"},
		{"reader on read", "/get", "Bearer reader", http.StatusOK, ""},
		{"writer on write", "/set", "Bearer writer", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h(rec, req)

			require.Equal(t, tt.status, rec.Code)
			if tt.message == "" {
				require.NotNil(t, seen)
				return
			}
			assert.Nil(t, seen)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, map[string]string{"error": tt.message}, body)
		})
	}
}

func TestEmptyScopeNeedsOnlyToken(t *testing.T) {
	m := NewMiddleware(stubVerifier{"none": {Subject: "n"}})
	h := m.RequireAuth(func(*http.Request) string { return "" }, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/elsewhere", nil)
	req.Header.Set("Authorization", "Bearer none")
	rec := httptest.NewRecorder()
	h(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHasScopeNil(t *testing.T) {
	var c *Claims
	assert.False(t, c.HasScope(ScopeRead))
}
