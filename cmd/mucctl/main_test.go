package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		var stdout string
		switch r.URL.Path {
		case "/muc/list":
			stdout = "lobby@groups.chat.protype.tw\nops@groups.chat.protype.tw\n"
		case "/muc/get-affiliation":
			stdout = "admin\n"
		case "/muc/set-affiliation":
			stdout = "OK: Affiliation set\n"
		default:
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Not Found"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "stdout": stdout})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRooms(t *testing.T) {
	srv := fakeAPI(t)
	var out bytes.Buffer

	require.NoError(t, run([]string{"--server", srv.URL, "rooms", "groups.chat.protype.tw"}, &out))
	assert.Contains(t, out.String(), "lobby@groups.chat.protype.tw")
	assert.Contains(t, out.String(), "ops@groups.chat.protype.tw")
}

func TestRawOutput(t *testing.T) {
	srv := fakeAPI(t)
	var out bytes.Buffer

	require.NoError(t, run([]string{"--server", srv.URL, "--raw", "get", "r@groups.chat.protype.tw", "u@chat.protype.tw"}, &out))
	assert.Equal(t, "admin\n", out.String())
}

func TestGetAndSet(t *testing.T) {
	srv := fakeAPI(t)
	var out bytes.Buffer

	require.NoError(t, run([]string{"--server", srv.URL, "get", "r@groups.chat.protype.tw", "u@chat.protype.tw"}, &out))
	assert.Equal(t, "admin\n", out.String())

	out.Reset()
	require.NoError(t, run([]string{"--server", srv.URL, "set", "r@groups.chat.protype.tw", "u@chat.protype.tw", "member"}, &out))
	assert.Contains(t, out.String(), "is now member")
}

func TestUsageErrors(t *testing.T) {
	var out bytes.Buffer
	cases := [][]string{
		{},
		{"rooms"},
		{"get", "only-room"},
		{"set", "r", "u", "superadmin"},
		{"frobnicate"},
		{"--no-such-flag"},
	}
	for _, args := range cases {
		err := run(args, &out)
		assert.ErrorIs(t, err, errUsage, "%v", args)
	}
}
