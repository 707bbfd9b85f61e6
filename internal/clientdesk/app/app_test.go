package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/clientdesk/pkg/clientsdk"
	"github.com/aussiebroadwan/clientdesk/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestApplication_SignupAndSignin(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		Env:                 "dev",
		LogLevel:            "error",
		ShutdownGracePeriod: time.Second,
		DatabaseDriver:      DriverSQLite,
		DatabaseFile:        filepath.Join(dir, "clientdesk.db"),
		PepperFile:          filepath.Join(dir, "pepper"),
		JWTExpiry:           Expiry(time.Hour),
		JWTIssuer:           "clientdesk",
		StrictLimit:         httpx.StrictLimit,
		LenientLimit:        httpx.LenientLimit,
	}
	require.NoError(t, cfg.Validate())

	app, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Shutdown() })

	srv := httptest.NewServer(app.Handler())
	t.Cleanup(srv.Close)

	post := func(path string, body any) *http.Response {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		resp, err := http.Post(srv.URL+path, "application/json", bytes.NewReader(raw))
		require.NoError(t, err)
		t.Cleanup(func() { _ = resp.Body.Close() })
		return resp
	}

	resp := post("/v1/clients/signup", clientsdk.SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "correct-horse"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = post("/v1/clients/signin", clientsdk.SigninRequest{Email: "ada@example.com", Password: "correct-horse"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var session clientsdk.SigninResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&session))
	require.NotEmpty(t, session.Token)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/v1/clients/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	me, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer me.Body.Close()
	require.Equal(t, http.StatusOK, me.StatusCode)
}

func TestApplication_InvalidSecret(t *testing.T) {
	dir := t.TempDir()
	_, err := New(Config{
		Env:            "dev",
		DatabaseDriver: DriverSQLite,
		DatabaseFile:   filepath.Join(dir, "clientdesk.db"),
		PepperFile:     filepath.Join(dir, "pepper"),
		JWTSecret:      "short",
	})
	require.Error(t, err)
}
