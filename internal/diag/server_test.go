package diag

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ride-hail-client/internal/common/logger"
)

func testLogger() *logger.Logger {
	return logger.NewWithWriter("test", io.Discard)
}

func TestHealthz(t *testing.T) {
	s := New(0, func() any { return nil }, nil, testLogger())
	srv := httptest.NewServer(s.routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStateSnapshot(t *testing.T) {
	s := New(0, func() any {
		return map[string]any{"role": "rider", "authenticated": true}
	}, nil, testLogger())
	srv := httptest.NewServer(s.routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/state")
	require.NoError(t, err)
	defer resp.Body.Close()

	var state map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	assert.Equal(t, "rider", state["role"])
	assert.Equal(t, true, state["authenticated"])
}

func TestMetricsExposed(t *testing.T) {
	s := New(0, func() any { return nil }, nil, testLogger())
	srv := httptest.NewServer(s.routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestAvailabilityToggleOnlyWhenRegistered(t *testing.T) {
	// no toggle registered: the route does not exist
	s := New(0, func() any { return nil }, nil, testLogger())
	srv := httptest.NewServer(s.routes())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/availability/toggle", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// toggle registered: flips and reports the new state
	online := false
	s2 := New(0, func() any { return nil }, func(ctx context.Context) (bool, error) {
		online = !online
		return online, nil
	}, testLogger())
	srv2 := httptest.NewServer(s2.routes())
	defer srv2.Close()

	resp, err = http.Post(srv2.URL+"/availability/toggle", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out["online"])
}

func TestAvailabilityToggleErrorPropagates(t *testing.T) {
	s := New(0, func() any { return nil }, func(ctx context.Context) (bool, error) {
		return false, errors.New("backend unreachable")
	}, testLogger())
	srv := httptest.NewServer(s.routes())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/availability/toggle", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.Contains(string(body), "backend unreachable"))
}
