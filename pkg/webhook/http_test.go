package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarsy-labs/checklist-rag/pkg/checklist"
)

func TestHTTPDestination_Attempt_SuccessRoundTrip(t *testing.T) {
	var received checklist.Checklist
	var gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Custom")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	dest := NewHTTPDestination("test", srv.URL, map[string]string{"X-Custom": "abc"}, Filter{}, DefaultRetryConfig(), nil)
	result := dest.Attempt(context.Background(), checklist.Checklist{AlertID: "alert-1"})

	assert.True(t, result.Success)
	assert.Equal(t, 200, result.StatusCode)
	assert.Equal(t, "alert-1", received.AlertID)
	assert.Equal(t, "abc", gotHeader)
}

func TestHTTPDestination_Attempt_ServerErrorIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	dest := NewHTTPDestination("test", srv.URL, nil, Filter{}, DefaultRetryConfig(), nil)
	result := dest.Attempt(context.Background(), checklist.Checklist{AlertID: "alert-1"})

	assert.False(t, result.Success)
	assert.Equal(t, 500, result.StatusCode)
	assert.Error(t, result.Err)
}

func TestHTTPDestination_Attempt_ConnectionErrorHasNoStatusCode(t *testing.T) {
	dest := NewHTTPDestination("test", "http://127.0.0.1:0", nil, Filter{}, DefaultRetryConfig(), nil)
	result := dest.Attempt(context.Background(), checklist.Checklist{AlertID: "alert-1"})

	assert.False(t, result.Success)
	assert.Equal(t, 0, result.StatusCode)
	assert.Error(t, result.Err)
}
