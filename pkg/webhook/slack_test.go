package webhook

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarsy-labs/checklist-rag/pkg/checklist"
	"github.com/tarsy-labs/checklist-rag/pkg/slack"
)

func TestSlackDestination_Attempt_PostsChecklist(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotBody = r.FormValue("blocks")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"ts":"1700000000.000100"}`))
	}))
	defer srv.Close()

	client := slack.NewClientWithAPIURL("xoxb-test", "C123", srv.URL+"/")
	service := slack.NewServiceWithClient(client, "https://dash.example.com")
	dest := NewSlackDestination("slack-oncall", service, Filter{}, DefaultRetryConfig())

	result := dest.Attempt(context.Background(), checklist.Checklist{AlertID: "alert-9", Summary: "mem high"})

	assert.True(t, result.Success)
	assert.Contains(t, gotBody, "alert-9")
}

func TestSlackDestination_Attempt_APIErrorIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":false,"error":"channel_not_found"}`))
	}))
	defer srv.Close()

	client := slack.NewClientWithAPIURL("xoxb-test", "C123", srv.URL+"/")
	service := slack.NewServiceWithClient(client, "https://dash.example.com")
	dest := NewSlackDestination("slack-oncall", service, Filter{}, DefaultRetryConfig())

	result := dest.Attempt(context.Background(), checklist.Checklist{AlertID: "alert-10"})

	assert.False(t, result.Success)
	assert.Error(t, result.Err)
}

func TestSlackDestination_ShouldSend_RespectsFilter(t *testing.T) {
	dest := NewSlackDestination("slack-oncall", nil, Filter{Severities: []string{"CRITICAL"}}, DefaultRetryConfig())
	assert.True(t, dest.ShouldSend("CRITICAL", nil))
	assert.False(t, dest.ShouldSend("WARNING", nil))
}
