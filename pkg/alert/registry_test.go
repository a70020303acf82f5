package alert

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAdapter struct {
	sourceType string
	handles    bool
	alert      *Alert
	err        error
}

func (s *stubAdapter) SourceType() string            { return s.sourceType }
func (s *stubAdapter) CanHandle(raw []byte) bool      { return s.handles }
func (s *stubAdapter) ParseAlert([]byte) (*Alert, error) { return s.alert, s.err }

func TestRegistry_FirstMatchWins(t *testing.T) {
	first := &stubAdapter{sourceType: "first", handles: true, alert: &Alert{ID: "a1"}}
	second := &stubAdapter{sourceType: "second", handles: true, alert: &Alert{ID: "a2"}}
	r := NewRegistry(first, second)

	got, err := r.Parse([]byte("payload"))
	require.NoError(t, err)
	assert.Equal(t, "a1", got.ID)
}

func TestRegistry_NoAdapterClaims(t *testing.T) {
	r := NewRegistry(&stubAdapter{sourceType: "a", handles: false})
	_, err := r.Parse([]byte("payload"))
	require.Error(t, err)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestRegistry_ClaimingAdapterFails(t *testing.T) {
	r := NewRegistry(&stubAdapter{sourceType: "a", handles: true, err: errors.New("boom")})
	_, err := r.Parse([]byte("payload"))
	require.Error(t, err)
}

func TestRegistry_SkippableEventReturnsNilNil(t *testing.T) {
	r := NewRegistry(&stubAdapter{sourceType: "a", handles: true, alert: nil})
	got, err := r.Parse([]byte("payload"))
	assert.NoError(t, err)
	assert.Nil(t, got)
}
