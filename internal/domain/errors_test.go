package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectorError_IsMatchesKind(t *testing.T) {
	tests := []struct {
		err  *CollectorError
		kind error
	}{
		{NewAuthError("connect", "rejected", nil), ErrAuth},
		{NewConnectionError("connect", "unreachable", nil), ErrConnection},
		{NewProtocolError("fetch usage", "bad payload", nil), ErrProtocol},
		{NewStorageError("upsert", "2026-02-26", nil), ErrStorage},
		{NewTimeoutError("fetch usage", "no response", nil), ErrTimeout},
	}

	all := []error{ErrAuth, ErrConnection, ErrProtocol, ErrStorage, ErrTimeout}
	for _, tt := range tests {
		t.Run(tt.kind.Error(), func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.kind)
			for _, other := range all {
				if other != tt.kind {
					assert.NotErrorIs(t, tt.err, other)
				}
			}
		})
	}
}

func TestCollectorError_WrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("saving: %w", NewStorageError("upsert", "2026-02-26", cause))

	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "saving: upsert: storage failure: 2026-02-26 (disk full)", err.Error())
}

func TestCollectorError_MessageWithoutOpOrCause(t *testing.T) {
	err := &CollectorError{Kind: ErrTimeout}
	assert.Equal(t, "timed out", err.Error())
}

func TestWithSuggestion_ReturnsCopy(t *testing.T) {
	base := NewAuthError("connect", "missing token", nil)
	hinted := base.WithSuggestion("Set OPENCLAW_TOKEN")

	assert.Empty(t, base.Suggestion)
	assert.Equal(t, "Set OPENCLAW_TOKEN", hinted.Suggestion)
	assert.Equal(t, "Set OPENCLAW_TOKEN", SuggestionOf(fmt.Errorf("wrapped: %w", hinted)))
	assert.Empty(t, SuggestionOf(errors.New("plain")))
}
