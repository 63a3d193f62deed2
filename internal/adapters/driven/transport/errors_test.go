package transport

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/tgcore/internal/core/domain"
)

func TestNewError(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		message  string
		wantWait time.Duration
		wantIs   error
	}{
		{"flood wait", 420, "FLOOD_WAIT_3", 3 * time.Second, domain.ErrRateLimited},
		{"premium flood wait", 420, "FLOOD_PREMIUM_WAIT_10", 10 * time.Second, domain.ErrRateLimited},
		{"slow mode", 400, "SLOWMODE_WAIT_60", time.Minute, domain.ErrRateLimited},
		{"flood without seconds", 420, "FLOOD_WAIT_X", 0, domain.ErrRateLimited},
		{"bad request", 400, "STORY_ID_INVALID", 0, domain.ErrServerRejected},
		{"invalid peer", 400, "PEER_ID_INVALID", 0, domain.ErrInvalidPeer},
		{"timeout", -503, "Timeout", 0, domain.ErrDisconnected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewError(tt.code, tt.message)

			assert.ErrorIs(t, err, tt.wantIs)
			wait, ok := IsFloodWait(err)
			assert.Equal(t, tt.wantWait != 0, ok)
			assert.Equal(t, tt.wantWait, wait)
		})
	}
}

func TestIsFloodWait_Wrapped(t *testing.T) {
	err := fmt.Errorf("premium.getBoostsList: %w", NewError(420, "FLOOD_WAIT_5"))

	wait, ok := IsFloodWait(err)

	assert.True(t, ok)
	assert.Equal(t, 5*time.Second, wait)
	_, ok = IsFloodWait(errors.New("other"))
	assert.False(t, ok)
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "rpc error 400: STORY_ID_INVALID", NewError(400, "STORY_ID_INVALID").Error())
	assert.Equal(t, "flood wait: retry in 3s", NewError(420, "FLOOD_WAIT_3").Error())
}
