// Package transport holds the error types shared by transport adapters.
package transport

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/tgcore/internal/core/domain"
)

// RPCError is an error answer from the server.
type RPCError struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Unwrap maps the error code to a domain sentinel.
func (e *RPCError) Unwrap() error {
	switch {
	case e.Code == 420:
		return domain.ErrRateLimited
	case e.Code == -503 || e.Code == 503:
		return domain.ErrDisconnected
	case e.Message == "PEER_ID_INVALID" || e.Message == "CHANNEL_INVALID" || e.Message == "USERNAME_NOT_OCCUPIED":
		return domain.ErrInvalidPeer
	default:
		return domain.ErrServerRejected
	}
}

// FloodWaitError asks the client to wait before repeating a request.
type FloodWaitError struct {
	Seconds int
}

// Error implements the error interface.
func (e *FloodWaitError) Error() string {
	return fmt.Sprintf("flood wait: retry in %ds", e.Seconds)
}

// Unwrap returns domain.ErrRateLimited.
func (e *FloodWaitError) Unwrap() error {
	return domain.ErrRateLimited
}

// Wait returns the requested wait as a duration.
func (e *FloodWaitError) Wait() time.Duration {
	return time.Duration(e.Seconds) * time.Second
}

// floodPrefixes are the messages carrying a wait in seconds as suffix.
var floodPrefixes = []string{"FLOOD_WAIT_", "FLOOD_PREMIUM_WAIT_", "SLOWMODE_WAIT_"}

// NewError builds the error for a server answer. Waits become
// *FloodWaitError; everything else is an *RPCError.
func NewError(code int, message string) error {
	for _, prefix := range floodPrefixes {
		if rest, ok := strings.CutPrefix(message, prefix); ok {
			if seconds, err := strconv.Atoi(rest); err == nil {
				return &FloodWaitError{Seconds: seconds}
			}
		}
	}
	return &RPCError{Code: code, Message: message}
}

// IsFloodWait reports whether err asks for a wait and returns it.
func IsFloodWait(err error) (time.Duration, bool) {
	var flood *FloodWaitError
	if errors.As(err, &flood) {
		return flood.Wait(), true
	}
	return 0, false
}
