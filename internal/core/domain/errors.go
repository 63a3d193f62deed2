package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent decode and retrieval failures.
// Transport errors are distinct and pass through the core unchanged.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedVariant indicates a recognised variant is missing a field
	// its decoder requires, or a field has the wrong type.
	// It means the client is out of sync with the server schema.
	ErrMalformedVariant = errors.New("malformed variant")

	// ErrUnsupportedVariant indicates a variant tag the registry does not know.
	// It is only returned where the call site escalates unsupported variants.
	ErrUnsupportedVariant = errors.New("unsupported variant")

	// ErrInvalidCursor indicates a pagination cursor could not be decoded.
	ErrInvalidCursor = errors.New("invalid cursor")

	// ErrInvalidPeer indicates a peer reference could not be parsed or resolved.
	ErrInvalidPeer = errors.New("invalid peer")

	// Transport Errors.

	// ErrRateLimited indicates the server asked the client to slow down.
	ErrRateLimited = errors.New("rate limited")

	// ErrDisconnected indicates the transport lost its connection.
	ErrDisconnected = errors.New("disconnected")

	// ErrServerRejected indicates the server refused the request.
	ErrServerRejected = errors.New("server rejected request")

	// ErrTransportUnavailable indicates no transport is configured.
	ErrTransportUnavailable = errors.New("transport unavailable")
)

// MalformedVariantError describes a variant that failed structural validation.
type MalformedVariantError struct {
	Family Family
	Tag    string
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *MalformedVariantError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed variant %s/%s: %s", e.Family, e.Tag, e.Reason)
	}
	return fmt.Sprintf("malformed variant %s/%s: field %q %s", e.Family, e.Tag, e.Field, e.Reason)
}

// Is reports whether target is ErrMalformedVariant.
func (e *MalformedVariantError) Is(target error) bool {
	return target == ErrMalformedVariant
}

// UnsupportedVariantError reports an unknown tag within a known family.
type UnsupportedVariantError struct {
	Family Family
	Tag    string
}

// Error implements the error interface.
func (e *UnsupportedVariantError) Error() string {
	return fmt.Sprintf("unsupported variant %s/%s", e.Family, e.Tag)
}

// Is reports whether target is ErrUnsupportedVariant.
func (e *UnsupportedVariantError) Is(target error) bool {
	return target == ErrUnsupportedVariant
}

// IsMalformed returns true if err is or wraps a malformed variant error.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedVariant)
}

// IsUnsupported returns true if err is or wraps an unsupported variant error.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupportedVariant)
}
