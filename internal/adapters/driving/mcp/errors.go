// Package mcp provides an MCP (Model Context Protocol) server adapter for tgcore.
// It lets AI assistants list boosts, stars history and story viewers, resolve
// peers and decode recorded envelopes.
package mcp

import "errors"

var (
	// ErrMissingDecodeService is returned when the decode service is not provided.
	ErrMissingDecodeService = errors.New("mcp: decode service is required")

	// ErrServiceUnavailable is returned by tools whose service is not configured.
	ErrServiceUnavailable = errors.New("mcp: service not configured")
)
