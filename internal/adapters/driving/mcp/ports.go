package mcp

import (
	"github.com/custodia-labs/tgcore/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Decode decodes recorded envelopes. It needs no transport.
	Decode driving.DecodeService

	// Boost, Payment and Story need a transport and are optional.
	Boost   driving.BoostService
	Payment driving.PaymentService
	Story   driving.StoryService

	// Peer resolves peer references and lists known peers.
	Peer driving.PeerService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Decode == nil {
		return ErrMissingDecodeService
	}
	return nil
}
