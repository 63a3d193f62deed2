package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/tgcore/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for tgcore resources.
	uriScheme = "tgcore://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "peers",
		Name:        "peers",
		Description: "Peers recorded from previous responses",
		MIMEType:    "application/json",
	}, s.handlePeersResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "variants",
		Name:        "variants",
		Description: "Variant families the decoder understands",
		MIMEType:    "application/json",
	}, s.handleFamiliesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "variants/{family}",
		Name:        "variant-tags",
		Description: "Tags known for a variant family",
		MIMEType:    "application/json",
	}, s.handleTagsResource)
}

// handlePeersResource returns all stored peers.
func (s *Server) handlePeersResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Peer == nil {
		return jsonResource(req.Params.URI, []PeerOutput{})
	}

	peers, err := s.ports.Peer.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing peers: %w", err)
	}

	infos := make([]PeerOutput, len(peers))
	for i := range peers {
		infos[i] = peerOutput(peers[i])
	}
	return jsonResource(req.Params.URI, infos)
}

// handleFamiliesResource returns the decodable families.
func (s *Server) handleFamiliesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	families := s.ports.Decode.Families()
	names := make([]string, len(families))
	for i, f := range families {
		names[i] = f.String()
	}
	return jsonResource(req.Params.URI, names)
}

// handleTagsResource returns the tags of one family.
func (s *Server) handleTagsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	family := extractFamily(req.Params.URI)
	if family == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	tags := s.ports.Decode.Tags(domain.Family(family))
	if len(tags) == 0 {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResource(req.Params.URI, tags)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractFamily extracts the family from a URI like tgcore://variants/{family}.
func extractFamily(uri string) string {
	const prefix = uriScheme + "variants/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
