// Package mcp exposes the pack store, selection state, presets, and macro
// surface to a host chat application over the Model Context Protocol.
package mcp

import (
	"context"
	"net/http"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"lumia/internal/resolver"
	"lumia/internal/settings"
)

// Persister is the slice of the store saver the server needs: debounced
// saves after ordinary mutations, immediate saves for imports.
type Persister interface {
	Schedule(doc *settings.Document)
	SaveNow(ctx context.Context, doc *settings.Document) error
}

type Server struct {
	doc      *settings.Document
	resolver *resolver.Resolver
	saver    Persister
	client   *http.Client
	mcp      *sdk.Server
}

func NewServer(doc *settings.Document, res *resolver.Resolver, saver Persister, client *http.Client, version string) *Server {
	s := &Server{
		doc:      doc,
		resolver: res,
		saver:    saver,
		client:   client,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "lumia",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
