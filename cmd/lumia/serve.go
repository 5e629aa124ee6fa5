package main

import (
	"context"
	"net/http"

	"github.com/spf13/cobra"

	"lumia/internal/mcp"
	"lumia/internal/resolver"
	"lumia/internal/store"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, st, doc, err := openDocument(ctx)
	if err != nil {
		return err
	}
	defer st.Close(ctx)

	saver := store.NewSaver(st, cfg.SaveDebounce())
	res := resolver.New(doc)
	client := &http.Client{Timeout: cfg.FetchTimeout()}

	server := mcp.NewServer(doc, res, saver, client, version)
	err = server.Run(ctx, &sdk.StdioTransport{})

	// A debounced save may still be pending when the transport closes.
	if flushErr := saver.Flush(ctx); err == nil {
		err = flushErr
	}
	return err
}
