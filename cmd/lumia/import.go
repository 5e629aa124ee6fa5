package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"lumia/internal/fetch"
	"lumia/internal/pack"
	"lumia/internal/worldbook"
)

var (
	importPackName  string
	importOverwrite bool
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file-or-url>",
		Short: "Import a world-book JSON file as a content pack",
		Args:  cobra.ExactArgs(1),
		RunE:  runImport,
	}
	cmd.Flags().StringVar(&importPackName, "pack", "", "Pack name (defaults to the file or URL base name)")
	cmd.Flags().BoolVar(&importOverwrite, "overwrite", false, "Replace an existing pack of the same name")
	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	source := args[0]

	cfg, st, doc, err := openDocument(ctx)
	if err != nil {
		return err
	}
	defer st.Close(ctx)

	var entries []worldbook.Entry
	var url string
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		url = source
		client := &http.Client{Timeout: cfg.FetchTimeout()}
		entries, err = fetch.WorldBook(ctx, client, source)
		if err != nil {
			return err
		}
	} else {
		data, err := os.ReadFile(source)
		if err != nil {
			return fmt.Errorf("reading world book: %w", err)
		}
		entries, err = worldbook.Decode(data)
		if err != nil {
			return fmt.Errorf("reading world book: %w", err)
		}
	}

	name := importPackName
	if name == "" {
		name = deriveName(source)
	}

	items := worldbook.ParseEntries(entries)
	imported := pack.Pack{
		Name:       name,
		LumiaItems: items.Lumia,
		LoomItems:  items.Loom,
		URL:        url,
	}
	if err := doc.AddPack(imported, importOverwrite); err != nil {
		return err
	}
	if err := st.Save(ctx, doc); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Imported pack %q.\n", name)
	fmt.Fprintf(os.Stdout, "  Lumia items: %d\n", len(items.Lumia))
	fmt.Fprintf(os.Stdout, "  Loom items:  %d\n", len(items.Loom))
	fmt.Fprintf(os.Stdout, "  Entries skipped: %d\n", len(entries)-countNamed(entries))
	return nil
}

func deriveName(source string) string {
	base := filepath.Base(source)
	if idx := strings.Index(base, "?"); idx >= 0 {
		base = base[:idx]
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func countNamed(entries []worldbook.Entry) int {
	named := 0
	for _, entry := range entries {
		if strings.Contains(entry.Comment, "(") && strings.Contains(entry.Comment, ")") {
			named++
		}
	}
	return named
}
