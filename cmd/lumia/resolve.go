package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lumia/internal/resolver"
)

var resolveMessageCount int

func resolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [macro ...]",
		Short: "Resolve macros against the current selection",
		Long: `Resolve starts a fresh generation turn (re-rolling the random item) and
prints the requested macros, or every macro when none are named.`,
		RunE: runResolve,
	}
	cmd.Flags().IntVar(&resolveMessageCount, "message-count", 0, "Chat message count for the count-driven macros")
	return cmd
}

func runResolve(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	_, st, doc, err := openDocument(ctx)
	if err != nil {
		return err
	}
	defer st.Close(ctx)

	res := resolver.New(doc)
	res.ResetTurn()
	res.SetMessageCount(resolveMessageCount)

	names := args
	if len(names) == 0 {
		names = res.MacroNames()
	}
	for _, name := range names {
		fmt.Fprintf(os.Stdout, "== %s ==\n", name)
		text := res.ResolveMacro(name)
		if text != "" {
			fmt.Fprintln(os.Stdout, text)
		}
	}
	return nil
}
