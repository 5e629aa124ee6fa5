package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "lumia",
		Short: "Companion-persona pack manager for LLM chat front-ends",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.AddCommand(initCmd())
	root.AddCommand(importCmd())
	root.AddCommand(packsCmd())
	root.AddCommand(itemsCmd())
	root.AddCommand(selectCmd())
	root.AddCommand(toggleCmd())
	root.AddCommand(resolveCmd())
	root.AddCommand(presetCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
