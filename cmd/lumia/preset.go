package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func presetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Snapshot and restore selection state",
	}
	cmd.AddCommand(presetSaveCmd())
	cmd.AddCommand(presetUpdateCmd())
	cmd.AddCommand(presetLoadCmd())
	cmd.AddCommand(presetDeleteCmd())
	cmd.AddCommand(presetListCmd())
	return cmd
}

func presetSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <name>",
		Short: "Snapshot the current selection under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, st, doc, err := openDocument(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			doc.SavePreset(args[0])
			return st.Save(ctx, doc)
		},
	}
}

func presetUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <name>",
		Short: "Re-snapshot over an existing preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, st, doc, err := openDocument(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			if err := doc.UpdatePreset(args[0]); err != nil {
				return err
			}
			return st.Save(ctx, doc)
		},
	}
}

func presetLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <name>",
		Short: "Restore the selection from a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, st, doc, err := openDocument(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			if err := doc.LoadPreset(args[0]); err != nil {
				return err
			}
			return st.Save(ctx, doc)
		},
	}
}

func presetDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, st, doc, err := openDocument(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			if err := doc.DeletePreset(args[0]); err != nil {
				return err
			}
			return st.Save(ctx, doc)
		},
	}
}

func presetListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, st, doc, err := openDocument(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			for _, p := range doc.ListPresets() {
				marker := " "
				if p.Name == doc.ActivePreset {
					marker = "*"
				}
				fmt.Fprintf(os.Stdout, "%s %s\t(updated %s)\n", marker, p.Name, p.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}
