package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func packsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "packs",
		Short: "Manage content packs",
	}
	cmd.AddCommand(packsListCmd())
	cmd.AddCommand(packsShowCmd())
	cmd.AddCommand(packsRemoveCmd())
	cmd.AddCommand(packsRenameCmd())
	return cmd
}

func packsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List packs and their item counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, st, doc, err := openDocument(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			for _, p := range doc.ListPacks() {
				origin := "custom"
				if p.Downloaded() {
					origin = p.URL
				}
				fmt.Fprintf(os.Stdout, "%s\t%d lumia\t%d loom\t%s\n", p.Name, len(p.LumiaItems), len(p.LoomItems), origin)
			}
			return nil
		},
	}
}

func packsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <pack>",
		Short: "List the items in a pack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, st, doc, err := openDocument(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			p, ok := doc.Packs[args[0]]
			if !ok {
				return fmt.Errorf("pack %q not found", args[0])
			}
			for _, item := range p.LumiaItems {
				fmt.Fprintf(os.Stdout, "lumia\t%s\t(%s)\n", item.Name, item.GenderIdentity)
			}
			for _, item := range p.LoomItems {
				fmt.Fprintf(os.Stdout, "loom\t%s\t[%s]\n", item.Name, item.Category)
			}
			return nil
		},
	}
}

func packsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <pack>",
		Short: "Remove a pack and clear every selection referencing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, st, doc, err := openDocument(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			if err := doc.RemovePack(args[0]); err != nil {
				return err
			}
			return st.Save(ctx, doc)
		},
	}
}

func packsRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a pack; current selections follow the new name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, st, doc, err := openDocument(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			if err := doc.RenamePack(args[0], args[1]); err != nil {
				return err
			}
			return st.Save(ctx, doc)
		},
	}
}
