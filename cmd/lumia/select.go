package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lumia/internal/pack"
	"lumia/internal/settings"
)

func selectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Set the single-value content slots",
	}
	cmd.AddCommand(selectSetCmd())
	cmd.AddCommand(selectClearCmd())
	cmd.AddCommand(selectShowCmd())
	return cmd
}

func selectSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <slot> <pack> <item>",
		Short: "Point a single-value slot (definition, loomStyle) at an item",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, st, doc, err := openDocument(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			slot, err := settings.ParseSlot(args[0])
			if err != nil {
				return err
			}
			ref := &pack.Ref{PackName: args[1], ItemName: args[2]}
			if err := doc.Set(slot, ref); err != nil {
				return err
			}
			return st.Save(ctx, doc)
		},
	}
}

func selectClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <slot>",
		Short: "Clear a single-value slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, st, doc, err := openDocument(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			slot, err := settings.ParseSlot(args[0])
			if err != nil {
				return err
			}
			if err := doc.Set(slot, nil); err != nil {
				return err
			}
			return st.Save(ctx, doc)
		},
	}
}

func selectShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current selection for every slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, st, doc, err := openDocument(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			for _, slot := range settings.Slots() {
				refs := doc.SlotRefs(slot)
				if len(refs) == 0 {
					fmt.Fprintf(os.Stdout, "%s:\t(none)\n", slot)
					continue
				}
				for _, ref := range refs {
					fmt.Fprintf(os.Stdout, "%s:\t%s / %s\n", slot, ref.PackName, ref.ItemName)
				}
			}
			return nil
		},
	}
}

func toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <slot> <pack> <item>",
		Short: "Toggle an item in a multi-value slot",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, st, doc, err := openDocument(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			slot, err := settings.ParseSlot(args[0])
			if err != nil {
				return err
			}
			if err := doc.Toggle(slot, pack.Ref{PackName: args[1], ItemName: args[2]}); err != nil {
				return err
			}
			return st.Save(ctx, doc)
		},
	}
}
