package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lumia/internal/pack"
)

var (
	itemOverwrite   bool
	itemAuthor      string
	itemAvatar      string
	itemGender      string
	itemPhysical    string
	itemPersonality string
	itemBehavior    string
	itemCategory    string
	itemContent     string
)

func itemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Manage the items inside a pack",
	}
	cmd.AddCommand(itemsAddLumiaCmd())
	cmd.AddCommand(itemsAddLoomCmd())
	cmd.AddCommand(itemsRemoveCmd())
	return cmd
}

func itemsAddLumiaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-lumia <pack> <name>",
		Short: "Add a Lumia item to a pack",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, st, doc, err := openDocument(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			item := pack.LumiaItem{
				Name:               args[1],
				Author:             itemAuthor,
				AvatarImage:        itemAvatar,
				PhysicalDefinition: itemPhysical,
				Personality:        itemPersonality,
				Behavior:           itemBehavior,
				GenderIdentity:     pack.ParseGender(itemGender),
			}
			if err := doc.AddLumiaItem(args[0], item, itemOverwrite); err != nil {
				return err
			}
			return st.Save(ctx, doc)
		},
	}
	cmd.Flags().StringVar(&itemAuthor, "author", "", "Item author")
	cmd.Flags().StringVar(&itemAvatar, "avatar", "", "Avatar image URL")
	cmd.Flags().StringVar(&itemGender, "gender", "", "Gender identity (she, he, they)")
	cmd.Flags().StringVar(&itemPhysical, "physical", "", "Physical definition text")
	cmd.Flags().StringVar(&itemPersonality, "personality", "", "Personality text")
	cmd.Flags().StringVar(&itemBehavior, "behavior", "", "Behavior text")
	cmd.Flags().BoolVar(&itemOverwrite, "overwrite", false, "Update an existing item of the same name")
	return cmd
}

func itemsAddLoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-loom <pack> <name>",
		Short: "Add a Loom item to a pack",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, st, doc, err := openDocument(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			category, ok := pack.ParseLoomCategory(itemCategory)
			if !ok {
				return fmt.Errorf("unknown loom category %q", itemCategory)
			}
			item := pack.LoomItem{
				Name:     args[1],
				Category: category,
				Content:  itemContent,
				Author:   itemAuthor,
			}
			if err := doc.AddLoomItem(args[0], item, itemOverwrite); err != nil {
				return err
			}
			return st.Save(ctx, doc)
		},
	}
	cmd.Flags().StringVar(&itemCategory, "category", "", "Loom category (narrative style, loom utilities, retrofits)")
	cmd.Flags().StringVar(&itemContent, "content", "", "Item content text")
	cmd.Flags().StringVar(&itemAuthor, "author", "", "Item author")
	cmd.Flags().BoolVar(&itemOverwrite, "overwrite", false, "Update an existing item of the same name")
	return cmd
}

func itemsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <pack> <name>",
		Short: "Remove an item; selections pointing at it go dangling",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, st, doc, err := openDocument(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			if err := doc.RemoveItem(args[0], args[1]); err != nil {
				return err
			}
			return st.Save(ctx, doc)
		},
	}
}
