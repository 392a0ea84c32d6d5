package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"budgeteer/internal/core"
	"budgeteer/internal/services"
)

var (
	categoryKind         string
	categoryIcon         string
	categoryColor        string
	categoryShowArchived bool
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage spending categories",
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		c, err := a.categories.CreateCategory(context.Background(), services.CategoryInput{
			Name:  args[0],
			Kind:  core.CategoryKind(categoryKind),
			Icon:  categoryIcon,
			Color: categoryColor,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created category %s (%s)\n", c.Name, c.ID)
		return nil
	},
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	RunE: func(_ *cobra.Command, _ []string) error {
		categories, err := a.categories.ListCategories(context.Background(), categoryShowArchived)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tKIND\tSTATE")
		for _, c := range categories {
			state := "active"
			if c.Archived() {
				state = "archived"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Kind, state)
		}
		return w.Flush()
	},
}

var categoryArchiveCmd = &cobra.Command{
	Use:   "archive <category-id>",
	Short: "Archive a category, keeping its history",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		c, err := a.categories.ArchiveCategory(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Archived category %s\n", c.Name)
		return nil
	},
}

func init() {
	categoryAddCmd.Flags().StringVar(&categoryKind, "kind", "need", "Category kind: need or want")
	categoryAddCmd.Flags().StringVar(&categoryIcon, "icon", "", "Icon name")
	categoryAddCmd.Flags().StringVar(&categoryColor, "color", "", "Display color")
	categoryListCmd.Flags().BoolVar(&categoryShowArchived, "archived", false, "Include archived categories")
	categoryCmd.AddCommand(categoryAddCmd, categoryListCmd, categoryArchiveCmd)
	rootCmd.AddCommand(categoryCmd)
}
