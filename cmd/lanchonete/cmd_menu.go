package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/lanchonete/app/catalog"
	"github.com/shashiranjanraj/lanchonete/app/models"
)

// lanchonete menu
func newMenuCmd() *cobra.Command {
	var category, search string

	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Show the menu",
		RunE: func(cmd *cobra.Command, _ []string) error {
			items := catalog.Filter(catalog.ListItems(), models.Category(category))
			items = catalog.Search(items, search)
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No items match.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tTAGS")
			for _, it := range items {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", it.ID, it.Name, it.Category, models.BRL(it.Price), strings.Join(it.Tags, ", "))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "only this category (todos, salgados, bebidas, ...)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "match name, description or tags")
	return cmd
}
