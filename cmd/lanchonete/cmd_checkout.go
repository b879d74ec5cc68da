package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/lanchonete/app/cart"
	"github.com/shashiranjanraj/lanchonete/app/catalog"
	"github.com/shashiranjanraj/lanchonete/app/checkout"
	"github.com/shashiranjanraj/lanchonete/pkg/app"
)

// lanchonete checkout
func newCheckoutCmd(open opener) *cobra.Command {
	var in checkout.Input
	var items []string

	cmd := &cobra.Command{
		Use:     "checkout",
		Short:   "Place an order from the terminal",
		Example: "  lanchonete checkout --name Ana --payment pix --item 1=2 --item 6",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := cart.New()
			for _, arg := range items {
				id, qty, err := parseItem(arg)
				if err != nil {
					return err
				}
				item, ok := catalog.Find(id)
				if !ok {
					return fmt.Errorf("no menu item with id %d", id)
				}
				c.AddItem(item, qty)
			}

			return withApp(cmd, open, func(a *app.Application) error {
				o, err := a.Checkout.Place(cmd.Context(), c, in)
				var verr *checkout.ValidationError
				if errors.As(err, &verr) {
					return fmt.Errorf("invalid order: %s", verr.Fields.Error())
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Order %s placed for %s\n", o.ID, o.Customer)
				return printOrder(cmd.OutOrStdout(), o)
			})
		},
	}
	cmd.Flags().StringVar(&in.Customer, "name", "", "customer name")
	cmd.Flags().StringVar(&in.Payment, "payment", "", "pix, cash (dinheiro) or card (cartao)")
	cmd.Flags().StringVar(&in.Note, "note", "", "note for the kitchen")
	cmd.Flags().StringArrayVar(&items, "item", nil, "menu item as ID or ID=QTY; repeatable")
	return cmd
}

// parseItem reads "ID" or "ID=QTY".
func parseItem(arg string) (id, qty int, err error) {
	idPart, qtyPart, hasQty := strings.Cut(arg, "=")
	if id, err = strconv.Atoi(strings.TrimSpace(idPart)); err != nil {
		return 0, 0, fmt.Errorf("bad --item %q: id must be a number", arg)
	}
	qty = 1
	if hasQty {
		if qty, err = strconv.Atoi(strings.TrimSpace(qtyPart)); err != nil || qty < 1 {
			return 0, 0, fmt.Errorf("bad --item %q: quantity must be a positive number", arg)
		}
	}
	return id, qty, nil
}
