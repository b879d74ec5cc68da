package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/lanchonete/app/models"
	"github.com/shashiranjanraj/lanchonete/pkg/app"
)

// lanchonete orders ...
func newOrdersCmd(open opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Inspect and update the order log",
	}

	var newestFirst bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, open, func(a *app.Application) error {
				all := a.Orders.List(cmd.Context())
				if newestFirst {
					all = a.Orders.Recent(cmd.Context())
				}
				return printOrders(cmd.OutOrStdout(), all)
			})
		},
	}
	list.Flags().BoolVar(&newestFirst, "newest-first", false, "show the latest order first")

	show := &cobra.Command{
		Use:   "show ID",
		Short: "Show one order with its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(a *app.Application) error {
				o, err := a.Orders.Find(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printOrder(cmd.OutOrStdout(), o)
			})
		},
	}

	status := &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Set an order's status (awaiting, preparing, completed)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, ok := models.ParseStatus(args[1])
			if !ok {
				return fmt.Errorf("unknown status %q", args[1])
			}
			return withApp(cmd, open, func(a *app.Application) error {
				updated, err := a.Orders.UpdateStatus(cmd.Context(), args[0], st)
				if err != nil {
					return err
				}
				if !updated {
					return fmt.Errorf("order %s not found", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Order %s is now %s\n", args[0], st.Label())
				return nil
			})
		},
	}

	advance := &cobra.Command{
		Use:   "advance ID",
		Short: "Move an order to its next status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(a *app.Application) error {
				o, err := a.Orders.Advance(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Order %s is now %s\n", o.ID, o.Status.Label())
				return nil
			})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, open, func(a *app.Application) error {
				if err := a.Orders.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Order log cleared.")
				return nil
			})
		},
	}

	cmd.AddCommand(list, show, status, advance, clearCmd)
	return cmd
}

func printOrders(out io.Writer, all []models.Order) error {
	if len(all) == 0 {
		fmt.Fprintln(out, "No orders yet.")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tCUSTOMER\tITEMS\tTOTAL\tPAYMENT\tSTATUS")
	for _, o := range all {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			o.ID, created(o), o.Customer, o.Quantity(), models.BRL(o.Total), o.Payment, o.Status.Label())
	}
	return w.Flush()
}

func printOrder(out io.Writer, o models.Order) error {
	fmt.Fprintf(out, "Order %s  %s  %s\n", o.ID, created(o), o.Status.Label())
	fmt.Fprintf(out, "Customer: %s  Payment: %s\n", o.Customer, o.Payment)
	if o.Note != "" {
		fmt.Fprintf(out, "Note: %s\n", o.Note)
	}
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "QTY\tITEM\tPRICE\tSUBTOTAL")
	for _, it := range o.Items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", it.Quantity, it.Name, models.BRL(it.Price), models.BRL(it.Subtotal()))
	}
	fmt.Fprintf(w, "\tTotal\t\t%s\n", models.BRL(o.Total))
	return w.Flush()
}

func created(o models.Order) string {
	if o.CreatedAt.IsZero() {
		return "-"
	}
	return o.CreatedAt.Local().Format(time.DateTime)
}
