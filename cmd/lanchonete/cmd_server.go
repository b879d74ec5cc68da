package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/lanchonete/pkg/app"
)

// lanchonete serve
func newServeCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Aliases: []string{"run", "start"},
		Short:   "Start the HTTP and gRPC servers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return withApp(cmd, open, func(a *app.Application) error {
				return a.Serve(ctx)
			})
		},
	}
}

// lanchonete route:list
func newRouteListCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:     "route:list",
		Aliases: []string{"routes"},
		Short:   "List the HTTP routes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, open, func(a *app.Application) error {
				return a.PrintRoutes(cmd.OutOrStdout())
			})
		},
	}
}
