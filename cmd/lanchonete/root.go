package main

import (
	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/lanchonete/pkg/app"
	"github.com/shashiranjanraj/lanchonete/pkg/logger"
)

func newRootCmd(open opener) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "lanchonete",
		Short:         "Snack-bar ordering server and CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// One-shot commands print tables; keep log lines off the terminal
			// unless asked for.
			if cmd.Name() != "serve" && !verbose {
				logger.Discard()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stdout in one-shot commands")

	root.AddCommand(
		newServeCmd(open),
		newRouteListCmd(open),
		newMenuCmd(),
		newCheckoutCmd(open),
		newOrdersCmd(open),
		newAccountCmd(open),
	)
	return root
}

// withApp opens the Application for one command and closes it afterwards.
func withApp(cmd *cobra.Command, open opener, fn func(a *app.Application) error) error {
	a, err := open(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
