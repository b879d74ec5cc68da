// Command lanchonete runs the snack-bar ordering server and offers terminal
// access to the same menu, order log and account.
//
//	lanchonete serve
//	lanchonete menu --category bebidas
//	lanchonete checkout --name Ana --payment pix --item 1=2 --item 6
//	lanchonete orders list --newest-first
//	lanchonete orders advance 123456-789
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shashiranjanraj/lanchonete/pkg/app"
)

func main() {
	if err := newRootCmd(app.Open).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// opener builds the Application a command works on.
type opener func(ctx context.Context) (*app.Application, error)
