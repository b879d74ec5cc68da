package app

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// PrintRoutes writes the route table, sorted by path then method.
func (a *Application) PrintRoutes(w io.Writer) error {
	r, err := a.Router()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "METHOD\tPATH\tNAME")
	fmt.Fprintln(tw, "------\t----\t----")
	for _, ri := range r.Routes() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
	}
	return tw.Flush()
}
