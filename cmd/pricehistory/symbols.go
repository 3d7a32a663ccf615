package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"PriceHistory/internal/symbols"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols",
	Short: "List the symbols the API accepts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SYMBOL\tCATEGORY\tNAME")
		for _, a := range symbols.Default().Assets() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", a.Symbol, a.Category, a.Name)
		}
		return w.Flush()
	},
}
