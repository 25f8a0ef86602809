package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func catalogCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the inventory in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := opts.machine(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SELECTION\tPRICE\tQUANTITY")
			for _, sel := range ledger.Selections() {
				item, _ := ledger.Peek(sel)
				fmt.Fprintf(tw, "%s\t%s\t%s\n", sel, item.Price.StringFixed(2), item.Quantity)
			}
			fmt.Fprintf(tw, "\nbalance\t%s\t\n", ledger.Balance().StringFixed(2))
			return tw.Flush()
		},
	}
	return cmd
}
