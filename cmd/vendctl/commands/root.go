package commands

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Lixing-Zhang/vending-machine/internal/catalog"
	"github.com/Lixing-Zhang/vending-machine/internal/vending"
)

type rootOptions struct {
	catalogSource string
	balance       string
}

// machine loads the configured catalog and opens a ledger over it
func (o *rootOptions) machine(ctx context.Context) (*vending.Ledger, error) {
	balance, err := decimal.NewFromString(o.balance)
	if err != nil {
		return nil, fmt.Errorf("invalid balance %q: %w", o.balance, err)
	}
	if balance.IsNegative() {
		return nil, fmt.Errorf("balance must not be negative, got %s", o.balance)
	}

	inventory, err := catalog.NewLoader(nil).LoadSource(ctx, o.catalogSource)
	if err != nil {
		return nil, err
	}
	return vending.NewLedger(inventory, balance), nil
}

// NewRootCommand builds the vendctl command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "vendctl",
		Short:         "Inspect vending catalogs and simulate purchases",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&opts.catalogSource, "catalog", catalog.EmbeddedSource, "catalog file, http(s) URL, or \"embedded\"")
	root.PersistentFlags().StringVar(&opts.balance, "balance", "10.00", "initial balance")

	root.AddCommand(catalogCmd(opts), vendCmd(opts))
	return root
}

func Execute() error {
	return NewRootCommand().Execute()
}
