package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Lixing-Zhang/vending-machine/internal/models"
	"github.com/Lixing-Zhang/vending-machine/internal/vending"
)

// ErrPurchaseFailed is returned in strict mode when any purchase is rejected
var ErrPurchaseFailed = errors.New("purchase failed")

type purchase struct {
	selection models.Selection
	quantity  decimal.Decimal
}

// parsePurchase reads "Selection" or "Selection:quantity"
func parsePurchase(arg string) (purchase, error) {
	name, rawQty, hasQty := strings.Cut(arg, ":")

	sel, err := models.ParseSelection(name)
	if err != nil {
		return purchase{}, err
	}

	quantity := decimal.NewFromInt(1)
	if hasQty {
		quantity, err = decimal.NewFromString(rawQty)
		if err != nil {
			return purchase{}, fmt.Errorf("invalid quantity in %q: %w", arg, err)
		}
	}
	return purchase{selection: sel, quantity: quantity}, nil
}

func vendCmd(opts *rootOptions) *cobra.Command {
	var (
		deposit string
		strict  bool
	)

	cmd := &cobra.Command{
		Use:   "vend SELECTION[:QUANTITY]...",
		Short: "Run purchases in order against a fresh machine",
		Example: `  vendctl vend Soda:3 Chips
  vendctl vend --balance 0 --deposit 2.50 Water:2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			purchases := make([]purchase, 0, len(args))
			for _, arg := range args {
				p, err := parsePurchase(arg)
				if err != nil {
					return err
				}
				purchases = append(purchases, p)
			}

			ledger, err := opts.machine(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if deposit != "" {
				amount, err := decimal.NewFromString(deposit)
				if err != nil {
					return fmt.Errorf("invalid deposit %q: %w", deposit, err)
				}
				if err := ledger.Deposit(amount); err != nil {
					return err
				}
				fmt.Fprintf(out, "deposited %s, balance %s\n", amount.StringFixed(2), ledger.Balance().StringFixed(2))
			}

			failed := 0
			for _, p := range purchases {
				receipt, err := ledger.Vend(p.selection, p.quantity)
				if err != nil {
					failed++
					fmt.Fprintf(out, "%s x%s: %v\n", p.selection, p.quantity, err)
					if shortfall, ok := vending.Shortfall(err); ok {
						fmt.Fprintf(out, "  insert %s more to complete this purchase\n", shortfall.StringFixed(2))
					}
					continue
				}
				fmt.Fprintf(out, "%s x%s: paid %s, balance %s, %s left\n",
					receipt.Selection, receipt.Quantity, receipt.Total.StringFixed(2),
					receipt.Balance.StringFixed(2), receipt.Remaining)
			}

			fmt.Fprintf(out, "final balance %s\n", ledger.Balance().StringFixed(2))

			if strict && failed > 0 {
				return fmt.Errorf("%w: %d of %d rejected", ErrPurchaseFailed, failed, len(purchases))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&deposit, "deposit", "", "amount to deposit before purchasing")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero if any purchase is rejected")
	return cmd
}
