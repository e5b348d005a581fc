package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nacorid/stellarpay"
	"github.com/nacorid/stellarpay/session"
	"github.com/nacorid/stellarpay/wallet"
	"github.com/nacorid/stellarpay/wallet/local"
)

var (
	seed        string
	destination string
	amount      string
)

// pay --to --amount [--seed]: send a native-asset payment on the test network.
func payCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Send a native-asset payment",
		RunE: func(cmd *cobra.Command, args []string) error {
			if seed == "" {
				seed = os.Getenv("STELLARPAY_SEED")
			}
			if seed == "" {
				return fmt.Errorf("secret seed required (--seed or STELLARPAY_SEED)")
			}

			provider, err := local.New(seed, stellarpay.TestnetPassphrase)
			if err != nil {
				return err
			}
			registry := wallet.NewRegistry()
			registry.Register("local", provider)

			mgr, err := session.New(gateway, registry, stellarpay.DefaultTestnetPolicy,
				session.WithLogger(logger))
			if err != nil {
				return err
			}

			state, err := mgr.Connect(cmd.Context(), "local")
			if err != nil {
				return err
			}
			defer mgr.Disconnect(cmd.Context())
			logger.Debug("connected", "address", state.Address, "balance", state.Balance)

			outcome, err := mgr.SubmitPayment(cmd.Context(), stellarpay.PaymentIntent{
				Destination: destination,
				Amount:      amount,
			})
			if err != nil {
				return err
			}

			fmt.Println(outcome.Message)
			if outcome.RefreshErr != nil {
				fmt.Fprintln(os.Stderr, "warning: balance refresh failed; displayed balance may be stale")
			}
			if outcome.Kind == stellarpay.OutcomeConfirmed {
				fmt.Println("balance:", mgr.State().Balance)
				return nil
			}
			return fmt.Errorf("payment not confirmed")
		},
	}

	cmd.Flags().StringVar(&seed, "seed", "", "secret seed of the paying account (or STELLARPAY_SEED)")
	cmd.Flags().StringVar(&destination, "to", "", "destination address")
	cmd.Flags().StringVar(&amount, "amount", "", "amount to send")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}
