package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nacorid/stellarpay/validation"
)

// balance <address>: print the native balance of an account.
func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <address>",
		Short: "Show an account's native balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			address := args[0]
			if err := validation.ValidateAddress(address); err != nil {
				return err
			}

			snapshot, err := gateway.LoadAccount(cmd.Context(), address)
			if err != nil {
				return err
			}
			fmt.Println(snapshot.NativeBalance())
			return nil
		},
	}
}
