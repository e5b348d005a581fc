// Package commands implements the stellarpay CLI.
package commands

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nacorid/stellarpay"
	"github.com/nacorid/stellarpay/horizon"
)

var (
	horizonURL string
	verbose    bool

	gateway *horizon.Client
	logger  *slog.Logger
)

func Execute() error {
	root := &cobra.Command{
		Use:           "stellarpay",
		Short:         "Send native-asset payments on the Stellar test network",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			gateway = &horizon.Client{
				BaseURL: horizonURL,
				Timeout: 30 * time.Second,
			}
		},
	}

	root.PersistentFlags().StringVar(&horizonURL, "horizon", stellarpay.TestnetHorizonURL, "gateway base URL")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(balanceCmd(), payCmd())
	return root.Execute()
}
