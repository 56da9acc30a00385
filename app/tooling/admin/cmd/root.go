// Package cmd contains the ledger admin tool commands.
package cmd

import (
	"os"

	"github.com/ardanlabs/blockledger/foundation/blockchain/hash"
	"github.com/spf13/cobra"
)

var hashStyle string

func init() {
	rootCmd.PersistentFlags().StringVarP(&hashStyle, "style", "s", hash.Compact.String(), "How hashes are rendered, compact or padded.")
}

var rootCmd = &cobra.Command{
	Use:           "admin",
	Short:         "Administrative tasks for the ledger",
	SilenceUsage: true,
}

// Execute runs the command the operator selected.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
