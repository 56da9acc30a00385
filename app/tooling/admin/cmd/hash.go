package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/ardanlabs/blockledger/foundation/blockchain/hash"
	"github.com/spf13/cobra"
)

// hashCmd represents the hash command
var hashCmd = &cobra.Command{
	Use:   "hash <json>",
	Short: "Hash a JSON value the way the ledger does",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		style, err := hash.ParseStyle(hashStyle)
		if err != nil {
			return err
		}

		h, err := hashJSON(args[0], style)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), h)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashCmd)
}

// hashJSON decodes the document and hashes the decoded value. Objects
// decode into maps so their keys are hashed in sorted order.
func hashJSON(doc string, style hash.Style) (string, error) {
	var v any
	if err := json.Unmarshal([]byte(doc), &v); err != nil {
		return "", fmt.Errorf("decoding value: %w", err)
	}

	return style.Hash(v), nil
}
