package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/ardanlabs/blockledger/foundation/blockchain/database"
	"github.com/ardanlabs/blockledger/foundation/blockchain/hash"
	"github.com/ardanlabs/blockledger/foundation/blockchain/merkle"
	"github.com/spf13/cobra"
)

// merkleCmd represents the merkle command
var merkleCmd = &cobra.Command{
	Use:   "merkle <json-array-of-transactions>",
	Short: "Calculate the merkle root of a set of transactions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		style, err := hash.ParseStyle(hashStyle)
		if err != nil {
			return err
		}

		tree, err := merkleTree(args[0], style)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), tree.MerkleRoot)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(merkleCmd)
}

func merkleTree(doc string, style hash.Style) (*merkle.Tree[database.Tx], error) {
	var trans []database.Tx
	if err := json.Unmarshal([]byte(doc), &trans); err != nil {
		return nil, fmt.Errorf("decoding transactions: %w", err)
	}

	return merkle.NewTree(trans, merkle.WithHashStrategy[database.Tx](style.Hash))
}
