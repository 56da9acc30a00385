package cmd

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"unicode/utf8"

	"github.com/ardanlabs/blockledger/foundation/blockchain/database"
	"github.com/ardanlabs/blockledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/blockledger/foundation/blockchain/state"
	"github.com/ardanlabs/blockledger/foundation/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	miner       string
	difficulty  uint32
	reward      float64
	blocks      int
	maxAttempts uint64
	trans       []string
)

// mineCmd represents the mine command
var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Mine a chain in memory, print it and verify it",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := logger.NewWithOutput("ADMIN", "stderr")
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return mine(ctx, log, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(mineCmd)
	mineCmd.Flags().StringVarP(&miner, "miner", "m", "miner1", "Address credited with the mining reward.")
	mineCmd.Flags().Uint32VarP(&difficulty, "difficulty", "d", 1, "Number of leading zeros a block hash needs.")
	mineCmd.Flags().Float64VarP(&reward, "reward", "r", genesis.DefaultMiningReward, "Reward for mining a block.")
	mineCmd.Flags().IntVarP(&blocks, "blocks", "b", 1, "Number of blocks to mine after the genesis block.")
	mineCmd.Flags().Uint64Var(&maxAttempts, "max-attempts", 0, "Attempts allowed per block, zero means no cap.")
	mineCmd.Flags().StringArrayVarP(&trans, "tx", "t", nil, "Transaction to submit as sender:receiver:amount, repeatable.")
}

func mine(ctx context.Context, log *zap.SugaredLogger, w io.Writer) error {
	txs := make([]database.Tx, len(trans))
	for i, s := range trans {
		tx, err := parseTx(s)
		if err != nil {
			return err
		}
		txs[i] = tx
	}

	gen := genesis.Default(difficulty)
	gen.MiningReward = reward
	gen.HashStyle = hashStyle

	ev := func(v string, args ...any) {
		log.Infow(fmt.Sprintf(v, args...))
	}

	st, err := state.New(ctx, state.Config{
		MinerAddress: miner,
		Genesis:      gen,
		MaxAttempts:  maxAttempts,
		EvHandler:    ev,
	})
	if err != nil {
		return err
	}

	// Every transaction goes into the first block, the rest only carry
	// the reward.
	for _, tx := range txs {
		st.SubmitTransaction(tx.Sender, tx.Receiver, tx.Amount)
	}

	for i := 0; i < blocks; i++ {
		if _, err := st.MineNewBlock(ctx); err != nil {
			return fmt.Errorf("mining block %d: %w", i+1, err)
		}
	}

	for i, bd := range st.RetrieveBlockData() {
		fmt.Fprintf(w, "block[%d]:\n%s\n", i, bd.Dump())
	}

	if err := st.Verify(); err != nil {
		return fmt.Errorf("verifying chain: %w", err)
	}

	fmt.Fprintf(w, "chain of %d blocks verified, last hash %s\n", len(st.RetrieveBlocks()), st.LatestBlockHash())
	return nil
}

// parseTx converts sender:receiver:amount into a transaction.
func parseTx(s string) (database.Tx, error) {
	if !utf8.ValidString(s) {
		return database.Tx{}, fmt.Errorf("transaction %q is not valid UTF-8", s)
	}

	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return database.Tx{}, fmt.Errorf("transaction %q must be sender:receiver:amount", s)
	}

	amount, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return database.Tx{}, fmt.Errorf("transaction %q amount: %w", s, err)
	}

	return database.NewTx(parts[0], parts[1], amount), nil
}
