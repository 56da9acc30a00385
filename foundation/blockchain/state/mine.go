package state

import (
	"context"
	"fmt"

	"github.com/ardanlabs/blockledger/foundation/blockchain/database"
)

// MineNewBlock creates the next block of the chain. The block holds the
// mining reward followed by every pending transaction in submission order.
// The call blocks until the proof of work is solved, the context is
// cancelled, or the configured attempt cap is hit. On failure the pending
// transactions are left untouched.
func (s *State) MineNewBlock(ctx context.Context) (database.Block, error) {
	s.miningMu.Lock()
	defer s.miningMu.Unlock()

	s.mu.RLock()
	difficulty, reward := s.difficulty, s.reward
	s.mu.RUnlock()

	pending := s.mempool.PickAll()

	trans := make([]database.Tx, 0, len(pending)+1)
	trans = append(trans, database.NewRewardTx(s.minerAddress, reward))
	trans = append(trans, pending...)

	s.evHandler("state: MineNewBlock: MINING: perform POW: trans[%d]", len(trans))

	args := database.POWArgs{
		PrevBlockHash: s.db.LatestHash(),
		Difficulty:    difficulty,
		TimeStamp:     uint8(s.clock().UTC().Second()),
		Trans:         trans,
		Style:         s.style,
		MaxAttempts:   s.maxAttempts,
		EvHandler:     s.evHandler,
	}

	block, err := database.POW(ctx, args)
	if err != nil {
		return database.Block{}, err
	}

	s.evHandler("state: MineNewBlock: MINING: update local state")

	if err := s.db.Write(block); err != nil {
		return database.Block{}, fmt.Errorf("write block: %w", err)
	}

	// Only the transactions that were mined are removed. Anything submitted
	// during the search waits for the next block.
	s.mempool.Remove(len(pending))

	s.evHandler("state: MineNewBlock: block[%d]:\n%s", s.db.Count()-1, database.NewBlockData(block, s.style).Dump())

	return block, nil
}
