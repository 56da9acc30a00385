package state

import (
	"errors"
	"fmt"

	"github.com/ardanlabs/blockledger/foundation/blockchain/database"
)

// Verify walks the whole chain and validates every block against its
// parent: the hash link, the proof of work, the transaction count and the
// merkle root.
func (s *State) Verify() error {
	s.evHandler("state: Verify: started")
	defer s.evHandler("state: Verify: completed")

	var prev *database.Block
	var num int

	iter := s.db.ForEach()
	for block, err := iter.Next(); !iter.Done(); block, err = iter.Next() {
		if err != nil {
			return err
		}

		if err := block.ValidateBlock(prev, s.style); err != nil {
			return fmt.Errorf("block %d: %w", num, err)
		}

		s.evHandler("state: Verify: block[%d]: ok", num)

		parent := block
		prev = &parent
		num++
	}

	if num == 0 {
		return errors.New("chain has no blocks")
	}

	return nil
}
