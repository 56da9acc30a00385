package state

import (
	"github.com/ardanlabs/blockledger/foundation/blockchain/database"
	"github.com/ardanlabs/blockledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/blockledger/foundation/blockchain/hash"
)

// RetrieveGenesis returns a copy of the genesis information.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// RetrieveMinerAddress returns the address credited with mining rewards.
func (s *State) RetrieveMinerAddress() string {
	return s.minerAddress
}

// RetrieveHashStyle returns the style used to render hashes.
func (s *State) RetrieveHashStyle() hash.Style {
	return s.style
}

// RetrieveDifficulty returns the difficulty for the next mined block.
func (s *State) RetrieveDifficulty() uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.difficulty
}

// RetrieveReward returns the mining reward for the next mined block.
func (s *State) RetrieveReward() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.reward
}

// LatestBlockHash returns the hash of the latest block header.
func (s *State) LatestBlockHash() string {
	return s.db.LatestHash()
}

// RetrieveLatestBlock returns a copy the current latest block.
func (s *State) RetrieveLatestBlock() database.Block {
	block, _ := s.db.LatestBlock()
	return block
}

// RetrieveBlock returns the block by number, the genesis block being 0.
func (s *State) RetrieveBlock(num uint64) (database.Block, error) {
	return s.db.GetBlock(num)
}

// RetrieveBlocks returns a copy of every block in the chain.
func (s *State) RetrieveBlocks() []database.Block {
	return s.db.Copy()
}

// RetrieveBlockData returns the serializable form of every block.
func (s *State) RetrieveBlockData() []database.BlockData {
	blocks := s.db.Copy()

	data := make([]database.BlockData, len(blocks))
	for i, block := range blocks {
		data[i] = database.NewBlockData(block, s.style)
	}

	return data
}

// RetrievePending returns a copy of the pending transactions.
func (s *State) RetrievePending() []database.Tx {
	return s.mempool.Copy()
}
