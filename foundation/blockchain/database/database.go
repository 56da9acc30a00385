// Package database handles the entities of the ledger, the proof of work
// search, and the in memory store of mined blocks.
package database

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ardanlabs/blockledger/foundation/blockchain/hash"
	"github.com/ardanlabs/blockledger/foundation/blockchain/merkle"
)

// ErrBlockNotFound is returned when a block number is not in the chain.
var ErrBlockNotFound = errors.New("block not found")

// =============================================================================

// Iterator walks through the blocks starting with the genesis block.
type Iterator struct {
	db      *Database
	current uint64
	done    bool
}

// Next retrieves the next block in the chain.
func (it *Iterator) Next() (Block, error) {
	block, err := it.db.GetBlock(it.current)
	if err != nil {
		it.done = true
		return Block{}, err
	}

	it.current++
	return block, nil
}

// Done returns the end of chain value.
func (it *Iterator) Done() bool {
	return it.done
}

// =============================================================================

// Database manages the append only list of mined blocks. Nothing is
// persisted, the chain lives for the life of the process. Blocks handed
// out carry their own merkle tree so a caller can't change a stored block.
type Database struct {
	mu     sync.RWMutex
	style  hash.Style
	blocks []Block
}

// New constructs an empty database that links blocks using the hash style.
func New(style hash.Style) *Database {
	return &Database{
		style: style,
	}
}

// Style returns the hash style used to link the blocks.
func (db *Database) Style() hash.Style {
	return db.style
}

// Reset removes every block from the database.
func (db *Database) Reset() {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.blocks = nil
}

// Write validates the block against the latest block and appends it to the
// chain.
func (db *Database) Write(block Block) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	var prev *Block
	if n := len(db.blocks); n > 0 {
		prev = &db.blocks[n-1]
	}

	if err := block.ValidateBlock(prev, db.style); err != nil {
		return fmt.Errorf("validate block %d: %w", len(db.blocks), err)
	}

	db.blocks = append(db.blocks, db.clone(block))

	return nil
}

// LatestBlock returns the latest block and false if the chain is empty.
func (db *Database) LatestBlock() (Block, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if len(db.blocks) == 0 {
		return Block{}, false
	}

	return db.clone(db.blocks[len(db.blocks)-1]), true
}

// LatestHash returns the hash of the latest block header or the zero hash
// when there are no blocks yet.
func (db *Database) LatestHash() string {
	block, exists := db.LatestBlock()
	if !exists {
		return hash.ZeroHash
	}

	return block.Hash(db.style)
}

// GetBlock returns the block by its position in the chain, the genesis
// block being number 0.
func (db *Database) GetBlock(num uint64) (Block, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if num >= uint64(len(db.blocks)) {
		return Block{}, fmt.Errorf("block %d: %w", num, ErrBlockNotFound)
	}

	return db.clone(db.blocks[num]), nil
}

// Count returns the number of blocks in the chain.
func (db *Database) Count() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return len(db.blocks)
}

// Copy returns a copy of the list of blocks.
func (db *Database) Copy() []Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	blocks := make([]Block, len(db.blocks))
	for i, block := range db.blocks {
		blocks[i] = db.clone(block)
	}

	return blocks
}

// ForEach returns an iterator to walk through all the blocks starting with
// the genesis block.
func (db *Database) ForEach() *Iterator {
	return &Iterator{db: db}
}

// clone returns the block with a tree rebuilt from its transactions.
func (db *Database) clone(block Block) Block {
	if block.Trans == nil {
		return block
	}

	tree, err := merkle.NewTree(block.Trans.Values(), merkle.WithHashStrategy[Tx](db.style.Hash))
	if err != nil {
		return Block{Header: block.Header, TransCount: block.TransCount}
	}

	block.Trans = tree
	return block
}
