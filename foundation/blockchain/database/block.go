package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/ardanlabs/blockledger/foundation/blockchain/hash"
	"github.com/ardanlabs/blockledger/foundation/blockchain/merkle"
)

// Set of errors returned by the proof of work search.
var (
	ErrNonceExhausted = errors.New("nonce space exhausted without a solution")
	ErrMaxAttempts    = errors.New("maximum mining attempts reached")
)

// =============================================================================

// BlockHeader represents common information required for each block. The
// field order is part of the hash and must not change.
type BlockHeader struct {
	TimeStamp     uint8  `json:"timestamp"`     // Seconds within the minute the block was started.
	Nonce         uint32 `json:"nonce"`         // Value identified to solve the hash solution.
	PrevBlockHash string `json:"previous_hash"` // Hash of the previous block header in the chain.
	MerkleRoot    string `json:"merkle_root"`   // Merkle root hash of the transactions in this block.
	Difficulty    uint32 `json:"difficulty"`    // Number of leading characters that must parse to 0.
}

// Hash returns the hash of the header for the given rendering style.
func (bh BlockHeader) Hash(style hash.Style) string {
	return style.Hash(bh)
}

// Block represents a group of transactions batched together. The first
// transaction is always the mining reward.
type Block struct {
	Header     BlockHeader
	TransCount uint32
	Trans      *merkle.Tree[Tx]
}

// POWArgs represents the set of arguments required to run POW.
type POWArgs struct {
	PrevBlockHash string
	Difficulty    uint32
	TimeStamp     uint8
	Trans         []Tx
	Style         hash.Style
	MaxAttempts   uint64
	EvHandler     func(v string, args ...any)
}

// POW constructs a new Block and performs the work to find a nonce that
// solves the proof of work puzzle.
func POW(ctx context.Context, args POWArgs) (Block, error) {
	ev := args.EvHandler
	if ev == nil {
		ev = func(string, ...any) {}
	}

	// Construct a merkle tree from the transactions for this block. The root
	// of this tree will be part of the block to be mined.
	tree, err := merkle.NewTree(args.Trans, merkle.WithHashStrategy[Tx](args.Style.Hash))
	if err != nil {
		return Block{}, err
	}

	nb := Block{
		Header: BlockHeader{
			TimeStamp:     args.TimeStamp,
			Nonce:         0, // Will be identified by the POW algorithm.
			PrevBlockHash: args.PrevBlockHash,
			MerkleRoot:    tree.MerkleRoot,
			Difficulty:    args.Difficulty,
		},
		TransCount: uint32(len(args.Trans)),
		Trans:      tree,
	}

	if err := nb.performPOW(ctx, args.Style, args.MaxAttempts, ev); err != nil {
		return Block{}, err
	}

	return nb, nil
}

// performPOW does the work of mining to find a valid hash for the block.
// Pointer semantics are being used since a nonce is being discovered.
func (b *Block) performPOW(ctx context.Context, style hash.Style, maxAttempts uint64, ev func(v string, args ...any)) error {
	ev("database: performPOW: MINING: started: difficulty[%d]", b.Header.Difficulty)
	defer ev("database: performPOW: MINING: completed")

	for _, tx := range b.Trans.Values() {
		ev("database: performPOW: MINING: tx[%s]", tx)
	}

	var attempts uint64
	for {
		attempts++
		if attempts%1_000_000 == 0 {
			ev("database: performPOW: MINING: attempts[%d]", attempts)
		}

		if ctx.Err() != nil {
			ev("database: performPOW: MINING: CANCELLED")
			return ctx.Err()
		}

		blkHash := b.Header.Hash(style)
		if IsHashSolved(b.Header.Difficulty, blkHash) {
			ev("database: performPOW: MINING: SOLVED: prevBlk[%s]: newBlk[%s]: nonce[%d]", b.Header.PrevBlockHash, blkHash, b.Header.Nonce)
			ev("database: performPOW: MINING: attempts[%d]", attempts)
			return nil
		}

		if maxAttempts > 0 && attempts >= maxAttempts {
			ev("database: performPOW: MINING: GAVE UP: attempts[%d]", attempts)
			return ErrMaxAttempts
		}

		if b.Header.Nonce == math.MaxUint32 {
			return ErrNonceExhausted
		}
		b.Header.Nonce++
	}
}

// Hash returns the unique hash for the block, which is the hash of its
// header. The transactions are covered through the merkle root.
func (b Block) Hash(style hash.Style) string {
	return b.Header.Hash(style)
}

// Values returns the transactions of the block in order.
func (b Block) Values() []Tx {
	if b.Trans == nil {
		return nil
	}

	return b.Trans.Values()
}

// ValidateBlock checks the block can follow the previous block. A nil
// previous block means this is expected to be the genesis block.
func (b Block) ValidateBlock(previousBlock *Block, style hash.Style) error {
	expPrev := hash.ZeroHash
	if previousBlock != nil {
		expPrev = previousBlock.Hash(style)
	}

	if b.Header.PrevBlockHash != expPrev {
		return fmt.Errorf("parent block hash doesn't match our known parent, got %s, exp %s", b.Header.PrevBlockHash, expPrev)
	}

	if h := b.Hash(style); !IsHashSolved(b.Header.Difficulty, h) {
		return fmt.Errorf("%s invalid block hash for difficulty %d", h, b.Header.Difficulty)
	}

	if b.Trans == nil {
		return errors.New("block has no transactions")
	}

	trans := b.Trans.Values()
	if b.TransCount != uint32(len(trans)) {
		return fmt.Errorf("transaction count does not match transactions, got %d, exp %d", b.TransCount, len(trans))
	}

	if !trans[0].IsReward() {
		return fmt.Errorf("first transaction is not the mining reward, got %s", trans[0])
	}

	tree, err := merkle.NewTree(trans, merkle.WithHashStrategy[Tx](style.Hash))
	if err != nil {
		return err
	}

	if b.Header.MerkleRoot != tree.MerkleRoot {
		return fmt.Errorf("merkle root does not match transactions, got %s, exp %s", tree.MerkleRoot, b.Header.MerkleRoot)
	}

	return nil
}

// =============================================================================

// IsHashSolved checks the hash complies with the POW rules. The first
// difficulty characters of the hash must parse as an unsigned integer equal
// to zero. A difficulty of zero is always solved. A hash shorter than the
// difficulty, or a prefix holding hex letters, is never solved.
func IsHashSolved(difficulty uint32, blkHash string) bool {
	if difficulty == 0 {
		return true
	}

	if uint64(len(blkHash)) < uint64(difficulty) {
		return false
	}

	v, err := strconv.ParseUint(blkHash[:difficulty], 10, 32)
	if err != nil {
		return false
	}

	return v == 0
}

// =============================================================================

// BlockData represents the serialized view of a block used for the
// diagnostic dump and tool output.
type BlockData struct {
	Hash       string      `json:"hash"`
	Header     BlockHeader `json:"header"`
	TransCount uint32      `json:"transaction_count"`
	Trans      []Tx        `json:"transactions"`
}

// NewBlockData constructs the value to serialize.
func NewBlockData(block Block, style hash.Style) BlockData {
	return BlockData{
		Hash:       block.Hash(style),
		Header:     block.Header,
		TransCount: block.TransCount,
		Trans:      block.Values(),
	}
}

// ToBlock converts a BlockData into a Block.
func ToBlock(blockData BlockData, style hash.Style) (Block, error) {
	tree, err := merkle.NewTree(blockData.Trans, merkle.WithHashStrategy[Tx](style.Hash))
	if err != nil {
		return Block{}, err
	}

	nb := Block{
		Header:     blockData.Header,
		TransCount: blockData.TransCount,
		Trans:      tree,
	}

	return nb, nil
}

// Dump renders the block as indented JSON for diagnostics.
func (bd BlockData) Dump() string {
	data, err := json.MarshalIndent(bd, "", "    ")
	if err != nil {
		return fmt.Sprintf("%+v", bd)
	}

	return string(data)
}
