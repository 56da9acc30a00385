// Package state is the core API for the ledger and implements all the
// business rules and processing.
package state

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ardanlabs/blockledger/foundation/blockchain/database"
	"github.com/ardanlabs/blockledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/blockledger/foundation/blockchain/hash"
	"github.com/ardanlabs/blockledger/foundation/blockchain/mempool"
)

// EventHandler defines a function that is called when events
// occur in the processing of mining blocks.
type EventHandler func(v string, args ...any)

// =============================================================================

// Config represents the configuration required to start the ledger.
type Config struct {
	MinerAddress string
	Genesis      genesis.Genesis
	MaxAttempts  uint64           // Zero means the proof of work search has no cap.
	Clock        func() time.Time // Defaults to time.Now.
	EvHandler    EventHandler
}

// State manages the blocks and the pending transactions of the ledger.
type State struct {
	minerAddress string
	style        hash.Style
	maxAttempts  uint64
	clock        func() time.Time
	evHandler    EventHandler

	mu         sync.RWMutex
	difficulty uint32
	reward     float64

	miningMu sync.Mutex

	genesis genesis.Genesis
	mempool *mempool.Mempool
	db      *database.Database
}

// New constructs the ledger and mines the genesis block before returning.
func New(ctx context.Context, cfg Config) (*State, error) {
	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	if err := cfg.Genesis.Validate(); err != nil {
		return nil, fmt.Errorf("genesis: %w", err)
	}

	style, err := cfg.Genesis.Style()
	if err != nil {
		return nil, err
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	s := State{
		minerAddress: cfg.MinerAddress,
		style:        style,
		maxAttempts:  cfg.MaxAttempts,
		clock:        clock,
		evHandler:    ev,

		difficulty: cfg.Genesis.Difficulty,
		reward:     cfg.Genesis.MiningReward,

		genesis: cfg.Genesis,
		mempool: mempool.New(),
		db:      database.New(style),
	}

	ev("state: New: MINING: genesis block: miner[%s]: difficulty[%d]: style[%s]", s.minerAddress, s.difficulty, s.style)

	if _, err := s.MineNewBlock(ctx); err != nil {
		return nil, fmt.Errorf("mining genesis block: %w", err)
	}

	return &s, nil
}

// UpdateDifficulty changes the difficulty used for blocks mined from now on.
func (s *State) UpdateDifficulty(difficulty uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: UpdateDifficulty: from[%d]: to[%d]", s.difficulty, difficulty)
	s.difficulty = difficulty
}

// UpdateReward changes the mining reward used for blocks mined from now on.
func (s *State) UpdateReward(reward float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: UpdateReward: from[%g]: to[%g]", s.reward, reward)
	s.reward = reward
}
