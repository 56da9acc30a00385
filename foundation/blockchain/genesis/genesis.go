// Package genesis maintains access to the parameters a chain is started
// with.
package genesis

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ardanlabs/blockledger/foundation/blockchain/hash"
	"github.com/ardanlabs/blockledger/foundation/validate"
)

// DefaultMiningReward is the reward credited to the miner of a block when
// no other value has been configured.
const DefaultMiningReward = 100.0

// Genesis represents the genesis file.
type Genesis struct {
	Difficulty   uint32  `json:"difficulty" validate:"lte=64"`   // How difficult it needs to be to solve the work problem.
	MiningReward float64 `json:"mining_reward" validate:"gte=0"` // Reward for mining a block.
	HashStyle    string  `json:"hash_style"`                     // How hashes are rendered, compact or padded.
}

// Default returns the genesis information for a new chain with the
// specified difficulty.
func Default(difficulty uint32) Genesis {
	return Genesis{
		Difficulty:   difficulty,
		MiningReward: DefaultMiningReward,
		HashStyle:    hash.Compact.String(),
	}
}

// Style returns the parsed hash style of the genesis information.
func (g Genesis) Style() (hash.Style, error) {
	return hash.ParseStyle(g.HashStyle)
}

// Validate checks the values are ones a chain can be mined with. No rendered
// hash is longer than 64 characters so a higher difficulty is never solved.
func (g Genesis) Validate() error {
	if err := validate.Check(g); err != nil {
		return err
	}

	if _, err := g.Style(); err != nil {
		return err
	}

	return nil
}

// =============================================================================

// Load opens and consumes the genesis file. Missing fields take their
// default values.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	genesis := Default(0)
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, fmt.Errorf("unmarshal genesis %q: %w", path, err)
	}

	if err := genesis.Validate(); err != nil {
		return Genesis{}, fmt.Errorf("validate genesis %q: %w", path, err)
	}

	return genesis, nil
}
