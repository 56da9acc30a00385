package database

import (
	"fmt"
)

// RootSender is the sender of every mining reward transaction.
const RootSender = "Root"

// =============================================================================

// Tx is the value transfer between two parties. The field order is part of
// the hash and must not change.
type Tx struct {
	Sender   string  `json:"sender"`   // Address funds are sent from.
	Receiver string  `json:"receiver"` // Address receiving the benefit of the transaction.
	Amount   float64 `json:"amount"`   // Value transferred.
}

// NewTx constructs a new transaction. No validation is performed since the
// ledger does not model account state.
func NewTx(sender string, receiver string, amount float64) Tx {
	return Tx{
		Sender:   sender,
		Receiver: receiver,
		Amount:   amount,
	}
}

// NewRewardTx constructs the transaction crediting the miner of a block.
func NewRewardTx(minerAddress string, reward float64) Tx {
	return NewTx(RootSender, minerAddress, reward)
}

// IsReward tests if the transaction is a mining reward.
func (tx Tx) IsReward() bool {
	return tx.Sender == RootSender
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s->%s:%g", tx.Sender, tx.Receiver, tx.Amount)
}
