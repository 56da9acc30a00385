package state

import "github.com/ardanlabs/blockledger/foundation/blockchain/database"

// SubmitTransaction accepts a transaction for inclusion in the next mined
// block and returns the number of pending transactions. There is no balance,
// signature or duplicate check, every submission is accepted.
func (s *State) SubmitTransaction(sender string, receiver string, amount float64) int {
	tx := database.NewTx(sender, receiver, amount)

	n := s.mempool.Add(tx)
	s.evHandler("state: SubmitTransaction: tx[%s]: pending[%d]", tx, n)

	return n
}
