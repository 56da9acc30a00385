package mempool_test

import (
	"testing"

	"github.com/ardanlabs/blockledger/foundation/blockchain/database"
	"github.com/ardanlabs/blockledger/foundation/blockchain/mempool"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_CRUD(t *testing.T) {
	type table struct {
		name   string
		txs    []database.Tx
		remove int
		rest   []database.Tx
	}

	tt := []table{
		{
			name: "basic",
			txs: []database.Tx{
				database.NewTx("alice", "bob", 10),
				database.NewTx("bob", "carol", 5),
				database.NewTx("carol", "alice", 1),
			},
			remove: 2,
			rest: []database.Tx{
				database.NewTx("carol", "alice", 1),
			},
		},
		{
			name: "duplicates",
			txs: []database.Tx{
				database.NewTx("alice", "bob", 10),
				database.NewTx("alice", "bob", 10),
			},
			remove: 1,
			rest: []database.Tx{
				database.NewTx("alice", "bob", 10),
			},
		},
		{
			name: "remove-all",
			txs: []database.Tx{
				database.NewTx("alice", "bob", 10),
			},
			remove: 5,
		},
	}

	t.Log("Given the need to validate mempool api.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling a set of transactions.", testID)
			{
				f := func(t *testing.T) {
					mp := mempool.New()

					for i, tx := range tst.txs {
						if n := mp.Add(tx); n != i+1 {
							t.Fatalf("\t%s\tTest %d:\tShould get a pool size of %d, got %d.", failed, testID, i+1, n)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould be able to add every transaction.", success, testID)

					for i, tx := range mp.PickAll() {
						if tx != tst.txs[i] {
							t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, tx)
							t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, tst.txs[i])
							t.Fatalf("\t%s\tTest %d:\tShould keep submission order.", failed, testID)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould keep submission order.", success, testID)

					mp.Remove(tst.remove)
					rest := mp.Copy()
					if len(rest) != len(tst.rest) {
						t.Fatalf("\t%s\tTest %d:\tShould have %d left, got %d.", failed, testID, len(tst.rest), len(rest))
					}
					for i := range rest {
						if rest[i] != tst.rest[i] {
							t.Fatalf("\t%s\tTest %d:\tShould keep the tail in order.", failed, testID)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould remove the mined transactions.", success, testID)

					mp.Add(database.NewTx("x", "y", 1))
					mp.Truncate()
					if mp.Count() != 0 {
						t.Fatalf("\t%s\tTest %d:\tShould be able to truncate mempool.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to truncate mempool.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}
