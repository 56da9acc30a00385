package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ardanlabs/blockledger/foundation/blockchain/database"
	"github.com/ardanlabs/blockledger/foundation/blockchain/hash"
	"github.com/ardanlabs/blockledger/foundation/blockchain/merkle"
	"go.uber.org/zap"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_ParseTx(t *testing.T) {
	t.Log("Given the need to read transactions from the command line.")
	{
		tx, err := parseTx("alice:bob:12.5")
		if err != nil {
			t.Fatalf("\t%s\tShould parse a transaction: %v", failed, err)
		}
		t.Logf("\t%s\tShould parse a transaction.", success)

		if tx != database.NewTx("alice", "bob", 12.5) {
			t.Fatalf("\t%s\tShould get back the right values: %v", failed, tx)
		}
		t.Logf("\t%s\tShould get back the right values.", success)

		for _, bad := range []string{"alice:bob", "alice:bob:ten", "a:b:c:d", "\xff:bob:1"} {
			if _, err := parseTx(bad); err == nil {
				t.Fatalf("\t%s\tShould reject %q.", failed, bad)
			}
		}
		t.Logf("\t%s\tShould reject malformed transactions.", success)
	}
}

func Test_HashAndMerkle(t *testing.T) {
	t.Log("Given the need to hash values from the command line.")
	{
		h, err := hashJSON(`"hello"`, hash.Compact)
		if err != nil {
			t.Fatalf("\t%s\tShould hash a JSON string: %v", failed, err)
		}
		if h != hash.Hash("hello") {
			t.Fatalf("\t%s\tShould match the ledger hash of the string.", failed)
		}
		t.Logf("\t%s\tShould match the ledger hash of the string.", success)

		if _, err := hashJSON(`{`, hash.Compact); err == nil {
			t.Fatalf("\t%s\tShould reject bad JSON.", failed)
		}
		t.Logf("\t%s\tShould reject bad JSON.", success)

		trans := []database.Tx{
			database.NewRewardTx("miner1", 100),
			database.NewTx("alice", "bob", 10),
		}
		want, err := merkle.NewTree(trans)
		if err != nil {
			t.Fatalf("\t%s\tShould build the expected tree: %v", failed, err)
		}

		tree, err := merkleTree(`[{"sender":"Root","receiver":"miner1","amount":100},{"sender":"alice","receiver":"bob","amount":10}]`, hash.Compact)
		if err != nil {
			t.Fatalf("\t%s\tShould build a tree from JSON: %v", failed, err)
		}
		if tree.MerkleRoot != want.MerkleRoot {
			t.Fatalf("\t%s\tShould get the same merkle root as the ledger.", failed)
		}
		t.Logf("\t%s\tShould get the same merkle root as the ledger.", success)

		if _, err := merkleTree(`[]`, hash.Compact); err == nil {
			t.Fatalf("\t%s\tShould reject an empty set.", failed)
		}
		t.Logf("\t%s\tShould reject an empty set.", success)
	}
}

func Test_Mine(t *testing.T) {
	miner, difficulty, reward, blocks, maxAttempts = "miner1", 1, 100, 2, 0
	hashStyle = hash.Compact.String()
	trans = []string{"alice:bob:10", "bob:carol:5"}

	t.Log("Given the need to mine a chain from the command line.")
	{
		var buf bytes.Buffer
		if err := mine(context.Background(), zap.NewNop().Sugar(), &buf); err != nil {
			t.Fatalf("\t%s\tShould mine and verify the chain: %v", failed, err)
		}
		t.Logf("\t%s\tShould mine and verify the chain.", success)

		out := buf.String()
		if !strings.Contains(out, "block[2]:") || !strings.Contains(out, "chain of 3 blocks verified") {
			t.Fatalf("\t%s\tShould print every block:\n%s", failed, out)
		}
		t.Logf("\t%s\tShould print every block.", success)

		if !strings.Contains(out, `"transaction_count": 3`) {
			t.Fatalf("\t%s\tShould put the transactions in the first block.", failed)
		}
		t.Logf("\t%s\tShould put the transactions in the first block.", success)
	}
}

func Test_MineRejectsBadValues(t *testing.T) {
	miner, difficulty, reward, blocks, maxAttempts = "miner1", 100, 100, 1, 0
	hashStyle = hash.Compact.String()
	trans = nil
	defer func() { difficulty = 1 }()

	t.Log("Given the need to refuse values no chain can be mined with.")
	{
		var buf bytes.Buffer
		if err := mine(context.Background(), zap.NewNop().Sugar(), &buf); err == nil {
			t.Fatalf("\t%s\tShould reject a difficulty of 100.", failed)
		}
		t.Logf("\t%s\tShould reject a difficulty of 100.", success)

		if buf.Len() != 0 {
			t.Fatalf("\t%s\tShould not print any blocks:\n%s", failed, buf.String())
		}
		t.Logf("\t%s\tShould not print any blocks.", success)
	}
}
