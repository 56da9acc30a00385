package console_test

import (
	"context"
	"strings"
	"testing"

	"github.com/ardanlabs/blockledger/app/services/ledger/console"
	"github.com/ardanlabs/blockledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/blockledger/foundation/blockchain/state"
	"github.com/ardanlabs/blockledger/foundation/events"
	"github.com/ardanlabs/blockledger/foundation/validate"
	"github.com/pterm/pterm"
	"go.uber.org/zap"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_ParseNewTx(t *testing.T) {
	type table struct {
		name     string
		sender   string
		receiver string
		amount   string
		valid    bool
	}

	tt := []table{
		{name: "valid", sender: "alice", receiver: "bob", amount: "10.5", valid: true},
		{name: "spaces", sender: " alice ", receiver: "bob", amount: " 3 ", valid: true},
		{name: "not-a-number", sender: "alice", receiver: "bob", amount: "ten", valid: false},
		{name: "negative", sender: "alice", receiver: "bob", amount: "-1", valid: false},
		{name: "infinite", sender: "alice", receiver: "bob", amount: "Inf", valid: false},
		{name: "nan", sender: "alice", receiver: "bob", amount: "NaN", valid: false},
		{name: "no-sender", sender: "", receiver: "bob", amount: "1", valid: false},
		{name: "bad-utf8-sender", sender: "\xff", receiver: "bob", amount: "1", valid: false},
		{name: "bad-utf8-receiver", sender: "alice", receiver: "b\xfeb", amount: "1", valid: false},
		{name: "utf8-sender", sender: "\u00e5sa", receiver: "bob", amount: "1", valid: true},
	}

	t.Log("Given the need to reject bad transaction input before the ledger.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling %s input.", testID, tst.name)
			{
				f := func(t *testing.T) {
					nt, err := console.ParseNewTx(tst.sender, tst.receiver, tst.amount)
					switch {
					case tst.valid && err != nil:
						t.Fatalf("\t%s\tTest %d:\tShould accept the input: %v", failed, testID, err)
					case !tst.valid && err == nil:
						t.Fatalf("\t%s\tTest %d:\tShould reject the input: %+v", failed, testID, nt)
					case !tst.valid && !validate.IsFieldErrors(err):
						t.Fatalf("\t%s\tTest %d:\tShould report field errors: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould get valid[%t].", success, testID, tst.valid)

					if tst.valid && nt.Sender != strings.TrimSpace(tst.sender) {
						t.Fatalf("\t%s\tTest %d:\tShould trim the sender.", failed, testID)
					}
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func Test_ParseSettings(t *testing.T) {
	t.Log("Given the need to reject bad settings input.")
	{
		if d, err := console.ParseDifficulty("3"); err != nil || d != 3 {
			t.Fatalf("\t%s\tShould accept difficulty 3.", failed)
		}
		t.Logf("\t%s\tShould accept difficulty 3.", success)

		for _, bad := range []string{"65", "-1", "two", "1.5"} {
			if _, err := console.ParseDifficulty(bad); err == nil {
				t.Fatalf("\t%s\tShould reject difficulty %q.", failed, bad)
			}
		}
		t.Logf("\t%s\tShould reject bad difficulties.", success)

		if r, err := console.ParseReward("50.0"); err != nil || r != 50 {
			t.Fatalf("\t%s\tShould accept reward 50.0.", failed)
		}
		t.Logf("\t%s\tShould accept reward 50.0.", success)

		for _, bad := range []string{"-5", "lots", "+Inf"} {
			if _, err := console.ParseReward(bad); err == nil {
				t.Fatalf("\t%s\tShould reject reward %q.", failed, bad)
			}
		}
		t.Logf("\t%s\tShould reject bad rewards.", success)

		if _, err := console.ParseStartup("", "1"); err == nil {
			t.Fatalf("\t%s\tShould require a miner address.", failed)
		}
		t.Logf("\t%s\tShould require a miner address.", success)

		if _, err := console.ParseStartup("\xff", "1"); err == nil {
			t.Fatalf("\t%s\tShould reject a miner address that is not UTF-8.", failed)
		}
		t.Logf("\t%s\tShould reject a miner address that is not UTF-8.", success)

		if _, err := console.ParseChoice("x"); err == nil {
			t.Fatalf("\t%s\tShould reject a non numeric choice.", failed)
		}
		t.Logf("\t%s\tShould reject a non numeric choice.", success)
	}
}

func Test_Run(t *testing.T) {
	pterm.DisableOutput()
	defer pterm.EnableOutput()

	t.Log("Given the need to drive the ledger from the menu.")
	{
		st, err := state.New(context.Background(), state.Config{
			MinerAddress: "miner1",
			Genesis:      genesis.Default(0),
		})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the ledger: %v", failed, err)
		}

		input := strings.Join([]string{
			"1", "alice", "bob", "10",
			"1", "bob", "carol", "five",
			"4", "50",
			"3", "1",
			"2",
			"5",
			"6",
			"9",
			"0",
		}, "\n")

		c := console.New(console.Config{
			Log:      zap.NewNop().Sugar(),
			State:    st,
			Evts:     events.New(),
			Prompter: console.NewPrompter(strings.NewReader(input)),
		})

		if err := c.Run(context.Background()); err != nil {
			t.Fatalf("\t%s\tShould run the menu to exit: %v", failed, err)
		}
		t.Logf("\t%s\tShould run the menu to exit.", success)

		blocks := st.RetrieveBlocks()
		if len(blocks) != 2 {
			t.Fatalf("\t%s\tShould have mined one block after genesis, got %d blocks.", failed, len(blocks))
		}
		t.Logf("\t%s\tShould have mined one block after genesis.", success)

		trans := blocks[1].Values()
		if len(trans) != 2 || trans[0].Amount != 50 || trans[1].Sender != "alice" {
			t.Fatalf("\t%s\tShould mine the reward and the valid transaction only: %v", failed, trans)
		}
		t.Logf("\t%s\tShould mine the reward and the valid transaction only.", success)

		if blocks[1].Header.Difficulty != 1 {
			t.Fatalf("\t%s\tShould mine with the updated difficulty.", failed)
		}
		t.Logf("\t%s\tShould mine with the updated difficulty.", success)
	}
}
