package console

import (
	"fmt"
	"strconv"

	"github.com/ardanlabs/blockledger/foundation/blockchain/database"
	"github.com/ardanlabs/blockledger/foundation/validate"
	"github.com/pterm/pterm"
)

func printMenu() {
	pterm.DefaultSection.Println("Menu")
	pterm.Println("1) New Transaction")
	pterm.Println("2) Mine New Block")
	pterm.Println("3) Change Difficulty")
	pterm.Println("4) Change Reward")
	pterm.Println("5) Show Chain")
	pterm.Println("6) Verify Chain")
	pterm.Println("0) Exit")
}

func printBlock(num int, bd database.BlockData) {
	pterm.DefaultSection.WithLevel(2).Printfln("Block %d", num)

	header := pterm.TableData{
		{"Field", "Value"},
		{"hash", bd.Hash},
		{"previous_hash", bd.Header.PrevBlockHash},
		{"merkle_root", bd.Header.MerkleRoot},
		{"timestamp", strconv.Itoa(int(bd.Header.TimeStamp))},
		{"nonce", strconv.FormatUint(uint64(bd.Header.Nonce), 10)},
		{"difficulty", strconv.FormatUint(uint64(bd.Header.Difficulty), 10)},
		{"transaction_count", strconv.FormatUint(uint64(bd.TransCount), 10)},
	}
	pterm.DefaultTable.WithHasHeader().WithData(header).Render()

	trans := pterm.TableData{{"#", "Sender", "Receiver", "Amount"}}
	for i, tx := range bd.Trans {
		trans = append(trans, []string{strconv.Itoa(i), tx.Sender, tx.Receiver, fmt.Sprintf("%g", tx.Amount)})
	}
	pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(trans).Render()
}

func printPending(trans []database.Tx) {
	if len(trans) == 0 {
		pterm.Info.Println("No pending transactions")
		return
	}

	data := pterm.TableData{{"#", "Sender", "Receiver", "Amount"}}
	for i, tx := range trans {
		data = append(data, []string{strconv.Itoa(i), tx.Sender, tx.Receiver, fmt.Sprintf("%g", tx.Amount)})
	}

	pterm.DefaultSection.WithLevel(2).Println("Pending")
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printFieldErrors(err error) {
	fe := validate.GetFieldErrors(err)
	if fe == nil {
		pterm.Error.Println(err)
		return
	}

	for _, fld := range fe {
		pterm.Error.Printfln("%s: %s", fld.Field, fld.Error)
	}
}
