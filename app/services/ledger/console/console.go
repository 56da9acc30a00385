// Package console implements the operator menu that drives the ledger. It
// only parses input, calls the ledger and prints results.
package console

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync/atomic"

	"github.com/ardanlabs/blockledger/foundation/blockchain/state"
	"github.com/ardanlabs/blockledger/foundation/events"
	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"go.uber.org/zap"
)

// Set of menu choices.
const (
	choiceExit = iota
	choiceNewTx
	choiceMine
	choiceDifficulty
	choiceReward
	choiceShow
	choiceVerify
)

// Config contains all the mandatory systems required by the console.
type Config struct {
	Log      *zap.SugaredLogger
	State    *state.State
	Evts     *events.Events
	Prompter *Prompter
	TraceID  *atomic.Value
}

// Console drives the ledger from operator input.
type Console struct {
	log     *zap.SugaredLogger
	state   *state.State
	evts    *events.Events
	prompt  *Prompter
	traceID *atomic.Value
}

// New constructs a console for the ledger.
func New(cfg Config) *Console {
	traceID := cfg.TraceID
	if traceID == nil {
		traceID = new(atomic.Value)
	}

	return &Console{
		log:     cfg.Log,
		state:   cfg.State,
		evts:    cfg.Evts,
		prompt:  cfg.Prompter,
		traceID: traceID,
	}
}

// Run loops on the menu until the operator exits or the input is closed.
// The context is used to cancel a block being mined.
func (c *Console) Run(ctx context.Context) error {
	for {
		printMenu()

		answer, err := c.prompt.Ask("Enter your choice")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		pterm.Println()

		choice, err := ParseChoice(answer)
		if err != nil {
			pterm.Warning.Println("Invalid option.")
			continue
		}

		c.traceID.Store(uuid.NewString())

		switch choice {
		case choiceExit:
			pterm.Info.Println("...Exiting")
			return nil

		case choiceNewTx:
			err = c.newTransaction()

		case choiceMine:
			err = c.mineBlock(ctx)

		case choiceDifficulty:
			err = c.changeDifficulty()

		case choiceReward:
			err = c.changeReward()

		case choiceShow:
			c.showChain()

		case choiceVerify:
			c.verifyChain()

		default:
			pterm.Warning.Println("Invalid option.")
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// =============================================================================

func (c *Console) newTransaction() error {
	sender, err := c.prompt.Ask("Enter sender address")
	if err != nil {
		return err
	}

	receiver, err := c.prompt.Ask("Enter receiver address")
	if err != nil {
		return err
	}

	amount, err := c.prompt.Ask("Enter amount")
	if err != nil {
		return err
	}

	nt, err := ParseNewTx(sender, receiver, amount)
	if err != nil {
		printFieldErrors(err)
		pterm.Error.Println("Transaction failed")
		return nil
	}

	n := c.state.SubmitTransaction(nt.Sender, nt.Receiver, nt.Amount)
	c.log.Infow("console", "traceid", c.traceID.Load(), "status", "transaction added", "pending", n)

	pterm.Success.Printfln("Transaction added, %d pending", n)
	return nil
}

func (c *Console) mineBlock(ctx context.Context) error {
	spinner, _ := pterm.DefaultSpinner.Start("Generating block...")

	// Progress lines from the proof of work search are shown on the
	// spinner while the search runs.
	id, ch := c.evts.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for s := range ch {
			if strings.Contains(s, "MINING") && !strings.Contains(s, "\n") {
				spinner.UpdateText(s)
			}
		}
	}()

	block, err := c.state.MineNewBlock(ctx)

	c.evts.Release(id)
	<-done

	if err != nil {
		c.log.Errorw("console", "traceid", c.traceID.Load(), "status", "block generation failed", "ERROR", err)
		spinner.Fail("Block generation failed: ", err)
		return nil
	}

	num := len(c.state.RetrieveBlocks()) - 1
	c.log.Infow("console", "traceid", c.traceID.Load(), "status", "block generated", "block", num, "nonce", block.Header.Nonce)
	spinner.Success("Block generated successfully")

	printBlock(num, c.state.RetrieveBlockData()[num])
	return nil
}

func (c *Console) changeDifficulty() error {
	answer, err := c.prompt.Ask("Enter new difficulty")
	if err != nil {
		return err
	}

	difficulty, err := ParseDifficulty(answer)
	if err != nil {
		printFieldErrors(err)
		pterm.Error.Println("Failed to update difficulty")
		return nil
	}

	c.state.UpdateDifficulty(difficulty)
	c.log.Infow("console", "traceid", c.traceID.Load(), "status", "difficulty updated", "difficulty", difficulty)

	pterm.Success.Println("Difficulty updated successfully")
	return nil
}

func (c *Console) changeReward() error {
	answer, err := c.prompt.Ask("Enter reward")
	if err != nil {
		return err
	}

	reward, err := ParseReward(answer)
	if err != nil {
		printFieldErrors(err)
		pterm.Error.Println("Failed to update reward")
		return nil
	}

	c.state.UpdateReward(reward)
	c.log.Infow("console", "traceid", c.traceID.Load(), "status", "reward updated", "reward", reward)

	pterm.Success.Println("Reward updated successfully")
	return nil
}

func (c *Console) showChain() {
	pterm.Info.Printfln("miner[%s] difficulty[%d] reward[%g] style[%s]",
		c.state.RetrieveMinerAddress(), c.state.RetrieveDifficulty(), c.state.RetrieveReward(), c.state.RetrieveHashStyle())

	for i, bd := range c.state.RetrieveBlockData() {
		printBlock(i, bd)
	}

	printPending(c.state.RetrievePending())
}

func (c *Console) verifyChain() {
	if err := c.state.Verify(); err != nil {
		c.log.Errorw("console", "traceid", c.traceID.Load(), "status", "verify failed", "ERROR", err)
		pterm.Error.Println("Chain is invalid: ", err)
		return
	}

	pterm.Success.Printfln("Chain of %d blocks is valid", len(c.state.RetrieveBlocks()))
}
