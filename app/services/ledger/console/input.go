package console

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ardanlabs/blockledger/foundation/validate"
	"github.com/pterm/pterm"
)

// NewTx is what the operator provides to submit a transaction.
type NewTx struct {
	Sender   string  `json:"sender" validate:"required,utf8"`
	Receiver string  `json:"receiver" validate:"required,utf8"`
	Amount   float64 `json:"amount" validate:"gte=0"`
}

// Startup is what the operator provides before the chain is constructed.
type Startup struct {
	MinerAddress string `json:"miner_address" validate:"required,utf8"`
	Difficulty   uint32 `json:"difficulty" validate:"lte=64"`
}

// Difficulty is what the operator provides to change the difficulty. No
// rendered hash is longer than 64 characters so anything above can never be
// solved.
type Difficulty struct {
	Value uint32 `json:"difficulty" validate:"lte=64"`
}

// Reward is what the operator provides to change the mining reward.
type Reward struct {
	Value float64 `json:"reward" validate:"gte=0"`
}

// =============================================================================

// ParseNewTx converts the raw operator input into a validated NewTx.
func ParseNewTx(sender string, receiver string, amount string) (NewTx, error) {
	amt, err := parseFloat("amount", amount)
	if err != nil {
		return NewTx{}, err
	}

	nt := NewTx{
		Sender:   strings.TrimSpace(sender),
		Receiver: strings.TrimSpace(receiver),
		Amount:   amt,
	}

	if err := validate.Check(nt); err != nil {
		return NewTx{}, err
	}

	return nt, nil
}

// ParseStartup converts the raw operator input into a validated Startup.
func ParseStartup(minerAddress string, difficulty string) (Startup, error) {
	diff, err := parseUint32("difficulty", difficulty)
	if err != nil {
		return Startup{}, err
	}

	su := Startup{
		MinerAddress: strings.TrimSpace(minerAddress),
		Difficulty:   diff,
	}

	if err := validate.Check(su); err != nil {
		return Startup{}, err
	}

	return su, nil
}

// ParseDifficulty converts the raw operator input into a validated
// difficulty.
func ParseDifficulty(difficulty string) (uint32, error) {
	diff, err := parseUint32("difficulty", difficulty)
	if err != nil {
		return 0, err
	}

	if err := validate.Check(Difficulty{Value: diff}); err != nil {
		return 0, err
	}

	return diff, nil
}

// ParseReward converts the raw operator input into a validated reward.
func ParseReward(reward string) (float64, error) {
	rwd, err := parseFloat("reward", reward)
	if err != nil {
		return 0, err
	}

	if err := validate.Check(Reward{Value: rwd}); err != nil {
		return 0, err
	}

	return rwd, nil
}

// ParseChoice converts the menu selection into an integer.
func ParseChoice(choice string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(choice))
	if err != nil {
		return 0, fmt.Errorf("choice %q is not a number", strings.TrimSpace(choice))
	}

	return n, nil
}

// =============================================================================

func parseFloat(field string, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, validate.FieldErrors{{Field: field, Error: fmt.Sprintf("%s must be a number", field)}}
	}

	// Non finite values can't be marshaled and so can't be hashed.
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, validate.FieldErrors{{Field: field, Error: fmt.Sprintf("%s must be a finite number", field)}}
	}

	return v, nil
}

func parseUint32(field string, value string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(value), 10, 32)
	if err != nil {
		return 0, validate.FieldErrors{{Field: field, Error: fmt.Sprintf("%s must be a whole number", field)}}
	}

	return uint32(v), nil
}

// =============================================================================

// Prompter reads the operator's answers one line at a time.
type Prompter struct {
	scanner *bufio.Scanner
}

// NewPrompter constructs a prompter reading from r.
func NewPrompter(r io.Reader) *Prompter {
	return &Prompter{
		scanner: bufio.NewScanner(r),
	}
}

// Ask shows the label and returns the next line of input. It returns
// io.EOF once the input is closed.
func (p *Prompter) Ask(label string) (string, error) {
	pterm.Print(pterm.LightCyan(label + ": "))

	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}

	return strings.TrimSpace(p.scanner.Text()), nil
}

// AskStartup keeps asking for the miner address and difficulty until
// valid values are provided.
func (p *Prompter) AskStartup() (Startup, error) {
	for {
		miner, err := p.Ask("Input a miner address")
		if err != nil {
			return Startup{}, err
		}

		difficulty, err := p.Ask("Difficulty")
		if err != nil {
			return Startup{}, err
		}

		su, err := ParseStartup(miner, difficulty)
		if err != nil {
			printFieldErrors(err)
			continue
		}

		return su, nil
	}
}
