package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/ardanlabs/blockledger/app/services/ledger/console"
	"github.com/ardanlabs/blockledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/blockledger/foundation/blockchain/state"
	"github.com/ardanlabs/blockledger/foundation/events"
	"github.com/ardanlabs/blockledger/foundation/logger"
	"github.com/ardanlabs/conf/v3"
	"github.com/google/uuid"
	"github.com/pterm/pterm"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Perform the startup and shutdown sequence. The logger can't be
	// constructed until the configuration provides its output path.
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
}

func run() error {

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Ledger struct {
			MinerAddress string
			Difficulty   uint32  `conf:"default:1"`
			Reward       float64 `conf:"default:100"`
			HashStyle    string  `conf:"default:compact"`
			MaxAttempts  uint64  `conf:"default:0"`
			GenesisPath  string
		}
		Log struct {
			Path string `conf:"default:zblock/ledger.log"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "copyright information here",
		},
	}

	// Parse will set the defaults and then look for any overriding values
	// in environment variables and command line flags.
	const prefix = "LEDGER"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// The operator types into stdout so the log goes to a file.
	log, err := logger.NewWithOutput("LEDGER", cfg.Log.Path)
	if err != nil {
		return fmt.Errorf("constructing logger: %w", err)
	}
	defer log.Sync()

	// =========================================================================
	// App Starting

	pterm.DefaultHeader.WithFullWidth().Println("BLOCKLEDGER")

	log.Infow("starting service", "version", build)
	defer log.Infow("shutdown complete")

	// Display the current configuration to the logs.
	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =========================================================================
	// Genesis Support

	gen := genesis.Default(cfg.Ledger.Difficulty)
	gen.MiningReward = cfg.Ledger.Reward
	gen.HashStyle = cfg.Ledger.HashStyle

	if cfg.Ledger.GenesisPath != "" {
		gen, err = genesis.Load(cfg.Ledger.GenesisPath)
		if err != nil {
			return fmt.Errorf("unable to load genesis: %w", err)
		}
	}

	// The prompter is shared with the console so both read the same input.
	prompter := console.NewPrompter(os.Stdin)

	// When no miner is configured the operator provides one along with the
	// difficulty to start with.
	minerAddress := cfg.Ledger.MinerAddress
	if minerAddress == "" {
		su, err := prompter.AskStartup()
		if err != nil {
			return fmt.Errorf("reading startup input: %w", err)
		}
		minerAddress = su.MinerAddress
		gen.Difficulty = su.Difficulty
	}

	// Values from the environment, flags or the genesis file are held to the
	// same bounds as the ones typed in at the console.
	if err := gen.Validate(); err != nil {
		return fmt.Errorf("invalid genesis values: %w", err)
	}

	log.Infow("startup", "status", "genesis", "miner", minerAddress, "difficulty", gen.Difficulty, "reward", gen.MiningReward, "style", gen.HashStyle)

	// =========================================================================
	// Ledger Support

	// Make a channel to listen for an interrupt or terminate signal from the OS.
	// Use a buffered channel because the signal package requires it.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	// Cancelling the context stops any proof of work search in flight.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The console stores a new trace id for every operation it performs so
	// the raw ledger messages can be tied back to the operation.
	var traceID atomic.Value
	traceID.Store(uuid.Nil.String())

	// The blockchain packages accept a function of this signature to allow the
	// application to log. These raw messages are also sent to the console
	// through the events package.
	evts := events.New()
	ev := func(v string, args ...any) {
		s := fmt.Sprintf(v, args...)
		log.Infow(s, "traceid", traceID.Load())
		evts.Send(s)
	}

	stateErrors := make(chan error, 1)
	var st *state.State
	go func() {
		var err error
		st, err = state.New(ctx, state.Config{
			MinerAddress: minerAddress,
			Genesis:      gen,
			MaxAttempts:  cfg.Ledger.MaxAttempts,
			EvHandler:    ev,
		})
		stateErrors <- err
	}()

	spinner, _ := pterm.DefaultSpinner.Start("Mining genesis block...")

	select {
	case err := <-stateErrors:
		if err != nil {
			spinner.Fail("Genesis block failed")
			return fmt.Errorf("unable to construct ledger: %w", err)
		}
		spinner.Success("Genesis block mined")

	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown during genesis", "signal", sig)
		cancel()
		<-stateErrors
		spinner.Warning("Genesis block cancelled")
		return nil
	}

	// =========================================================================
	// Start Console

	log.Infow("startup", "status", "console started")

	cons := console.New(console.Config{
		Log:      log,
		State:    st,
		Evts:     evts,
		Prompter: prompter,
		TraceID:  &traceID,
	})

	consoleErrors := make(chan error, 1)
	go func() {
		consoleErrors <- cons.Run(ctx)
	}()

	// =========================================================================
	// Shutdown

	// Blocking main and waiting for shutdown.
	select {
	case err := <-consoleErrors:
		log.Infow("shutdown", "status", "console closed")
		evts.Shutdown()
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("console error: %w", err)
		}

	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete", "signal", sig)

		// Stop any block being mined and release the subscribers.
		cancel()
		evts.Shutdown()
	}

	return nil
}
