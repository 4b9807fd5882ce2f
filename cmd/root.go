package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"peake-swap/config"
	"peake-swap/pkg/engine"
	"peake-swap/pkg/hive"
	"peake-swap/pkg/scanner"
	"peake-swap/pkg/signer"
	"peake-swap/pkg/swap"
)

var rootCmd = &cobra.Command{
	Use:   "peake-swap",
	Short: "A CLI for two-leg Hive Engine token swaps via SWAP.HIVE",
	Long: `peake-swap sells a Hive Engine token for SWAP.HIVE, waits for the
payout to land on the sidechain, then buys PEK with the proceeds.

The two legs are bridged by polling the sidechain block log, so a swap
survives restarts: an interrupted swap can be picked up again with
'peake-swap resume'.

Examples:
  peake-swap swap 100 BEE --account alice
  peake-swap swap 12.5 LEO --account alice --signer hivesigner
  peake-swap resume
  peake-swap rate BEE
  peake-swap status`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose debug logging")
}

func printError(err error) {
	fmt.Printf("\nError: %v\n\n", err)
}

func printSuccess(message string) {
	fmt.Printf("\n%s\n\n", message)
}

// newLogger builds the debug log feed. Debug entries go to stderr so they
// never interleave with status output.
func newLogger(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

// newGateway wires the engine gateway from configuration.
func newGateway(cfg *config.Config, log logrus.FieldLogger) *engine.Gateway {
	// No client timeout: the gateway contract leaves latency bounds to the
	// transport defaults and callers impose their own retry loops.
	return engine.NewGateway(cfg.EngineEndpoints, cfg.CORSProxy, &http.Client{}, log)
}

// newOrchestrator wires the full swap pipeline from configuration.
func newOrchestrator(cfg *config.Config, log *logrus.Logger) (*swap.Orchestrator, error) {
	httpClient := &http.Client{}
	gw := engine.NewGateway(cfg.EngineEndpoints, cfg.CORSProxy, httpClient, log)

	// An unset agent URL means no keychain companion is installed; submissions
	// through that backend are then rejected with a clear message.
	var agent signer.Agent
	if cfg.KeychainAgentURL != "" {
		agent = signer.NewHTTPAgent(cfg.KeychainAgentURL, httpClient)
	}
	signers := signer.NewManager(
		signer.NewKeychain(agent, log),
		signer.NewHivesigner(cfg.HivesignerURL, nil, log),
	)

	store, err := swap.NewFileStore(cfg.StorePath)
	if err != nil {
		return nil, err
	}

	display := func(message string) {
		color.Cyan("%s", message)
	}

	return swap.New(
		swap.Config{
			TargetSymbol:    cfg.TargetSymbol,
			ExternalSymbol:  cfg.ExternalSymbol,
			SettleDelay:     cfg.SettleDelay,
			PollInterval:    cfg.PollInterval,
			MaxPollAttempts: cfg.MaxPollAttempts,
			BuyCooldown:     cfg.BuyCooldown,
		},
		store,
		scanner.New(gw, log),
		hive.NewResolver(cfg.HiveAPIURL, httpClient, cfg.AnchorMaxAttempts, cfg.AnchorDelay, log),
		signers,
		display,
		log,
	), nil
}
