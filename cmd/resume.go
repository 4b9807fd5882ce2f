package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"peake-swap/config"
	"peake-swap/pkg/swap"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume a pending swap after a restart or an out-of-band signature",
	Long: `Pick up the persisted pending swap and poll for its SWAP.HIVE payout
again. Used after the process was interrupted, or on the hivesigner path
after you signed the sell in your browser.

The polling budget starts over from zero; a record that already reached a
terminal state is left alone.`,
	Args: cobra.NoArgs,
	Run:  runResume,
}

func init() {
	rootCmd.AddCommand(resumeCmd)
}

func runResume(cmd *cobra.Command, args []string) {
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	log := newLogger(verbose)
	orchestrator, err := newOrchestrator(cfg, log)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	err = orchestrator.Resume(context.Background())
	if err != nil {
		if errors.Is(err, swap.ErrNoPendingSwap) {
			printSuccess("No pending swap found. Nothing to resume.")
			return
		}
		if errors.Is(err, swap.ErrPollingExhausted) {
			os.Exit(1)
		}
		printError(err)
		os.Exit(1)
	}

	printSuccess("Swap flow finished.")
}
