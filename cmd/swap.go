package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"peake-swap/config"
	"peake-swap/pkg/parser"
	"peake-swap/pkg/swap"
)

var (
	swapAccount  string
	signerMethod string
)

var swapCmd = &cobra.Command{
	Use:   "swap <amount> <token>",
	Short: "Sell a token for SWAP.HIVE and buy PEK with the proceeds",
	Long: `Perform a two-leg swap: sell the given token for SWAP.HIVE on the
Hive Engine market, wait for the payout to land, then buy the target token
with the proceeds (minus a flat 0.001 SWAP.HIVE fee).

With the keychain signer the flow runs unattended. With the hivesigner
signer the sell opens in your browser; sign it there, then run
'peake-swap resume' to finish the second leg.

Examples:
  peake-swap swap 100 BEE --account alice
  peake-swap swap 12.5 LEO --account alice --signer hivesigner`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSwap,
}

func init() {
	rootCmd.AddCommand(swapCmd)

	swapCmd.Flags().StringVar(&swapAccount, "account", "", "Hive account performing the swap (REQUIRED)")
	swapCmd.Flags().StringVar(&signerMethod, "signer", "keychain", "Signing backend: keychain or hivesigner")
}

func runSwap(cmd *cobra.Command, args []string) {
	// Parse the command
	commandStr := strings.Join(args, " ")
	swapReq, err := parser.ParseSwapCommand(commandStr)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	swapReq.Account = swapAccount

	verbose, _ := cmd.Flags().GetBool("verbose")

	// Load configuration
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

	fmt.Printf("\nSwapping %s %s -> %s -> %s for %s\n\n",
		swapReq.Quantity, color.YellowString(swapReq.Symbol),
		"SWAP.HIVE", color.YellowString(cfg.TargetSymbol), swapReq.Account)

	method := swap.Method(strings.ToLower(signerMethod))
	err = orchestrator.Start(context.Background(), *swapReq, method)
	if err != nil {
		if errors.Is(err, swap.ErrPollingExhausted) {
			// The timeout message was already displayed.
			os.Exit(1)
		}
		printError(err)
		os.Exit(1)
	}

	printSuccess("Swap flow finished.")
}
