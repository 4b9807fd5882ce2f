package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"peake-swap/config"
	"peake-swap/pkg/parser"
	"peake-swap/pkg/rate"
)

var rateAmount string

var rateCmd = &cobra.Command{
	Use:   "rate <token>",
	Short: "Estimate the current SWAP.HIVE rate for a token",
	Long: `Fetch a best-effort spot rate for a token against SWAP.HIVE from the
market buy book (falling back to the last traded price). The final swap rate
is determined by the market at the time of each transaction.

Examples:
  peake-swap rate BEE
  peake-swap rate LEO --amount 12.5`,
	Args: cobra.ExactArgs(1),
	Run:  runRate,
}

func init() {
	rootCmd.AddCommand(rateCmd)

	rateCmd.Flags().StringVar(&rateAmount, "amount", "", "Amount to estimate proceeds for (optional)")
}

func runRate(cmd *cobra.Command, args []string) {
	symbol := parser.NormalizeTokenSymbol(args[0])
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	log := newLogger(verbose)
	estimator := rate.New(newGateway(cfg, log), log)

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Fetching rate..."
	s.Start()
	price, ok := estimator.Estimate(context.Background(), symbol)
	s.Stop()

	if !ok {
		printError(fmt.Errorf("unable to fetch a live SWAP.HIVE rate for %s", symbol))
		os.Exit(1)
	}

	fmt.Printf("\n  1 %s ~ %.8f SWAP.HIVE\n", color.YellowString(symbol), price)

	if rateAmount != "" {
		amount, err := strconv.ParseFloat(rateAmount, 64)
		if err != nil || amount <= 0 {
			printError(fmt.Errorf("invalid amount: %s", rateAmount))
			os.Exit(1)
		}
		fmt.Printf("  %s %s ~ %.6f SWAP.HIVE before fees\n", rateAmount, symbol, amount*price)
	}

	fmt.Println()
}
