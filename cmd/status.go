package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"peake-swap/config"
	"peake-swap/pkg/engine"
	"peake-swap/pkg/swap"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the pending swap and the account's SWAP.HIVE balance",
	Args:  cobra.NoArgs,
	Run:   runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	store, err := swap.NewFileStore(cfg.StorePath)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	record, err := store.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if record == nil {
		printSuccess("No pending swap.")
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                     PENDING SWAP")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\n  Account:   %s\n", color.CyanString(record.Account))
	fmt.Printf("  Selling:   %s %s\n", record.Quantity, color.YellowString(record.Symbol))
	fmt.Printf("  Status:    %s\n", coloredStatus(record.Status))
	fmt.Printf("  Step:      %s\n", record.Step)
	fmt.Printf("  Memo:      %s\n", color.HiBlackString(record.Memo))
	if record.TxID != "" {
		fmt.Printf("  Tx:        %s\n", color.HiBlackString(record.TxID))
	}
	fmt.Printf("  Method:    %s\n", record.Method)
	fmt.Printf("  Created:   %s\n", time.UnixMilli(record.Timestamp).Format("2006-01-02 15:04:05"))

	// Best-effort balance lookup for context
	log := newLogger(verbose)
	gw := newGateway(cfg, log)

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Fetching SWAP.HIVE balance..."
	s.Start()
	balance := gw.TokenBalance(context.Background(), record.Account, engine.SettlementSymbol)
	s.Stop()

	fmt.Printf("  Balance:   %.8f %s\n", balance, engine.SettlementSymbol)

	fmt.Println("\n" + strings.Repeat("=", 60) + "\n")

	if record.Status == swap.StatusPending {
		fmt.Println("Resume this swap with:")
		color.Cyan("  peake-swap resume\n")
	}
}

func coloredStatus(status swap.Status) string {
	switch status {
	case swap.StatusComplete:
		return color.GreenString(string(status))
	case swap.StatusPending:
		return color.YellowString(string(status))
	case swap.StatusTimeout, swap.StatusFailed:
		return color.RedString(string(status))
	default:
		return string(status)
	}
}
