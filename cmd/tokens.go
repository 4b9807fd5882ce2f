package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"peake-swap/config"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "List the tokens available for the sell leg",
	Args:  cobra.NoArgs,
	Run:   runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	fmt.Println("\n" + strings.Repeat("=", 40))
	color.Green("          SUPPORTED TOKENS")
	fmt.Println(strings.Repeat("=", 40) + "\n")

	for _, token := range cfg.Tokens {
		fmt.Printf("  %s\n", color.YellowString(token))
	}
	if cfg.ExternalSymbol != "" {
		fmt.Printf("  %s %s\n", color.YellowString(cfg.ExternalSymbol), color.HiBlackString("(external chain, separate flow)"))
	}

	fmt.Printf("\nTarget token: %s\n\n", color.YellowString(cfg.TargetSymbol))
}
