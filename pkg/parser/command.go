package parser

import (
	"fmt"
	"regexp"
	"strings"

	"peake-swap/pkg/types"
)

// ParseSwapCommand parses a swap command
// Examples:
//   - "swap 100 BEE"
//   - "12.5 LEO"
func ParseSwapCommand(command string) (*types.SwapRequest, error) {
	// Normalize the command
	command = strings.TrimSpace(strings.ToUpper(command))

	// Remove the word "SWAP" if present at the beginning
	command = strings.TrimPrefix(command, "SWAP ")

	// Pattern: <amount> <symbol>
	pattern := regexp.MustCompile(`^(\d+\.?\d*)\s+([A-Z0-9.]+)$`)

	matches := pattern.FindStringSubmatch(command)
	if matches == nil {
		return nil, fmt.Errorf("invalid swap command format. Expected: 'swap <amount> <token>' (e.g., 'swap 100 BEE')")
	}

	return &types.SwapRequest{
		Quantity: matches[1],
		Symbol:   matches[2],
	}, nil
}

// NormalizeTokenSymbol normalizes token symbols to standard format
func NormalizeTokenSymbol(symbol string) string {
	return strings.TrimSpace(strings.ToUpper(symbol))
}
