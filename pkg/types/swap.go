package types

import (
	"fmt"
	"strconv"
)

// SwapRequest describes one two-leg swap: sell Quantity of Symbol for
// SWAP.HIVE, then buy the configured target token with the proceeds.
type SwapRequest struct {
	Account  string
	Symbol   string
	Quantity string
}

// Validate checks that the request has everything needed to submit leg 1.
func (r *SwapRequest) Validate() error {
	if r.Account == "" {
		return fmt.Errorf("account is required")
	}
	if r.Symbol == "" {
		return fmt.Errorf("token symbol is required")
	}
	if r.Quantity == "" {
		return fmt.Errorf("quantity is required")
	}
	quantity, err := strconv.ParseFloat(r.Quantity, 64)
	if err != nil {
		return fmt.Errorf("invalid quantity format: %w", err)
	}
	if quantity <= 0 {
		return fmt.Errorf("quantity must be greater than 0")
	}
	return nil
}
