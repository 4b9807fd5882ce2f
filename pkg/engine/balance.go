package engine

import (
	"context"
	"strconv"
)

// TokenBalance returns the account's balance for a token, or 0 when the
// lookup fails or no balance row exists. Display-only helper.
func (g *Gateway) TokenBalance(ctx context.Context, account, symbol string) float64 {
	var row struct {
		Balance string `json:"balance"`
	}

	ok := g.FindOne(ctx, Params{
		Contract: "tokens",
		Table:    "balances",
		Query:    map[string]interface{}{"account": account, "symbol": symbol},
	}, &row)
	if !ok {
		return 0
	}

	balance, err := strconv.ParseFloat(row.Balance, 64)
	if err != nil {
		return 0
	}
	return balance
}
