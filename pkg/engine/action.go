package engine

// ContractAction is the custom_json body for a sidechain contract call.
type ContractAction struct {
	ContractName    string        `json:"contractName"`
	ContractAction  string        `json:"contractAction"`
	ContractPayload ActionPayload `json:"contractPayload"`
}

// ActionPayload carries the market-order parameters. Quantity stays a string
// end to end to avoid floating-point serialization drift.
type ActionPayload struct {
	Symbol   string `json:"symbol"`
	Quantity string `json:"quantity"`
	Memo     string `json:"memo,omitempty"`
}

// MarketSell builds the leg-1 sell action. The memo ties the sell to its
// payout event so two close-together sells by the same account stay apart.
func MarketSell(symbol, quantity, memo string) ContractAction {
	return ContractAction{
		ContractName:   "market",
		ContractAction: "marketSell",
		ContractPayload: ActionPayload{
			Symbol:   symbol,
			Quantity: quantity,
			Memo:     memo,
		},
	}
}

// MarketBuy builds the leg-2 buy action.
func MarketBuy(symbol, quantity string) ContractAction {
	return ContractAction{
		ContractName:   "market",
		ContractAction: "marketBuy",
		ContractPayload: ActionPayload{
			Symbol:   symbol,
			Quantity: quantity,
		},
	}
}
