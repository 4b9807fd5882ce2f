package scanner

import (
	"strconv"
	"strings"
)

// Block is one settlement-layer block log entry.
type Block struct {
	BlockNumber  int64         `json:"blockNumber"`
	Transactions []Transaction `json:"transactions"`
}

// Transaction is a sidechain contract call recorded in the block log.
type Transaction struct {
	TransactionID      string   `json:"transactionId"`
	RefHiveBlockNumber BlockRef `json:"refHiveBlockNumber"`
	Sender             string   `json:"sender"`
	Contract           string   `json:"contract"`
	Action             string   `json:"action"`
	Payload            Payload  `json:"payload"`
	Logs               Logs     `json:"logs"`
}

// Payload is the contract payload of a recorded market order.
type Payload struct {
	Symbol   string `json:"symbol"`
	Quantity string `json:"quantity"`
	Memo     string `json:"memo"`
}

// Logs holds the events a transaction emitted.
type Logs struct {
	Events []Event `json:"events"`
}

// Event is one emitted contract event.
type Event struct {
	Contract string    `json:"contract"`
	Event    string    `json:"event"`
	Data     EventData `json:"data"`
}

// EventData is the payload of a token transfer event.
type EventData struct {
	To       string `json:"to"`
	Symbol   string `json:"symbol"`
	Quantity string `json:"quantity"`
}

// Trade is one row of the market trade history.
type Trade struct {
	Account        string `json:"account"`
	Symbol         string `json:"symbol"`
	PayoutSymbol   string `json:"payoutSymbol"`
	PayoutQuantity string `json:"payoutQuantity"`
}

// BlockRef is a Hive block number that some nodes serialize as a string.
// Values that do not parse decode to 0 and simply never match an anchor.
type BlockRef int64

// UnmarshalJSON accepts both quoted and bare numbers.
func (b *BlockRef) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*b = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		*b = 0
		return nil
	}
	*b = BlockRef(n)
	return nil
}
