package scanner

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"

	"peake-swap/pkg/engine"
)

const (
	// blockWindow bounds the block-log scan: [anchor-50, anchor+50] when the
	// anchor height is known, else the 50 most recent blocks.
	blockWindow = 50
	// tradeLookback bounds the trade-history fallback.
	tradeLookback = 10
)

// Scanner detects the SWAP.HIVE payout produced by a marketSell on the
// settlement layer. The block log is the primary source; the per-account
// trade history is the fallback when the block log yields nothing or no
// anchor height is available.
type Scanner struct {
	gw  *engine.Gateway
	log logrus.FieldLogger
}

// New creates a scanner over the given gateway.
func New(gw *engine.Gateway, log logrus.FieldLogger) *Scanner {
	return &Scanner{gw: gw, log: log}
}

// FindPayout looks for the SWAP.HIVE credit produced by the account's
// marketSell of symbol. anchorHeight narrows the scan when the Hive block of
// the sell is known (0 means unknown); memo, when non-empty, must match the
// sell payload exactly. Returns 0 for "not observed yet", never an error.
func (s *Scanner) FindPayout(ctx context.Context, account, symbol string, anchorHeight int64, memo string) float64 {
	if payout := s.scanBlockLog(ctx, account, symbol, anchorHeight, memo); payout > 0 {
		return payout
	}
	return s.LastTradePayout(ctx, account, symbol)
}

func (s *Scanner) scanBlockLog(ctx context.Context, account, symbol string, anchorHeight int64, memo string) float64 {
	params := engine.Params{
		Contract: "blockLog",
		Table:    "blocks",
		Query:    map[string]interface{}{},
		Limit:    blockWindow,
		Indexes:  []engine.Index{{Index: "blockNumber", Descending: true}},
	}
	if anchorHeight > 0 {
		params.Query = map[string]interface{}{
			"refHiveBlockNumber": map[string]interface{}{
				"$gte": anchorHeight - blockWindow,
				"$lte": anchorHeight + blockWindow,
			},
		}
	}

	var blocks []Block
	if !s.gw.Find(ctx, params, &blocks) {
		return 0
	}

	// First match in API response order wins. With several concurrent
	// matching sells by the same account this can pick the wrong one; the
	// memo filter is the only real disambiguator.
	for _, block := range blocks {
		for _, tx := range block.Transactions {
			if anchorHeight > 0 && int64(tx.RefHiveBlockNumber) != anchorHeight {
				continue
			}
			if tx.Sender != account || tx.Contract != "market" || tx.Action != "marketSell" {
				continue
			}
			if tx.Payload.Symbol != symbol {
				continue
			}
			if memo != "" && tx.Payload.Memo != memo {
				continue
			}
			if payout, ok := creditedQuantity(tx, account); ok {
				s.log.WithFields(logrus.Fields{
					"txId":   tx.TransactionID,
					"payout": payout,
				}).Debug("payout found in block log")
				return payout
			}
		}
	}

	return 0
}

// creditedQuantity extracts the SWAP.HIVE amount a sell transaction credited
// back to the account.
func creditedQuantity(tx Transaction, account string) (float64, bool) {
	for _, event := range tx.Logs.Events {
		if event.Contract != "tokens" || event.Event != "transferFromContract" {
			continue
		}
		if event.Data.To != account || event.Data.Symbol != engine.SettlementSymbol {
			continue
		}
		quantity, err := strconv.ParseFloat(event.Data.Quantity, 64)
		if err != nil {
			continue
		}
		return quantity, true
	}
	return 0, false
}

// LastTradePayout returns the payout of the account's most recent SWAP.HIVE
// trade for the symbol, or 0 when none is visible. Used as the fallback when
// the block log has not indexed the sell yet, and as the only strategy on
// the redirect-signer path where no transaction id is available.
func (s *Scanner) LastTradePayout(ctx context.Context, account, symbol string) float64 {
	var trades []Trade
	ok := s.gw.Find(ctx, engine.Params{
		Contract: "market",
		Table:    "trades",
		Query: map[string]interface{}{
			"account": account,
			"symbol":  symbol,
			"market":  engine.SettlementSymbol,
		},
		Limit:   tradeLookback,
		Indexes: []engine.Index{{Index: "timestamp", Descending: true}},
	}, &trades)
	if !ok {
		return 0
	}

	for _, trade := range trades {
		if trade.Account != account || trade.Symbol != symbol || trade.PayoutSymbol != engine.SettlementSymbol {
			continue
		}
		payout, err := strconv.ParseFloat(trade.PayoutQuantity, 64)
		if err != nil {
			continue
		}
		return payout
	}

	return 0
}
