package rate

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"

	"peake-swap/pkg/engine"
)

// Estimator fetches a display-only spot rate for a token against SWAP.HIVE.
// It is best-effort and never part of the transactional path; the final swap
// rate is whatever the market gives at execution time.
type Estimator struct {
	gw  *engine.Gateway
	log logrus.FieldLogger
}

// New creates an estimator over the given gateway.
func New(gw *engine.Gateway, log logrus.FieldLogger) *Estimator {
	return &Estimator{gw: gw, log: log}
}

// Estimate returns the best ask from the market buy book, falling back to
// the last traded price from market metrics. ok is false when neither source
// yields a usable price.
func (e *Estimator) Estimate(ctx context.Context, symbol string) (float64, bool) {
	var book []struct {
		Price string `json:"price"`
	}
	found := e.gw.Find(ctx, engine.Params{
		Contract: "market",
		Table:    "buyBook",
		Query:    map[string]interface{}{"symbol": symbol, "baseSymbol": engine.SettlementSymbol},
		Limit:    1,
		Indexes:  []engine.Index{{Index: "price", Descending: true}},
	}, &book)
	if found && len(book) > 0 {
		if price, err := strconv.ParseFloat(book[0].Price, 64); err == nil && price > 0 {
			return price, true
		}
	}

	var metrics struct {
		LastPrice string `json:"lastPrice"`
	}
	if e.gw.FindOne(ctx, engine.Params{
		Contract: "market",
		Table:    "metrics",
		Query:    map[string]interface{}{"symbol": symbol},
	}, &metrics) {
		if price, err := strconv.ParseFloat(metrics.LastPrice, 64); err == nil && price > 0 {
			return price, true
		}
	}

	e.log.WithField("symbol", symbol).Debug("no usable rate from buy book or metrics")
	return 0, false
}
