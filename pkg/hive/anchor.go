package hive

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Resolver maps a Hive transaction id to the block height that included it.
// Sidechain transactions are indexed by the Hive block they reference, not by
// the transaction id itself, so this resolution is the prerequisite for a
// precise payout scan.
type Resolver struct {
	url         string
	client      *http.Client
	maxAttempts int
	delay       time.Duration
	log         logrus.FieldLogger
}

// NewResolver creates a resolver against the given Hive JSON-RPC node.
func NewResolver(url string, client *http.Client, maxAttempts int, delay time.Duration, log logrus.FieldLogger) *Resolver {
	if client == nil {
		client = http.DefaultClient
	}
	return &Resolver{
		url:         url,
		client:      client,
		maxAttempts: maxAttempts,
		delay:       delay,
		log:         log,
	}
}

// ResolveBlockHeight polls condenser_api.get_transaction until the node
// reports a block_num. A freshly broadcast transaction is not immediately
// queryable, and the node answers "not found yet" and transport failure with
// the same absent-field shape, so every miss waits and retries until the
// attempt budget runs out.
func (r *Resolver) ResolveBlockHeight(ctx context.Context, txID string) (int64, bool) {
	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return 0, false
			case <-time.After(r.delay):
			}
		}

		if height, ok := r.lookup(ctx, txID); ok {
			r.log.WithFields(logrus.Fields{"txId": txID, "height": height}).Debug("resolved hive block height")
			return height, true
		}
	}

	r.log.WithField("txId", txID).Debug("hive block height not resolvable, giving up")
	return 0, false
}

func (r *Resolver) lookup(ctx context.Context, txID string) (int64, bool) {
	body, err := json.Marshal(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "condenser_api.get_transaction",
		"params":  []string{txID},
	})
	if err != nil {
		return 0, false
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return 0, false
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return 0, false
	}
	defer resp.Body.Close()

	var out struct {
		Result struct {
			BlockNum int64 `json:"block_num"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, false
	}
	if out.Result.BlockNum == 0 {
		return 0, false
	}

	return out.Result.BlockNum, true
}
