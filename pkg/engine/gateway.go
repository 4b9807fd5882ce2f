package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// SettlementSymbol is the intermediate asset both legs settle through.
const SettlementSymbol = "SWAP.HIVE"

// CustomJSONID is the custom_json id the sidechain listens on.
const CustomJSONID = "ssc-mainnet-hive"

// Request is a Hive Engine contracts-API JSON-RPC request.
type Request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  Params `json:"params"`
}

// Params selects rows from a sidechain contract table.
type Params struct {
	Contract string                 `json:"contract"`
	Table    string                 `json:"table"`
	Query    map[string]interface{} `json:"query"`
	Limit    int                    `json:"limit,omitempty"`
	Indexes  []Index                `json:"indexes,omitempty"`
}

// Index orders a find query by a table index.
type Index struct {
	Index      string `json:"index"`
	Descending bool   `json:"descending"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
}

// Gateway issues best-effort queries against an ordered list of Hive Engine
// endpoints, falling back to the same list behind a CORS relay prefix. It
// never returns an error: transport and decode failures mean "try the next
// endpoint", and exhaustion yields a nil result. Callers own their retry
// loops and must not assume bounded latency beyond the client's defaults.
type Gateway struct {
	endpoints []string
	corsProxy string
	client    *http.Client
	log       logrus.FieldLogger
}

// NewGateway creates a gateway over the given endpoints. A nil client falls
// back to http.DefaultClient.
func NewGateway(endpoints []string, corsProxy string, client *http.Client, log logrus.FieldLogger) *Gateway {
	if client == nil {
		client = http.DefaultClient
	}
	return &Gateway{
		endpoints: endpoints,
		corsProxy: corsProxy,
		client:    client,
		log:       log,
	}
}

// Query posts the request to each endpoint in order, then to each proxied
// variant, and returns the raw result of the first success. Nil means every
// endpoint failed.
func (g *Gateway) Query(ctx context.Context, req Request) json.RawMessage {
	body, err := json.Marshal(req)
	if err != nil {
		return nil
	}

	for _, endpoint := range g.endpoints {
		if result := g.post(ctx, endpoint, body); result != nil {
			return result
		}
	}
	for _, endpoint := range g.endpoints {
		if result := g.post(ctx, g.corsProxy+endpoint, body); result != nil {
			return result
		}
	}

	return nil
}

// Find runs a multi-row query and decodes the result array into out.
func (g *Gateway) Find(ctx context.Context, params Params, out interface{}) bool {
	result := g.Query(ctx, Request{JSONRPC: "2.0", ID: 1, Method: "find", Params: params})
	if result == nil {
		return false
	}
	return json.Unmarshal(result, out) == nil
}

// FindOne runs a single-row query and decodes the result object into out.
func (g *Gateway) FindOne(ctx context.Context, params Params, out interface{}) bool {
	result := g.Query(ctx, Request{JSONRPC: "2.0", ID: 1, Method: "findOne", Params: params})
	if result == nil {
		return false
	}
	return json.Unmarshal(result, out) == nil
}

func (g *Gateway) post(ctx context.Context, url string, body []byte) json.RawMessage {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		g.log.WithError(err).Debugf("engine endpoint %s unreachable", url)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		g.log.Debugf("engine endpoint %s returned status %d", url, resp.StatusCode)
		return nil
	}

	var out rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		g.log.WithError(err).Debugf("engine endpoint %s returned malformed response", url)
		return nil
	}
	if len(out.Result) == 0 || string(out.Result) == "null" {
		return nil
	}

	return out.Result
}
