package rate

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peake-swap/pkg/engine"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestEstimator(t *testing.T, handler func(params engine.Params) interface{}) (*Estimator, func()) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req engine.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		result := handler(req.Params)
		if result == nil {
			w.Write([]byte(`{"result": null}`))
			return
		}
		require.NoError(t, json.NewEncoder(w).Encode(map[string]interface{}{"result": result}))
	}))

	gw := engine.NewGateway([]string{srv.URL}, "http://127.0.0.1:1/?", nil, testLogger())
	return New(gw, testLogger()), srv.Close
}

func TestEstimateUsesBestAsk(t *testing.T) {
	e, closeSrv := newTestEstimator(t, func(params engine.Params) interface{} {
		if params.Table == "buyBook" {
			assert.Equal(t, "BEE", params.Query["symbol"])
			assert.Equal(t, "SWAP.HIVE", params.Query["baseSymbol"])
			return []map[string]interface{}{{"price": "0.45"}}
		}
		return nil
	})
	defer closeSrv()

	price, ok := e.Estimate(context.Background(), "BEE")
	require.True(t, ok)
	assert.InDelta(t, 0.45, price, 1e-9)
}

func TestEstimateFallsBackToLastPrice(t *testing.T) {
	e, closeSrv := newTestEstimator(t, func(params engine.Params) interface{} {
		switch params.Table {
		case "buyBook":
			return []map[string]interface{}{}
		case "metrics":
			return map[string]interface{}{"lastPrice": "0.4"}
		}
		return nil
	})
	defer closeSrv()

	price, ok := e.Estimate(context.Background(), "BEE")
	require.True(t, ok)
	assert.InDelta(t, 0.4, price, 1e-9)
}

func TestEstimateWithNoMarketData(t *testing.T) {
	e, closeSrv := newTestEstimator(t, func(params engine.Params) interface{} {
		return nil
	})
	defer closeSrv()

	_, ok := e.Estimate(context.Background(), "BEE")
	assert.False(t, ok)
}

func TestEstimateIgnoresUnparseablePrices(t *testing.T) {
	e, closeSrv := newTestEstimator(t, func(params engine.Params) interface{} {
		switch params.Table {
		case "buyBook":
			return []map[string]interface{}{{"price": "n/a"}}
		case "metrics":
			return map[string]interface{}{"lastPrice": "0.33"}
		}
		return nil
	})
	defer closeSrv()

	price, ok := e.Estimate(context.Background(), "BEE")
	require.True(t, ok)
	assert.InDelta(t, 0.33, price, 1e-9)
}
