package engine

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
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestQueryReturnsFirstSuccess(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "2.0", req.JSONRPC)
		assert.Equal(t, "find", req.Method)
		assert.Equal(t, "market", req.Params.Contract)
		w.Write([]byte(`{"result": [{"price": "0.5"}]}`))
	}))
	defer srv.Close()

	gw := NewGateway([]string{srv.URL}, "http://127.0.0.1:1/?", nil, testLogger())

	var rows []struct {
		Price string `json:"price"`
	}
	ok := gw.Find(context.Background(), Params{Contract: "market", Table: "buyBook"}, &rows)

	require.True(t, ok)
	require.Len(t, rows, 1)
	assert.Equal(t, "0.5", rows[0].Price)
	assert.Equal(t, 1, hits)
}

func TestQueryFallsBackToProxyInOrder(t *testing.T) {
	primaryHits := 0
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		primaryHits++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer primary.Close()

	secondaryHits := 0
	secondary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secondaryHits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer secondary.Close()

	proxyHits := 0
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		proxyHits++
		w.Write([]byte(`{"result": {"balance": "1.0"}}`))
	}))
	defer proxy.Close()

	gw := NewGateway([]string{primary.URL, secondary.URL}, proxy.URL+"/?u=", nil, testLogger())

	result := gw.Query(context.Background(), Request{JSONRPC: "2.0", ID: 1, Method: "findOne", Params: Params{}})

	require.NotNil(t, result)
	assert.JSONEq(t, `{"balance": "1.0"}`, string(result))
	// Both primaries are tried first, then the proxied variant of the first
	// endpoint succeeds and no further proxied variant is attempted.
	assert.Equal(t, 1, primaryHits)
	assert.Equal(t, 1, secondaryHits)
	assert.Equal(t, 1, proxyHits)
}

func TestQueryReturnsNilWhenEverythingFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	gw := NewGateway([]string{srv.URL}, srv.URL+"/?u=", nil, testLogger())

	result := gw.Query(context.Background(), Request{JSONRPC: "2.0", ID: 1, Method: "find"})
	assert.Nil(t, result)
}

func TestQueryTreatsNullResultAsMiss(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": null}`))
	}))
	defer srv.Close()

	gw := NewGateway([]string{srv.URL}, "http://127.0.0.1:1/?", nil, testLogger())

	var out map[string]interface{}
	assert.False(t, gw.FindOne(context.Background(), Params{Contract: "tokens", Table: "balances"}, &out))
}

func TestTokenBalance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "findOne", req.Method)
		assert.Equal(t, "tokens", req.Params.Contract)
		assert.Equal(t, "balances", req.Params.Table)
		assert.Equal(t, "alice", req.Params.Query["account"])
		w.Write([]byte(`{"result": {"balance": "3.14159265"}}`))
	}))
	defer srv.Close()

	gw := NewGateway([]string{srv.URL}, "http://127.0.0.1:1/?", nil, testLogger())

	balance := gw.TokenBalance(context.Background(), "alice", SettlementSymbol)
	assert.InDelta(t, 3.14159265, balance, 1e-9)
}

func TestTokenBalanceUnavailable(t *testing.T) {
	gw := NewGateway([]string{"http://127.0.0.1:1"}, "http://127.0.0.1:1/?", nil, testLogger())

	assert.Zero(t, gw.TokenBalance(context.Background(), "alice", SettlementSymbol))
}
