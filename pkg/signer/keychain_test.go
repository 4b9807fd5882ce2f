package signer

import (
	"context"
	"encoding/json"
	"errors"
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

type fakeAgent struct {
	resp AgentResponse
	err  error

	account   string
	id        string
	authority string
	payload   string
}

func (f *fakeAgent) RequestCustomJSON(ctx context.Context, account, id, authority, payload, message string) (AgentResponse, error) {
	f.account = account
	f.id = id
	f.authority = authority
	f.payload = payload
	return f.resp, f.err
}

func TestKeychainSubmitAction(t *testing.T) {
	agent := &fakeAgent{}
	agent.resp.Success = true
	agent.resp.Result.TxID = "tx123"

	k := NewKeychain(agent, testLogger())
	outcome := k.SubmitAction(context.Background(), "alice", engine.MarketSell("BEE", "100", "AtomicSwap-1-abc"), "Sell 100 BEE")

	require.True(t, outcome.Accepted)
	assert.Equal(t, "tx123", outcome.TxID)

	assert.Equal(t, "alice", agent.account)
	assert.Equal(t, engine.CustomJSONID, agent.id)
	assert.Equal(t, "Active", agent.authority)

	var action engine.ContractAction
	require.NoError(t, json.Unmarshal([]byte(agent.payload), &action))
	assert.Equal(t, "marketSell", action.ContractAction)
	assert.Equal(t, "AtomicSwap-1-abc", action.ContractPayload.Memo)
}

func TestKeychainRejectsWithoutAgent(t *testing.T) {
	k := NewKeychain(nil, testLogger())

	outcome := k.SubmitAction(context.Background(), "alice", engine.MarketBuy("PEK", "1"), "Buy PEK")
	assert.False(t, outcome.Accepted)
	assert.Equal(t, "Hive Keychain extension not detected", outcome.Reason)
}

func TestKeychainReportsAgentFailure(t *testing.T) {
	agent := &fakeAgent{err: errors.New("connection refused")}
	k := NewKeychain(agent, testLogger())

	outcome := k.SubmitAction(context.Background(), "alice", engine.MarketBuy("PEK", "1"), "Buy PEK")
	assert.False(t, outcome.Accepted)
	assert.Contains(t, outcome.Reason, "unreachable")
}

func TestKeychainReportsUserRejection(t *testing.T) {
	agent := &fakeAgent{}
	agent.resp.Success = false
	agent.resp.Message = "user canceled"

	k := NewKeychain(agent, testLogger())

	outcome := k.SubmitAction(context.Background(), "alice", engine.MarketBuy("PEK", "1"), "Buy PEK")
	assert.False(t, outcome.Accepted)
	assert.Equal(t, "user canceled", outcome.Reason)
}

func TestHTTPAgentRequestCustomJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice", body["account"])
		assert.Equal(t, engine.CustomJSONID, body["id"])
		assert.Equal(t, "Active", body["key_type"])
		assert.NotEmpty(t, body["json"])

		w.Write([]byte(`{"success": true, "result": {"tx_id": "tx123"}}`))
	}))
	defer srv.Close()

	agent := NewHTTPAgent(srv.URL, nil)

	resp, err := agent.RequestCustomJSON(context.Background(), "alice", engine.CustomJSONID, "Active", `{"contractName":"market"}`, "Sell")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "tx123", resp.Result.TxID)
}

func TestHTTPAgentRejectsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	agent := NewHTTPAgent(srv.URL, nil)

	_, err := agent.RequestCustomJSON(context.Background(), "alice", engine.CustomJSONID, "Active", "{}", "Sell")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}
