package signer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"peake-swap/pkg/engine"
)

// Agent is the locally installed keychain signing capability. The production
// implementation talks to the keychain companion service; tests substitute
// fakes.
type Agent interface {
	RequestCustomJSON(ctx context.Context, account, id, authority, payload, message string) (AgentResponse, error)
}

// AgentResponse mirrors the keychain broadcast response.
type AgentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Result  struct {
		TxID string `json:"tx_id"`
	} `json:"result"`
}

// Keychain signs through the local keychain agent. The agent broadcasts
// synchronously and returns the transaction id of the accepted sell or buy.
type Keychain struct {
	agent Agent
	log   logrus.FieldLogger
}

// NewKeychain creates a keychain backend. A nil agent means the extension is
// not installed; every submission is then rejected with a clear message.
func NewKeychain(agent Agent, log logrus.FieldLogger) *Keychain {
	return &Keychain{agent: agent, log: log}
}

// Name implements Signer.
func (k *Keychain) Name() string { return "Keychain" }

// SubmitAction implements Signer.
func (k *Keychain) SubmitAction(ctx context.Context, account string, action engine.ContractAction, description string) Outcome {
	if k.agent == nil {
		return Rejected("Hive Keychain extension not detected")
	}

	payload, err := json.Marshal(action)
	if err != nil {
		return Rejected(fmt.Sprintf("failed to encode action: %v", err))
	}

	k.log.WithField("description", description).Debug("requesting keychain signature")
	resp, err := k.agent.RequestCustomJSON(ctx, account, engine.CustomJSONID, authorityActive, string(payload), description)
	if err != nil {
		return Rejected(fmt.Sprintf("keychain agent unreachable: %v", err))
	}

	if !resp.Success {
		reason := resp.Message
		if reason == "" {
			reason = "unknown error"
		}
		return Rejected(reason)
	}

	return Accepted(resp.Result.TxID)
}

// HTTPAgent forwards signing requests to the keychain companion service
// listening on localhost.
type HTTPAgent struct {
	url    string
	client *http.Client
}

// NewHTTPAgent creates an agent against the companion service URL.
func NewHTTPAgent(url string, client *http.Client) *HTTPAgent {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPAgent{url: url, client: client}
}

// RequestCustomJSON implements Agent.
func (a *HTTPAgent) RequestCustomJSON(ctx context.Context, account, id, authority, payload, message string) (AgentResponse, error) {
	body, err := json.Marshal(map[string]string{
		"account":     account,
		"id":          id,
		"key_type":    authority,
		"json":        payload,
		"display_msg": message,
	})
	if err != nil {
		return AgentResponse{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader(body))
	if err != nil {
		return AgentResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return AgentResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return AgentResponse{}, fmt.Errorf("keychain agent returned status %d", resp.StatusCode)
	}

	var out AgentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return AgentResponse{}, fmt.Errorf("failed to decode keychain response: %w", err)
	}

	return out, nil
}
