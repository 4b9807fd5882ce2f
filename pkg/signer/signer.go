package signer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"peake-swap/pkg/engine"
)

const authorityActive = "Active"

// Outcome reports whether a backend accepted an action for broadcast.
// Acceptance is backend-level, not chain confirmation. TxID is set only when
// the backend returns a broadcast receipt.
type Outcome struct {
	Accepted bool
	TxID     string
	Reason   string
}

// Accepted builds a positive outcome.
func Accepted(txID string) Outcome {
	return Outcome{Accepted: true, TxID: txID}
}

// Rejected builds a negative outcome with a user-facing reason.
func Rejected(reason string) Outcome {
	return Outcome{Reason: reason}
}

// Signer submits a contract action to the settlement layer on behalf of an
// account.
type Signer interface {
	Name() string
	SubmitAction(ctx context.Context, account string, action engine.ContractAction, description string) Outcome
}

// Manager selects a signing backend by method name.
type Manager struct {
	backends map[string]Signer
}

// NewManager registers the given backends, keyed by lowercased name.
func NewManager(backends ...Signer) *Manager {
	m := &Manager{backends: make(map[string]Signer)}
	for _, backend := range backends {
		m.backends[strings.ToLower(backend.Name())] = backend
	}
	return m
}

// Get returns the backend for a method name.
func (m *Manager) Get(method string) (Signer, error) {
	backend, exists := m.backends[strings.ToLower(method)]
	if !exists {
		return nil, fmt.Errorf("signing method '%s' is not supported", method)
	}
	return backend, nil
}

// SupportedMethods returns the registered method names, sorted.
func (m *Manager) SupportedMethods() []string {
	methods := make([]string, 0, len(m.backends))
	for name := range m.backends {
		methods = append(methods, name)
	}
	sort.Strings(methods)
	return methods
}
