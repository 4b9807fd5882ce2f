package signer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"github.com/sirupsen/logrus"

	"peake-swap/pkg/engine"
)

// DefaultSignURL is the Hivesigner transaction signing page.
const DefaultSignURL = "https://hivesigner.com/sign/tx"

// Hivesigner builds a signing deep link and opens it in the user's browser.
// There is no callback: acceptance is optimistic and the signature happens
// out of band, so callers must offer a manual resume path for leg 2.
type Hivesigner struct {
	signURL string
	open    func(link string) error
	log     logrus.FieldLogger
}

// NewHivesigner creates a hivesigner backend. A nil opener launches the
// system browser.
func NewHivesigner(signURL string, open func(string) error, log logrus.FieldLogger) *Hivesigner {
	if signURL == "" {
		signURL = DefaultSignURL
	}
	if open == nil {
		open = openBrowser
	}
	return &Hivesigner{signURL: signURL, open: open, log: log}
}

// Name implements Signer.
func (h *Hivesigner) Name() string { return "Hivesigner" }

// SubmitAction implements Signer. A successfully opened link counts as
// accepted; no transaction id is ever available on this path.
func (h *Hivesigner) SubmitAction(ctx context.Context, account string, action engine.ContractAction, description string) Outcome {
	link, err := h.SignLink(account, action, authorityActive)
	if err != nil {
		return Rejected(fmt.Sprintf("failed to build signing link: %v", err))
	}

	h.log.WithField("description", description).Debug("opening hivesigner link")
	if err := h.open(link); err != nil {
		return Rejected(fmt.Sprintf("failed to open signing link: %v", err))
	}

	return Accepted("")
}

// SignLink encodes the custom_json operation into a Hivesigner signing URL.
func (h *Hivesigner) SignLink(account string, action engine.ContractAction, authority string) (string, error) {
	payload, err := json.Marshal(action)
	if err != nil {
		return "", fmt.Errorf("failed to encode action: %w", err)
	}

	op := []interface{}{
		"custom_json",
		map[string]interface{}{
			"required_auths":         []string{account},
			"required_posting_auths": []string{},
			"id":                     engine.CustomJSONID,
			"json":                   string(payload),
		},
	}
	ops, err := json.Marshal([]interface{}{op})
	if err != nil {
		return "", fmt.Errorf("failed to encode operations: %w", err)
	}

	return fmt.Sprintf("%s?operations=%s&authority=%s", h.signURL, url.QueryEscape(string(ops)), authority), nil
}

func openBrowser(link string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", link).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", link).Start()
	default:
		return exec.Command("xdg-open", link).Start()
	}
}
