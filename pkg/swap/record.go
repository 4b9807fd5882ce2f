package swap

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status of the single persisted swap slot. Transitions are forward-only:
// pending moves to exactly one of the terminal states.
type Status string

const (
	StatusPending  Status = "pending"
	StatusComplete Status = "complete"
	StatusTimeout  Status = "timeout"
	StatusFailed   Status = "failed"
)

// Step marks which leg is in flight. It matters on the hivesigner path,
// where the two legs are separate user-initiated redirects.
type Step string

const (
	StepSell Step = "sell"
	StepBuy  Step = "buy"
	StepDone Step = "done"
)

// Method identifies the signing backend that created the record, so a resume
// after restart can re-sign leg 2 the same way.
type Method string

const (
	MethodKeychain   Method = "keychain"
	MethodHivesigner Method = "hivesigner"
)

// PendingSwap is the durable record for the one in-flight swap. At most one
// exists at a time; creating a new one supersedes any prior record. It is
// the sole source of truth for resuming after a restart.
type PendingSwap struct {
	Memo      string `json:"memo"`
	Symbol    string `json:"symbol"`
	Quantity  string `json:"quantity"`
	Account   string `json:"account"`
	Timestamp int64  `json:"timestamp"`
	Status    Status `json:"status"`
	TxID      string `json:"txId,omitempty"`
	Method    Method `json:"method,omitempty"`
	Step      Step   `json:"step,omitempty"`
}

const memoPrefix = "AtomicSwap"

// NewPendingSwap creates a pending record with a fresh correlation memo.
func NewPendingSwap(account, symbol, quantity string, method Method) *PendingSwap {
	return &PendingSwap{
		Memo:      NewMemo(),
		Symbol:    symbol,
		Quantity:  quantity,
		Account:   account,
		Timestamp: time.Now().UnixMilli(),
		Status:    StatusPending,
		Method:    method,
		Step:      StepSell,
	}
}

// NewMemo returns a correlation memo of the form AtomicSwap-<unix-ms>-<random>.
// The memo is embedded in the sell payload and must stay immutable for the
// life of the swap; all payout matching keys on it.
func NewMemo() string {
	return fmt.Sprintf("%s-%d-%s", memoPrefix, time.Now().UnixMilli(), uuid.NewString())
}
