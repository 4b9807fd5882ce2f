package swap

import (
	"github.com/shopspring/decimal"
)

// PayoutEpsilon is the tolerance when comparing repeated observations of the
// same payout. A new observation must exceed the previous one by strictly
// more than this to count as the leg-1 payout landing.
const PayoutEpsilon = 1e-7

// MultiTxFee is the flat SWAP.HIVE amount reserved to cover the buy leg's
// transaction cost.
const MultiTxFee = "0.001"

// PollDecision is the outcome of one payout poll.
type PollDecision int

const (
	// Reschedule means nothing new was observed and the budget allows
	// another attempt.
	Reschedule PollDecision = iota
	// Confirm means a payout increase beyond the epsilon was observed.
	Confirm
	// Timeout means the attempt budget is exhausted with no payout.
	Timeout
)

// NextAction decides how a polling loop proceeds after one observation.
// attempt is zero-based; the budget is exhausted once maxAttempts
// observations have produced no confirmation.
func NextAction(attempt, maxAttempts int, lastObserved, observed float64) PollDecision {
	if observed > lastObserved+PayoutEpsilon {
		return Confirm
	}
	if attempt+1 >= maxAttempts {
		return Timeout
	}
	return Reschedule
}

// ComputeBuyAmount returns the leg-2 quantity after deducting the flat fee,
// formatted exactly. ok is false when nothing would remain to spend.
func ComputeBuyAmount(payout float64) (string, bool) {
	fee, err := decimal.NewFromString(MultiTxFee)
	if err != nil {
		return "", false
	}

	amount := decimal.NewFromFloat(payout).Sub(fee)
	if amount.Sign() <= 0 {
		return "", false
	}

	return amount.String(), true
}
