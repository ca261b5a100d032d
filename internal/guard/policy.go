package guard

import "time"

// FailureKind classifies why a submission attempt was rejected. Which kinds
// count toward the lockout is policy, not behavior baked into the machine:
// user-input mistakes escalate, business-rule and backend rejections do not.
type FailureKind int

const (
	// FailureValidation is a client-input mistake (missing field, empty
	// cart, unaccepted terms).
	FailureValidation FailureKind = iota
	// FailureStock is a business-rule rejection: cart exceeds remaining stock.
	FailureStock
	// FailureCampaignClosed is an attempt against a closed campaign.
	FailureCampaignClosed
	// FailureBackend is a network/server error during submission.
	FailureBackend
)

type Policy struct {
	// Threshold is the number of consecutive counted failures that
	// triggers a lockout (the Threshold-th failure locks).
	Threshold int
	// Durations escalate by lock level; the last entry caps the ladder.
	Durations []time.Duration
	// Staleness is how long after a lock expires the escalation level is
	// still remembered. Past it, an abandoned session starts over at level 0.
	Staleness time.Duration
	// Counts decides whether a failure kind participates in the lockout.
	Counts func(FailureKind) bool
}

// DefaultPolicy mirrors the storefront's production settings: lock on the
// 4th consecutive invalid submission, 30s/60s/120s escalation, 10 minute
// staleness window, and only validation failures counted.
func DefaultPolicy() Policy {
	return Policy{
		Threshold: 4,
		Durations: []time.Duration{30 * time.Second, 60 * time.Second, 120 * time.Second},
		Staleness: 10 * time.Minute,
		Counts:    func(k FailureKind) bool { return k == FailureValidation },
	}
}

// durationFor returns the cooldown for the given lock level (1-based).
// Levels beyond the ladder stay at the cap; the escalation is monotonic
// non-decreasing.
func (p Policy) durationFor(level int) time.Duration {
	if len(p.Durations) == 0 {
		return 0
	}
	idx := level - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(p.Durations) {
		idx = len(p.Durations) - 1
	}
	return p.Durations[idx]
}

func (p Policy) counts(kind FailureKind) bool {
	if p.Counts == nil {
		return kind == FailureValidation
	}
	return p.Counts(kind)
}
