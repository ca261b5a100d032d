package order

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrAlreadyVoided     = errors.New("order already voided")
	ErrCampaignClosed    = errors.New("campaign is closed")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// LockedError rejects a submission while the client is in a lockout
// cooldown. Nothing past the guard runs: no validation, no repository
// access.
type LockedError struct {
	Remaining time.Duration
	Level     int
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("submission locked for %s (level %d)", e.Remaining, e.Level)
}

// ValidationError carries the invalid field names for inline indicators,
// plus the guard state the failure produced (the attempt may have been the
// one that locked).
type ValidationError struct {
	Fields    []string
	Locked    bool
	Remaining time.Duration
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid order fields: %v", e.Fields)
}

// StockError is a business-rule rejection: the cart wants more units than
// the campaign has left. Never counted toward the lockout.
type StockError struct {
	Requested int
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock: requested %d, available %d", e.Requested, e.Available)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }
