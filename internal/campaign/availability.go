package campaign

import "time"

// IsClosed reports whether ordering is disallowed for the campaign as of
// now. An absent campaign is closed. An explicit Active == false is an
// administrative override and wins over dates and stock. The stock
// comparison is >=: a campaign at exactly its cap is closed, there is no
// overselling tolerance.
func IsClosed(c *Campaign, now time.Time) bool {
	if c == nil {
		return true
	}
	if !c.Active {
		return true
	}
	if now.After(c.ClosesAt) {
		return true
	}
	return c.StockSold >= c.StockCap
}

// Remaining returns the number of units still sellable, floored at zero.
func Remaining(c *Campaign) int {
	if c == nil {
		return 0
	}
	if left := c.StockCap - c.StockSold; left > 0 {
		return left
	}
	return 0
}

// Snap derives a Snapshot from a campaign as of now. The result is a
// one-shot value: callers wanting fresher availability fetch again rather
// than re-deriving from a stale record.
func Snap(c *Campaign, now time.Time) Snapshot {
	return Snapshot{
		Campaign:  c,
		IsClosed:  IsClosed(c, now),
		Remaining: Remaining(c),
	}
}
