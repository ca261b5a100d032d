package draft

import "strings"

// PhoneLength is the exact number of digits a customer phone carries.
const PhoneLength = 9

// FieldErrors maps a field name to its invalid flag, matching the inline
// indicators the storefront renders per field.
type FieldErrors map[string]bool

func (e FieldErrors) Any() bool { return len(e) > 0 }

// Fields returns the invalid field names, for error payloads.
func (e FieldErrors) Fields() []string {
	out := make([]string, 0, len(e))
	for f := range e {
		out = append(out, f)
	}
	return out
}

// Validate applies the submission rules: names non-empty, phone exactly 9
// numeric digits starting with 9 without a run of 5+ identical digits,
// receipt uploaded, terms accepted, at least one unit in the cart, sane
// quantities, and an address when the mode is delivery. The result feeds
// the submission guard; every flagged field is a user-input mistake.
func Validate(d *Draft) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(d.FirstName) == "" {
		errs["first_name"] = true
	}
	if strings.TrimSpace(d.LastName) == "" {
		errs["last_name"] = true
	}
	if !validPhone(d.Phone) {
		errs["phone"] = true
	}
	if d.ReceiptURL == "" {
		errs["receipt_url"] = true
	}
	if !d.TermsAccepted {
		errs["terms_accepted"] = true
	}
	if d.TotalQuantity() == 0 {
		errs["total"] = true
	}
	for _, l := range d.Lines {
		if l.Quantity < 0 {
			errs["lines"] = true
			break
		}
	}
	if d.DeliveryMode == ModeDelivery {
		if d.Address == nil || strings.TrimSpace(d.Address.Street) == "" ||
			strings.TrimSpace(d.Address.District) == "" {
			errs["address"] = true
		}
	}

	return errs
}

func validPhone(phone string) bool {
	if len(phone) != PhoneLength {
		return false
	}
	if phone[0] != '9' {
		return false
	}
	for i := 0; i < len(phone); i++ {
		if phone[i] < '0' || phone[i] > '9' {
			return false
		}
	}
	return !hasLongRun(phone, 5)
}

// hasLongRun reports whether s contains n or more identical consecutive
// characters (the "999999999 is not a phone" rule).
func hasLongRun(s string, n int) bool {
	run := 1
	for i := 1; i < len(s); i++ {
		if s[i] == s[i-1] {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}
