package journal

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/id"
	"github.com/cleared-dev/tally/internal/model"
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Invariant int
	EntryID   string
	Message   string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.EntryID, e.Message)
}

// ValidateEntries enforces the register invariants on one month's entries.
func ValidateEntries(entries []model.Entry, year, month int) []ValidationError {
	var errs []ValidationError
	prefix := fmt.Sprintf("%04d-%02d", year, month)
	cents := decimal.NewFromInt(100)

	for _, e := range entries {
		// Invariant 1: zero amounts are never stored.
		if e.Amount.IsZero() {
			errs = append(errs, ValidationError{
				Invariant: 1,
				EntryID:   e.ID,
				Message:   "amount is zero",
			})
		}

		// Invariant 2: kind is income or expense.
		if e.Kind != model.KindIncome && e.Kind != model.KindExpense {
			errs = append(errs, ValidationError{
				Invariant: 2,
				EntryID:   e.ID,
				Message:   fmt.Sprintf("unknown kind %q", e.Kind),
			})
		}

		// Invariant 3: date is a valid YYYY-MM[-DD] inside this month.
		if !validDate(e.Date) {
			errs = append(errs, ValidationError{
				Invariant: 3,
				EntryID:   e.ID,
				Message:   fmt.Sprintf("malformed date %q", e.Date),
			})
		} else if e.Date[:7] != prefix {
			errs = append(errs, ValidationError{
				Invariant: 3,
				EntryID:   e.ID,
				Message:   fmt.Sprintf("date %s not in %s", e.Date, prefix),
			})
		}

		// Invariant 5: no more than 2 decimal places.
		if scaled := e.Amount.Mul(cents); !scaled.Equal(scaled.Truncate(0)) {
			errs = append(errs, ValidationError{
				Invariant: 5,
				EntryID:   e.ID,
				Message:   fmt.Sprintf("amount %s has more than 2 decimal places", e.Amount),
			})
		}
	}

	// Invariant 4: IDs belong to this month and run 1..N without gaps or duplicates.
	seen := make(map[int]bool)
	for _, e := range entries {
		y, m, seq, err := id.ParseEntryID(e.ID)
		if err != nil {
			errs = append(errs, ValidationError{
				Invariant: 4,
				EntryID:   e.ID,
				Message:   fmt.Sprintf("invalid entry ID: %v", err),
			})
			continue
		}
		if y != year || m != month {
			errs = append(errs, ValidationError{
				Invariant: 4,
				EntryID:   e.ID,
				Message:   fmt.Sprintf("entry ID not in %s", prefix),
			})
		}
		if seen[seq] {
			errs = append(errs, ValidationError{
				Invariant: 4,
				EntryID:   e.ID,
				Message:   "duplicate entry ID",
			})
		}
		seen[seq] = true
	}
	for i := 1; i <= len(seen); i++ {
		if !seen[i] {
			errs = append(errs, ValidationError{
				Invariant: 4,
				EntryID:   fmt.Sprintf("seq %d", i),
				Message:   fmt.Sprintf("missing sequence %d in 1..%d", i, len(seen)),
			})
		}
	}

	return errs
}

func validDate(s string) bool {
	switch len(s) {
	case len("2006-01"):
		_, err := time.Parse("2006-01", s)
		return err == nil
	case len("2006-01-02"):
		_, err := time.Parse("2006-01-02", s)
		return err == nil
	}
	return false
}
