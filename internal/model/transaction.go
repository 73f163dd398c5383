package model

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind classifies a transaction as money coming in or going out.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// ParseKind normalizes a caller-supplied classification. Anything whose first
// letter is 'e' (either case) is an expense; everything else, including the
// empty string, is income.
func ParseKind(s string) Kind {
	s = strings.TrimSpace(s)
	if s != "" && (s[0] == 'e' || s[0] == 'E') {
		return KindExpense
	}
	return KindIncome
}

// IsExpense reports whether k is KindExpense.
func (k Kind) IsExpense() bool { return k == KindExpense }

// Transaction is one monetary segment parsed out of a quick-entry line.
type Transaction struct {
	Date        string // "", "YYYY", "YYYY-MM" or "YYYY-MM-DD"
	CheckNumber string
	Kind        Kind
	FromTo      string
	PaidFor     string
	Amount      decimal.Decimal
	What        string // set by the caller, never by the parser
}

// Month returns the year and month of the transaction date, or ok=false when
// the date does not carry a month.
func (t Transaction) Month() (year, month int, ok bool) {
	if len(t.Date) < 7 || t.Date[4] != '-' {
		return 0, 0, false
	}
	year, err := strconv.Atoi(t.Date[:4])
	if err != nil {
		return 0, 0, false
	}
	month, err = strconv.Atoi(t.Date[5:7])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}

// Entry is a Transaction stored in the register under an entry ID.
type Entry struct {
	ID string // "YYYY-MM-NNN"
	Transaction
}
