package calc

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// Result holds the transactions produced by one Calc call and their grand
// total. Transactions are consumed once, in order, through HasMore and Next.
type Result struct {
	total decimal.Decimal
	txns  []model.Transaction
	pos   int
}

func (r *Result) add(t model.Transaction) {
	r.txns = append(r.txns, t)
	r.total = r.total.Add(t.Amount)
}

// Total returns the sum of all transaction amounts.
func (r *Result) Total() decimal.Decimal {
	return r.total
}

// Len returns the number of transactions produced, consumed or not.
func (r *Result) Len() int {
	return len(r.txns)
}

// HasMore reports whether Next will return another transaction.
func (r *Result) HasMore() bool {
	return r.pos < len(r.txns)
}

// Next returns the next transaction, or false once exhausted.
func (r *Result) Next() (model.Transaction, bool) {
	if !r.HasMore() {
		return model.Transaction{}, false
	}
	t := r.txns[r.pos]
	r.pos++
	return t, true
}
