package calc

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/dateparse"
	"github.com/cleared-dev/tally/internal/diag"
	"github.com/cleared-dev/tally/internal/model"
)

func newTestCalculator(opts ...Option) *Calculator {
	r := dateparse.NewResolver(
		dateparse.WithClock(func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }),
		dateparse.WithYearWindow(2025),
	)
	c := New(append([]Option{WithResolver(r)}, opts...)...)
	c.SetDefaultDate("2025-03-01")
	return c
}

func drain(r *Result) []model.Transaction {
	var txns []model.Transaction
	for r.HasMore() {
		t, ok := r.Next()
		if !ok {
			break
		}
		txns = append(txns, t)
	}
	return txns
}

func amounts(txns []model.Transaction) []string {
	out := make([]string, len(txns))
	for i, t := range txns {
		out[i] = t.Amount.StringFixed(2)
	}
	return out
}

func TestCalc_Amounts(t *testing.T) {
	tests := []struct {
		input string
		total string
		want  []string
	}{
		{"10.00", "10.00", []string{"10.00"}},
		{"-5.00", "-5.00", []string{"-5.00"}},
		{"(5.00)", "-5.00", []string{"-5.00"}},
		{"$1,250.75", "1250.75", []string{"1250.75"}},
		{"10 + 5", "15.00", []string{"10.00", "5.00"}},
		{"10 - 5", "5.00", []string{"10.00", "-5.00"}},
		{"- 10", "-10.00", []string{"-10.00"}},
		{"10 x 3", "30.00", []string{"30.00"}},
		{"10 X 3", "30.00", []string{"30.00"}},
		{"2 * 4.50", "9.00", []string{"9.00"}},
		{"10 5", "15.00", []string{"15.00"}},
		{"10 = 4", "4.00", []string{"4.00"}},
		{"- 10 = 4", "-4.00", []string{"-4.00"}},
		{"10 -3", "7.00", []string{"7.00"}},
		{"0.1 0.2", "0.30", []string{"0.30"}},
		{"0", "0.00", nil},
		{"", "0.00", nil},
		{"lunch", "0.00", nil},
		{"10 + 0 + 5", "15.00", []string{"10.00", "5.00"}},
		{"10 - 10", "0.00", []string{"10.00", "-10.00"}},
		{"+ +", "0.00", nil},
	}
	for _, tt := range tests {
		res := newTestCalculator().Calc("expense", tt.input)
		assert.Equal(t, tt.total, res.Total().StringFixed(2), "total of %q", tt.input)
		assert.Equal(t, tt.want, nilIfEmpty(amounts(drain(res))), "amounts of %q", tt.input)
	}
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}

func TestCalc_DefaultKindAndDate(t *testing.T) {
	c := newTestCalculator()

	res := c.Calc("expense", "10.00")
	require.Equal(t, 1, res.Len())
	txn, ok := res.Next()
	require.True(t, ok)
	assert.Equal(t, model.KindExpense, txn.Kind)
	assert.Equal(t, "2025-03-01", txn.Date)
	assert.Empty(t, txn.What)

	res = c.Calc("Income", "10.00")
	txn, _ = res.Next()
	assert.Equal(t, model.KindIncome, txn.Kind)

	res = c.Calc("", "10.00")
	txn, _ = res.Next()
	assert.Equal(t, model.KindIncome, txn.Kind)
}

func TestCalc_FullLine(t *testing.T) {
	res := newTestCalculator().Calc("expense", "25.00 check 101 to Kroger for groceries on 5/5 + 10 cash")
	assert.Equal(t, "35.00", res.Total().StringFixed(2))

	txns := drain(res)
	require.Len(t, txns, 2)

	assert.Equal(t, "25.00", txns[0].Amount.StringFixed(2))
	assert.Equal(t, "101", txns[0].CheckNumber)
	assert.Equal(t, "to Kroger", txns[0].FromTo)
	assert.Equal(t, "for groceries", txns[0].PaidFor)
	assert.Equal(t, "2025-05-05", txns[0].Date)

	assert.Equal(t, "10.00", txns[1].Amount.StringFixed(2))
	assert.Equal(t, "2025-03-01", txns[1].Date)
	assert.Empty(t, txns[1].CheckNumber)
	assert.Empty(t, txns[1].FromTo)
}

func TestCalc_CheckNumber(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"50 check 101", "101"},
		{"50 CK 7", "7"},
		{"50 # 2231", "2231"},
		{"50 via 12", "12"},
		{"20 visa", "visa"},
		{"20 DC", "DC"},
		{"20 cc", "cc"},
		{"20 debit card", "debit card"},
		{"20 Credit Card", "Credit Card"},
		{"20 via paypal", "paypal"},
	}
	for _, tt := range tests {
		res := newTestCalculator().Calc("expense", tt.input)
		txns := drain(res)
		require.Len(t, txns, 1, "input %q", tt.input)
		assert.Equal(t, tt.want, txns[0].CheckNumber, "check number of %q", tt.input)
	}
}

func TestCalc_CheckNumberTakesOnlyNextNumber(t *testing.T) {
	res := newTestCalculator().Calc("expense", "check 101 50")
	txns := drain(res)
	require.Len(t, txns, 1)
	assert.Equal(t, "101", txns[0].CheckNumber)
	assert.Equal(t, "50.00", txns[0].Amount.StringFixed(2))
}

func TestCalc_DebitWithoutCardIsText(t *testing.T) {
	res := newTestCalculator().Calc("expense", "20 for debit interest")
	txns := drain(res)
	require.Len(t, txns, 1)
	assert.Empty(t, txns[0].CheckNumber)
	assert.Equal(t, "for debit interest", txns[0].PaidFor)
}

func TestCalc_Date(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"75 on 5/5/2020", "2020-05-05"},
		{"75 on May 5", "2025-05-05"},
		{"75 ON may 5th at 3pm", "2025-05-05"},
		{"75 on Dec", "2025-12"},
		{"10 on May 5-7", "2025-05-05"},
		{"5 on 5/5 at 3 p.m.", "2025-05-05"},
		{"20 on Feb 30", "2025-02"},
		{"75 on someday", "2025-03-01"},
		{"75 on", "2025-03-01"},
	}
	for _, tt := range tests {
		res := newTestCalculator().Calc("expense", tt.input)
		txns := drain(res)
		require.Len(t, txns, 1, "input %q", tt.input)
		assert.Equal(t, tt.want, txns[0].Date, "date of %q", tt.input)
	}
}

func TestCalc_PhrasesKeepTriggerWord(t *testing.T) {
	res := newTestCalculator().Calc("income", "from Acme Corp for consulting work 1500")
	txns := drain(res)
	require.Len(t, txns, 1)
	assert.Equal(t, "from Acme Corp", txns[0].FromTo)
	assert.Equal(t, "for consulting work", txns[0].PaidFor)
	assert.Equal(t, "1500.00", txns[0].Amount.StringFixed(2))
}

func TestCalc_NumberEndsPhrase(t *testing.T) {
	res := newTestCalculator().Calc("expense", "to Bob 20 lunch")
	txns := drain(res)
	require.Len(t, txns, 1)
	assert.Equal(t, "to Bob", txns[0].FromTo, "words after the amount are not part of the payee")
}

func TestCalc_SegmentsAreIndependent(t *testing.T) {
	res := newTestCalculator().Calc("expense", "10 to Alice on 5/1 - 4 to Bob")
	txns := drain(res)
	require.Len(t, txns, 2)

	assert.Equal(t, "to Alice", txns[0].FromTo)
	assert.Equal(t, "2025-05-01", txns[0].Date)

	assert.Equal(t, "-4.00", txns[1].Amount.StringFixed(2))
	assert.Equal(t, "to Bob", txns[1].FromTo)
	assert.Equal(t, "2025-03-01", txns[1].Date)
	assert.Equal(t, "6.00", res.Total().StringFixed(2))
}

func TestCalc_MalformedNumberGoesToSink(t *testing.T) {
	var rec diag.Recorder
	res := newTestCalculator(WithSink(&rec)).Calc("expense", "12.3.4 lunch")

	assert.Equal(t, 0, res.Len())
	assert.True(t, res.Total().IsZero())
	require.Len(t, rec.Events, 1)
	assert.Equal(t, "12.3.4", rec.Events[0].Word)
	assert.NotEmpty(t, rec.Events[0].Reason)
}

func TestCalc_MalformedNumberFoldedIntoPhrase(t *testing.T) {
	var rec diag.Recorder
	res := newTestCalculator(WithSink(&rec)).Calc("expense", "8 for part 1.2.3")
	txns := drain(res)
	require.Len(t, txns, 1)
	assert.Equal(t, "for part 1.2.3", txns[0].PaidFor)
	assert.Equal(t, "8.00", txns[0].Amount.StringFixed(2))
	assert.Len(t, rec.Events, 1)
}

func TestCalc_Idempotent(t *testing.T) {
	line := "25.00 check 101 to Kroger for groceries on 5/5 + 10 x 3 cash - (4.50) visa"

	first := newTestCalculator().Calc("expense", line)
	second := newTestCalculator().Calc("expense", line)

	assert.True(t, first.Total().Equal(second.Total()))
	a, b := drain(first), drain(second)
	require.Len(t, b, len(a))
	for i := range a {
		assert.True(t, a[i].Amount.Equal(b[i].Amount), "amount %d", i)
		a[i].Amount, b[i].Amount = decimal.Zero, decimal.Zero
		assert.Equal(t, a[i], b[i], "transaction %d", i)
	}
}

func TestCalc_ReusedCalculatorHasNoLeakage(t *testing.T) {
	c := newTestCalculator()
	c.Calc("expense", "10 check 5 to Bob on 6/1")

	res := c.Calc("expense", "7")
	txns := drain(res)
	require.Len(t, txns, 1)
	assert.Empty(t, txns[0].CheckNumber)
	assert.Empty(t, txns[0].FromTo)
	assert.Equal(t, "2025-03-01", txns[0].Date)
}

func TestResult_ForwardOnly(t *testing.T) {
	res := newTestCalculator().Calc("expense", "1 + 2")
	require.True(t, res.HasMore())

	first, ok := res.Next()
	require.True(t, ok)
	assert.Equal(t, "1.00", first.Amount.StringFixed(2))

	second, ok := res.Next()
	require.True(t, ok)
	assert.Equal(t, "2.00", second.Amount.StringFixed(2))

	assert.False(t, res.HasMore())
	_, ok = res.Next()
	assert.False(t, ok)
	assert.Equal(t, 2, res.Len())
}

func TestCalculator_Defaults(t *testing.T) {
	c := New()
	assert.NotNil(t, c.Resolver())
	assert.Empty(t, c.DefaultDate())

	// No sink configured: malformed numbers are dropped quietly.
	res := c.Calc("expense", "1..2 5")
	assert.Equal(t, "5.00", res.Total().StringFixed(2))
}
