// Package calc parses free-form quick-entry lines such as
//
//	25.00 check 101 to Kroger for groceries on 5/5 + 10 cash
//
// into transactions. Isolated "+" and "-" words split the line into
// segments; each segment with a non-zero amount becomes one transaction.
// Parsing never fails: numbers that cannot be converted are reported to a
// diag.Sink and treated as ordinary words.
package calc

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/dateparse"
	"github.com/cleared-dev/tally/internal/diag"
	"github.com/cleared-dev/tally/internal/model"
)

// Calculator parses quick-entry lines. The date resolver it holds keeps its
// session state across calls, so one Calculator should serve one session
// (for example one import batch). It is not safe for concurrent use.
type Calculator struct {
	resolver    *dateparse.Resolver
	sink        diag.Sink
	defaultDate string
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithSink routes malformed-number reports to s.
func WithSink(s diag.Sink) Option {
	return func(c *Calculator) { c.sink = s }
}

// WithResolver shares an existing date resolver session.
func WithResolver(r *dateparse.Resolver) Option {
	return func(c *Calculator) { c.resolver = r }
}

// New creates a Calculator.
func New(opts ...Option) *Calculator {
	c := &Calculator{}
	for _, opt := range opts {
		opt(c)
	}
	if c.resolver == nil {
		c.resolver = dateparse.NewResolver()
	}
	if c.sink == nil {
		c.sink = diag.Nop
	}
	return c
}

// SetDefaultDate sets the date given to transactions whose line names none.
func (c *Calculator) SetDefaultDate(ymd string) { c.defaultDate = ymd }

// DefaultDate returns the date set by SetDefaultDate.
func (c *Calculator) DefaultDate() string { return c.defaultDate }

// Resolver returns the date resolver session.
func (c *Calculator) Resolver() *dateparse.Resolver { return c.resolver }

// Calc parses text. kind is the default income/expense classification,
// normalized with model.ParseKind.
func (c *Calculator) Calc(kind, text string) *Result {
	st := &parseState{
		calc:   c,
		kind:   model.ParseKind(kind),
		sc:     newScanner(text),
		result: &Result{},
	}
	st.startSegment(OpAdd)
	for {
		w, ok := st.sc.next()
		if !ok {
			break
		}
		st.step(w)
	}
	st.endSegment()
	return st.result
}

// parseState is the state of one Calc call.
type parseState struct {
	calc   *Calculator
	kind   model.Kind
	sc     *scanner
	result *Result

	// current segment
	txn    model.Transaction
	sign   Operand
	sub    decimal.Decimal
	op     Operand
	phrase phrase
}

func (st *parseState) startSegment(sign Operand) {
	st.txn = model.Transaction{Kind: st.kind, Date: st.calc.defaultDate}
	st.sign = sign
	st.sub = decimal.Zero
	st.op = OpAdd
	st.phrase = phrase{}
}

func (st *parseState) endSegment() {
	st.flush()
	amount := st.sub
	if st.sign == OpSub {
		amount = amount.Neg()
	}
	if amount.IsZero() {
		return
	}
	st.txn.Amount = amount
	st.result.add(st.txn)
}

func (st *parseState) step(w word) {
	if w.text == "+" || w.text == "-" {
		st.endSegment()
		st.startSegment(Operand(w.text[0]))
		return
	}

	if op, ok := operandFor(w.text); ok {
		st.op = op
		if op == OpSet {
			st.sub = decimal.Zero
		}
		return
	}

	switch lookupKeyword(w.text) {
	case kwFromTo:
		st.enter(PhraseFromTo)
		st.phrase.add(w.text)
		return
	case kwFor:
		st.enter(PhraseFor)
		st.phrase.add(w.text)
		return
	case kwCheck:
		st.enter(PhraseCheckNumber)
		return
	case kwMethod:
		st.paymentMethod(w.text)
		return
	case kwDate:
		st.enter(PhraseDate)
		return
	case kwNone:
	}

	if second, ok := twoWordMethods[strings.ToLower(w.text)]; ok {
		if next, ok := st.sc.peek(); ok && strings.EqualFold(next.text, second) {
			st.sc.next()
			st.paymentMethod(w.text + " " + next.text)
			return
		}
	}

	if w.numeric() && st.number(w) {
		return
	}
	st.phrase.add(w.text)
}

// number handles a numeric word. It returns false when the word should be
// treated as plain text instead.
func (st *parseState) number(w word) bool {
	switch st.phrase.typ {
	case PhraseCheckNumber:
		st.phrase.add(w.text)
		st.flush()
		return true
	case PhraseDate:
		return false
	case PhraseAmount, PhraseFromTo, PhraseFor:
	}

	v, err := w.value()
	if err != nil {
		st.calc.sink.Report(w.text, err.Error())
		return false
	}
	st.flush()
	st.sub = apply(st.sub, st.op, v)
	st.op = OpAdd
	return true
}

// paymentMethod records a payment label such as "visa" as the check number.
func (st *parseState) paymentMethod(label string) {
	st.enter(PhraseCheckNumber)
	st.phrase.add(label)
	st.flush()
}

func (st *parseState) enter(t PhraseType) {
	st.flush()
	st.phrase.typ = t
}

// flush stores the current phrase on the segment's transaction and returns
// to the amount phrase.
func (st *parseState) flush() {
	p := st.phrase
	st.phrase = phrase{}
	if len(p.words) == 0 {
		return
	}

	switch p.typ {
	case PhraseAmount:
	case PhraseDate:
		if ymd := st.calc.resolver.YMD(p.text()); ymd != "" {
			st.txn.Date = ymd
		}
	case PhraseCheckNumber:
		st.txn.CheckNumber = p.text()
	case PhraseFromTo:
		st.txn.FromTo = p.text()
	case PhraseFor:
		st.txn.PaidFor = p.text()
	}
}
