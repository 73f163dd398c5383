package calc

import "github.com/shopspring/decimal"

// Operand is the pending arithmetic operator between the running sub-total
// and the next number.
type Operand rune

const (
	OpAdd Operand = '+'
	OpSub Operand = '-'
	OpSet Operand = '='
	OpMul Operand = 'x'
)

// operandFor recognises the single-character operator words.
func operandFor(text string) (Operand, bool) {
	switch text {
	case "=":
		return OpSet, true
	case "x", "X", "*":
		return OpMul, true
	}
	return 0, false
}

// apply combines acc and next. OpSet replaces acc, sign included. OpSub is
// never returned by operandFor: inside Calc it only marks a segment's leading
// sign, applied in endSegment.
func apply(acc decimal.Decimal, op Operand, next decimal.Decimal) decimal.Decimal {
	switch op {
	case OpSub:
		return acc.Sub(next)
	case OpSet:
		return next
	case OpMul:
		return acc.Mul(next)
	default:
		return acc.Add(next)
	}
}
