package calc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(text string) []word {
	s := newScanner(text)
	var words []word
	for {
		w, ok := s.next()
		if !ok {
			return words
		}
		words = append(words, w)
	}
}

func TestScanner_Words(t *testing.T) {
	words := scanAll("  25.00\tcheck  101\n")
	require.Len(t, words, 3)
	assert.Equal(t, "25.00", words[0].text)
	assert.Equal(t, "check", words[1].text)
	assert.Equal(t, "101", words[2].text)
}

func TestScanner_TokenRules(t *testing.T) {
	tests := []struct {
		input    string
		text     string
		numeric  bool
		negative bool
	}{
		{"$1,234.50", "1234.50", true, false},
		{"(5.00)", "5.00", true, true},
		{"($12)", "12", true, true},
		{"-5", "-5", true, false},
		{"+5", "+5", true, false},
		{"5/5", "5/5", false, false},
		{"Kroger", "Kroger", false, false},
		{"a(b)", "a(b)", false, false},
		{"(abc)", "abc)", false, true},
		{"12a", "12a", false, false},
		{"1.2.3", "1.2.3", true, false},
		{"-", "-", false, false},
	}
	for _, tt := range tests {
		words := scanAll(tt.input)
		require.Len(t, words, 1, "input %q", tt.input)
		w := words[0]
		assert.Equal(t, tt.text, w.text, "text of %q", tt.input)
		assert.Equal(t, tt.numeric, w.numeric(), "numeric(%q)", tt.input)
		assert.Equal(t, tt.negative, w.negative, "negative(%q)", tt.input)
	}
}

func TestScanner_DropsEmptyWords(t *testing.T) {
	words := scanAll("$ , 10")
	require.Len(t, words, 1)
	assert.Equal(t, "10", words[0].text)
}

func TestScanner_Peek(t *testing.T) {
	s := newScanner("debit card 10")
	w, _ := s.next()
	assert.Equal(t, "debit", w.text)

	p, ok := s.peek()
	require.True(t, ok)
	assert.Equal(t, "card", p.text)

	w, _ = s.next()
	assert.Equal(t, "card", w.text, "peek must not consume")
}

func TestWordValue(t *testing.T) {
	v, err := word{text: "5.00", digits: 3, negative: true}.value()
	require.NoError(t, err)
	assert.True(t, v.Equal(decimal.RequireFromString("-5")))

	_, err = word{text: "1.2.3", digits: 3}.value()
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	ten := decimal.NewFromInt(10)
	three := decimal.NewFromInt(3)

	assert.Equal(t, "13", apply(ten, OpAdd, three).String())
	assert.Equal(t, "7", apply(ten, OpSub, three).String())
	assert.Equal(t, "3", apply(ten, OpSet, three).String())
	assert.Equal(t, "30", apply(ten, OpMul, three).String())
}

func TestOperandFor(t *testing.T) {
	for _, s := range []string{"x", "X", "*"} {
		op, ok := operandFor(s)
		assert.True(t, ok)
		assert.Equal(t, OpMul, op)
	}
	op, ok := operandFor("=")
	assert.True(t, ok)
	assert.Equal(t, OpSet, op)

	_, ok = operandFor("+")
	assert.False(t, ok, "+ is a segment boundary, not an operand")
}

func TestPhraseTypeString(t *testing.T) {
	assert.Equal(t, "amount", PhraseAmount.String())
	assert.Equal(t, "date", PhraseDate.String())
	assert.Equal(t, "check number", PhraseCheckNumber.String())
	assert.Equal(t, "from/to", PhraseFromTo.String())
	assert.Equal(t, "for", PhraseFor.String())
}
