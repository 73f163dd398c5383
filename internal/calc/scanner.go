package calc

import (
	"unicode"

	"github.com/shopspring/decimal"
)

// word is one whitespace-delimited token with currency noise removed.
type word struct {
	text      string
	digits    int
	nonDigits int
	negative  bool // written as "(12.00)"
}

// numeric reports whether the word is made only of digits, '.', '+' and '-'.
func (w word) numeric() bool {
	return w.digits > 0 && w.nonDigits == 0
}

// value converts the word to a decimal, applying parenthesis negation.
func (w word) value() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(w.text)
	if err != nil {
		return decimal.Zero, err
	}
	if w.negative {
		d = d.Neg()
	}
	return d, nil
}

// scanner walks the input one character at a time.
type scanner struct {
	input []rune
	pos   int
}

func newScanner(text string) *scanner {
	return &scanner{input: []rune(text)}
}

// next returns the next non-empty word, or false at end of input.
func (s *scanner) next() (word, bool) {
	for s.pos < len(s.input) {
		w := s.scanWord()
		if w.text != "" {
			return w, true
		}
	}
	return word{}, false
}

// peek returns the word next would return without consuming it.
func (s *scanner) peek() (word, bool) {
	pos := s.pos
	w, ok := s.next()
	s.pos = pos
	return w, ok
}

func (s *scanner) scanWord() word {
	for s.pos < len(s.input) && unicode.IsSpace(s.input[s.pos]) {
		s.pos++
	}

	var w word
	var buf []rune
	for ; s.pos < len(s.input); s.pos++ {
		c := s.input[s.pos]
		if unicode.IsSpace(c) {
			break
		}
		switch {
		case c == '$' || c == ',':
		case c == '(' && w.digits == 0 && w.nonDigits == 0 && !w.negative:
			w.negative = true
		case c == ')' && w.negative && w.digits > 0 && w.nonDigits == 0:
		case c == '.' || c == '+' || c == '-':
			buf = append(buf, c)
		default:
			buf = append(buf, c)
			if unicode.IsDigit(c) {
				w.digits++
			} else {
				w.nonDigits++
			}
		}
	}
	w.text = string(buf)
	return w
}
