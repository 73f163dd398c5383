package calc

import "strings"

// PhraseType says which transaction field the words being collected belong to.
type PhraseType int

const (
	PhraseAmount PhraseType = iota
	PhraseDate
	PhraseCheckNumber
	PhraseFromTo
	PhraseFor
)

func (p PhraseType) String() string {
	switch p {
	case PhraseAmount:
		return "amount"
	case PhraseDate:
		return "date"
	case PhraseCheckNumber:
		return "check number"
	case PhraseFromTo:
		return "from/to"
	case PhraseFor:
		return "for"
	default:
		return "unknown"
	}
}

// phrase accumulates the words of one phrase.
type phrase struct {
	typ   PhraseType
	words []string
}

func (p *phrase) add(w string) {
	p.words = append(p.words, w)
}

func (p *phrase) text() string {
	return strings.Join(p.words, " ")
}

// keyword is what a trigger word asks the classifier to do.
type keyword int

const (
	kwNone keyword = iota
	kwFromTo
	kwFor
	kwCheck
	kwMethod
	kwDate
)

var keywords = map[string]keyword{
	"in":    kwFromTo,
	"from":  kwFromTo,
	"to":    kwFromTo,
	"for":   kwFor,
	"#":     kwCheck,
	"check": kwCheck,
	"ck":    kwCheck,
	"via":   kwCheck,
	"dc":    kwMethod,
	"visa":  kwMethod,
	"cc":    kwMethod,
	"on":    kwDate,
}

// twoWordMethods are payment labels spelled as two words ("debit card").
var twoWordMethods = map[string]string{
	"debit":  "card",
	"credit": "card",
}

func lookupKeyword(text string) keyword {
	return keywords[strings.ToLower(text)]
}
