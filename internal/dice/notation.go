// Package dice implements the dice notation parser and evaluator used by the
// roll ledger. Parsing is pure; randomness enters only through the Roller
// passed to evaluation.
package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/To3Knee/RealmQuest_Go/internal/domain"
)

// Validation limits for a single dice term.
const (
	MinCount = 1
	MaxCount = 100
	MinSides = 2
	MaxSides = 1000

	// PercentileSides is what the '%' shorthand expands to.
	PercentileSides = 100
)

// termPattern matches one dice term: [count] d (sides|%) [kh|kl|dh|dl n]
var termPattern = regexp.MustCompile(`(?i)^(\d+)?d(\d+|%)(?:(kh|kl|dh|dl)(\d+))?$`)

// Expression is the parsed form of a notation string, before evaluation.
type Expression struct {
	// Notation is the source expression with all whitespace stripped.
	Notation string
	// Constants is the net value of literal integer terms.
	Constants int
	// Terms holds the dice terms in source order.
	Terms []domain.DiceTerm
	// IsPercentile is true if any term used the '%' shorthand.
	IsPercentile bool
}

// ParseNotation parses a dice expression such as "2d20kh1+5" or "4d6dl1-1"
// into its signed terms. The same input always yields the same structure;
// no dice are rolled here.
//
// Any token that is neither an integer nor a valid dice term fails the whole
// parse. Errors wrap the domain sentinel for the specific failure so callers
// can map them to machine-readable reasons.
func ParseNotation(notation string) (Expression, error) {
	normalized := stripSpace(notation)
	if normalized == "" {
		return Expression{}, domain.ErrEmptyNotation
	}

	expr := Expression{Notation: normalized}

	for _, tok := range splitSigned(normalized) {
		if tok.text == "" {
			return Expression{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedToken, notation)
		}

		if isDigits(tok.text) {
			v, err := strconv.Atoi(tok.text)
			if err != nil {
				return Expression{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedToken, tok.text)
			}
			expr.Constants += tok.sign * v
			continue
		}

		term, err := parseDiceTerm(tok.sign, tok.text)
		if err != nil {
			return Expression{}, err
		}
		if term.Sides == PercentileSides && strings.Contains(strings.ToLower(tok.text), "%") {
			expr.IsPercentile = true
		}
		expr.Terms = append(expr.Terms, term)
	}

	return expr, nil
}

// signedToken is one top-level token with the sign that preceded it.
type signedToken struct {
	sign int
	text string
}

// splitSigned tokenizes on top-level '+'/'-'. Dice terms never embed either
// character, so a plain character split is sufficient. The first token
// defaults to '+'.
func splitSigned(s string) []signedToken {
	var tokens []signedToken
	sign := 1
	var buf strings.Builder

	flush := func(nextSign int) {
		tokens = append(tokens, signedToken{sign: sign, text: buf.String()})
		buf.Reset()
		sign = nextSign
	}

	for _, r := range s {
		switch r {
		case '+':
			flush(1)
		case '-':
			flush(-1)
		default:
			buf.WriteRune(r)
		}
	}
	tokens = append(tokens, signedToken{sign: sign, text: buf.String()})
	return tokens
}

func parseDiceTerm(sign int, tok string) (domain.DiceTerm, error) {
	m := termPattern.FindStringSubmatch(tok)
	if m == nil {
		return domain.DiceTerm{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedToken, tok)
	}

	count := 1
	if m[1] != "" {
		v, err := strconv.Atoi(m[1])
		if err != nil {
			return domain.DiceTerm{}, fmt.Errorf("%w: %q", domain.ErrCountOutOfRange, tok)
		}
		count = v
	}
	if count < MinCount || count > MaxCount {
		return domain.DiceTerm{}, fmt.Errorf("%w: %d", domain.ErrCountOutOfRange, count)
	}

	sides := PercentileSides
	if m[2] != "%" {
		v, err := strconv.Atoi(m[2])
		if err != nil {
			return domain.DiceTerm{}, fmt.Errorf("%w: %q", domain.ErrSidesOutOfRange, tok)
		}
		sides = v
	}
	if sides < MinSides || sides > MaxSides {
		return domain.DiceTerm{}, fmt.Errorf("%w: %d", domain.ErrSidesOutOfRange, sides)
	}

	term := domain.DiceTerm{
		Sign:  sign,
		Count: count,
		Sides: sides,
	}

	if m[3] != "" {
		n, err := strconv.Atoi(m[4])
		if err != nil {
			return domain.DiceTerm{}, fmt.Errorf("%w: %q", domain.ErrKeepDropOutOfRange, tok)
		}
		if n < 1 || n > count {
			return domain.DiceTerm{}, fmt.Errorf("%w: %d of %d dice", domain.ErrKeepDropOutOfRange, n, count)
		}
		term.KeepDrop = domain.KeepDrop(strings.ToLower(m[3]))
		term.KeepDropN = n
	}

	return term, nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
