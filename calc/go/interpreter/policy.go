package interpreter

import (
	"github.com/aoc2020/calc/calc/go/lexer"
	"github.com/aoc2020/calc/go/skerr"
)

// Policy selects how binary operators bind.
type Policy int

const (
	// Conventional: "*" and "/" bind tighter than "+" and "-".
	Conventional Policy = iota

	// LeftToRight: all four operators share one precedence level, so
	// "1 + 2 * 3" is (1 + 2) * 3.
	LeftToRight

	// AdditionFirst: "+" and "-" bind tighter than "*" and "/", so
	// "2 * 3 + 4" is 2 * (3 + 4).
	AdditionFirst
)

// AllPolicies lists every Policy.
var AllPolicies = []Policy{Conventional, LeftToRight, AdditionFirst}

var policyNames = map[Policy]string{
	Conventional:  "conventional",
	LeftToRight:   "left_to_right",
	AdditionFirst: "addition_first",
}

func (p Policy) String() string {
	if s, ok := policyNames[p]; ok {
		return s
	}
	return "unknown"
}

// ParsePolicy is the inverse of Policy.String.
func ParsePolicy(s string) (Policy, error) {
	for _, p := range AllPolicies {
		if p.String() == s {
			return p, nil
		}
	}
	return Conventional, skerr.Fmt("unknown policy %q, want one of %v", s, AllPolicies)
}

// PolicyFromLeftToRight maps the classic left_to_right switch onto a Policy.
func PolicyFromLeftToRight(leftToRight bool) Policy {
	if leftToRight {
		return LeftToRight
	}
	return Conventional
}

// levels returns the operator groups for p from loosest to tightest binding.
func (p Policy) levels() [][]lexer.Kind {
	additive := []lexer.Kind{lexer.Plus, lexer.Minus}
	multiplicative := []lexer.Kind{lexer.Mul, lexer.Div}
	switch p {
	case LeftToRight:
		return [][]lexer.Kind{{lexer.Plus, lexer.Minus, lexer.Mul, lexer.Div}}
	case AdditionFirst:
		return [][]lexer.Kind{multiplicative, additive}
	default:
		return [][]lexer.Kind{additive, multiplicative}
	}
}
