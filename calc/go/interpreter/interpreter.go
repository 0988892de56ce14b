// Package interpreter evaluates integer arithmetic with a recursive-descent
// evaluator that reads tokens from a lexer.Lexer one at a time.
//
// The grammar, with the operator groups supplied by a Policy from loosest to
// tightest binding, is:
//
//	term    := expr(0)
//	expr(n) := expr(n+1) ( OP_n expr(n+1) )*
//	expr(N) := factor
//	factor  := INTEGER | LPAREN term RPAREN
//
// Every operator is left associative. Parentheses always bind tightest.
package interpreter

import (
	"errors"
	"fmt"

	"github.com/aoc2020/calc/calc/go/lexer"
	"github.com/aoc2020/calc/go/skerr"
)

var (
	// ErrUnexpectedToken is returned when the grammar needs a different token
	// than the one under the lookahead, including running out of input.
	ErrUnexpectedToken = errors.New("unexpected token")

	// ErrUnbalancedParenthesis is returned for a missing or stray ")". It is
	// also an ErrUnexpectedToken.
	ErrUnbalancedParenthesis = fmt.Errorf("unbalanced parenthesis: %w", ErrUnexpectedToken)

	// ErrDivisionByZero is returned when the right operand of "/" is zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrConsumed is returned by Evaluate if it is called more than once.
	ErrConsumed = errors.New("expression already evaluated")
)

// Interpreter evaluates the single expression held by its Lexer.
type Interpreter struct {
	lexer  *lexer.Lexer
	levels [][]lexer.Kind

	// current is the one token of lookahead.
	current lexer.Token

	// err holds a failure from priming the lookahead.
	err      error
	consumed bool
}

// New returns an Interpreter that takes ownership of l and primes the
// lookahead with its first token.
func New(l *lexer.Lexer, policy Policy) *Interpreter {
	i := &Interpreter{
		lexer:  l,
		levels: policy.levels(),
	}
	i.current, i.err = l.Next()
	return i
}

// Eval evaluates text with a fresh Lexer and Interpreter.
func Eval(text string, policy Policy) (int64, error) {
	return New(lexer.New(text), policy).Evaluate()
}

// Evaluate consumes the whole input and returns its value. The input must
// be exactly one expression; trailing tokens are an error.
func (i *Interpreter) Evaluate() (int64, error) {
	if i.consumed {
		return 0, skerr.Wrap(ErrConsumed)
	}
	i.consumed = true
	if i.err != nil {
		return 0, i.err
	}
	result, err := i.term()
	if err != nil {
		return 0, err
	}
	switch i.current.Kind {
	case lexer.EOF:
		return result, nil
	case lexer.RParen:
		return 0, skerr.Wrapf(ErrUnbalancedParenthesis, "no matching %q for %q at offset %d", '(', ')', i.current.Pos)
	default:
		return 0, i.unexpected("end of input")
	}
}

// term is the full expression.
func (i *Interpreter) term() (int64, error) {
	return i.expr(0)
}

// expr evaluates a left-associative chain of the operators at the given
// level, whose operands are built from the tighter levels.
func (i *Interpreter) expr(level int) (int64, error) {
	if level == len(i.levels) {
		return i.factor()
	}
	result, err := i.expr(level + 1)
	if err != nil {
		return 0, err
	}
	for i.atLevel(level) {
		op := i.current
		if err := i.eat(op.Kind); err != nil {
			return 0, err
		}
		rhs, err := i.expr(level + 1)
		if err != nil {
			return 0, err
		}
		result, err = apply(op, result, rhs)
		if err != nil {
			return 0, err
		}
	}
	return result, nil
}

func (i *Interpreter) factor() (int64, error) {
	tok := i.current
	switch tok.Kind {
	case lexer.Integer:
		if err := i.eat(lexer.Integer); err != nil {
			return 0, err
		}
		return tok.Value, nil
	case lexer.LParen:
		if err := i.eat(lexer.LParen); err != nil {
			return 0, err
		}
		result, err := i.term()
		if err != nil {
			return 0, err
		}
		if i.current.Kind != lexer.RParen {
			return 0, skerr.Wrapf(ErrUnbalancedParenthesis, "%q at offset %d closed by %s at offset %d", '(', tok.Pos, i.current, i.current.Pos)
		}
		if err := i.eat(lexer.RParen); err != nil {
			return 0, err
		}
		return result, nil
	default:
		return 0, i.unexpected("INTEGER or LPAREN")
	}
}

// eat checks that the lookahead is of the expected kind and replaces it
// with the next token from the lexer.
func (i *Interpreter) eat(kind lexer.Kind) error {
	if i.current.Kind != kind {
		return i.unexpected(kind.String())
	}
	next, err := i.lexer.Next()
	if err != nil {
		return err
	}
	i.current = next
	return nil
}

func (i *Interpreter) atLevel(level int) bool {
	for _, k := range i.levels[level] {
		if i.current.Kind == k {
			return true
		}
	}
	return false
}

func (i *Interpreter) unexpected(want string) error {
	return skerr.Wrapf(ErrUnexpectedToken, "want %s, got %s at offset %d", want, i.current, i.current.Pos)
}

func apply(op lexer.Token, lhs, rhs int64) (int64, error) {
	switch op.Kind {
	case lexer.Plus:
		return lhs + rhs, nil
	case lexer.Minus:
		return lhs - rhs, nil
	case lexer.Mul:
		return lhs * rhs, nil
	case lexer.Div:
		if rhs == 0 {
			return 0, skerr.Wrapf(ErrDivisionByZero, "%d / 0 at offset %d", lhs, op.Pos)
		}
		return lhs / rhs, nil
	}
	return 0, skerr.Fmt("%s is not a binary operator", op.Kind)
}
