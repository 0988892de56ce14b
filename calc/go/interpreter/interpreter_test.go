package interpreter

import (
	"errors"
	"testing"

	"github.com/aoc2020/calc/calc/go/lexer"
	"github.com/aoc2020/calc/go/testutils/unittest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type evalCase struct {
	input string
	want  int64
}

func checkEval(t *testing.T, policy Policy, testCases []evalCase) {
	for _, tc := range testCases {
		got, err := Eval(tc.input, policy)
		require.NoError(t, err, "%s: %q", policy, tc.input)
		assert.Equal(t, tc.want, got, "%s: %q", policy, tc.input)
	}
}

func TestEval_SingleInteger(t *testing.T) {
	unittest.SmallTest(t)
	for _, p := range AllPolicies {
		checkEval(t, p, []evalCase{
			{"0", 0},
			{"7", 7},
			{"  0042 ", 42},
			{"(((9)))", 9},
			{"9223372036854775807", 9223372036854775807},
		})
	}
}

func TestEval_PlusMinus(t *testing.T) {
	unittest.SmallTest(t)
	for _, p := range AllPolicies {
		checkEval(t, p, []evalCase{
			{"3+5", 8},
			{"13-5", 8},
			{"1+2+3+2", 8},
			{"10 + 1 + 2 - 3 + 4 + 6 - 15", 5},
			{"1 - 5", -4},
		})
	}
}

func TestEval_MulDiv(t *testing.T) {
	unittest.SmallTest(t)
	for _, p := range AllPolicies {
		checkEval(t, p, []evalCase{
			{"7 * 4 / 2", 14},
			{"7 / 2", 3},
			{"(1 - 8) / 2", -3},
			{"100 / 10 / 5", 2},
		})
	}
}

func TestEval_Conventional(t *testing.T) {
	unittest.SmallTest(t)
	checkEval(t, Conventional, []evalCase{
		{"1 + 2 * 3 + 4 * 5 + 6", 33},
		{"2 * 3 + 4 * 5", 26},
		{"7 + 3 * (10 / (12 / (3 + 1) - 1))", 22},
		{"7 + 3 * (10 / (12 / (3 + 1) - 1)) / (2 + 3) - 5 - 3 + (8)", 10},
		{"7 + (((3 + 2)))", 12},
		{"10 - 4 - 3", 3},
	})
}

func TestEval_LeftToRight(t *testing.T) {
	unittest.SmallTest(t)
	checkEval(t, LeftToRight, []evalCase{
		{"1 + 2 * 3 + 4 * 5 + 6", 71},
		{"2 * 3 + 4 * 5", 50},
		{"1 + (2 * 3) + (4 * (5 + 6))", 51},
		{"2 * 3 + (4 * 5)", 26},
		{"5 + (8 * 3 + 9 + 3 * 4 * 3)", 437},
		{"5 * 9 * (7 * 3 * 3 + 9 * 3 + (8 + 6 * 4))", 12240},
		{"((2 + 4 * 9) * (6 + 9 * 8 + 6) + 6) + 2 + 4 * 2", 13632},
	})
}

func TestEval_AdditionFirst(t *testing.T) {
	unittest.SmallTest(t)
	checkEval(t, AdditionFirst, []evalCase{
		{"1 + 2 * 3 + 4 * 5 + 6", 231},
		{"1 + (2 * 3) + (4 * (5 + 6))", 51},
		{"2 * 3 + (4 * 5)", 46},
		{"5 + (8 * 3 + 9 + 3 * 4 * 3)", 1445},
		{"5 * 9 * (7 * 3 * 3 + 9 * 3 + (8 + 6 * 4))", 669060},
		{"((2 + 4 * 9) * (6 + 9 * 8 + 6) + 6) + 2 + 4 * 2", 23340},
	})
}

func TestEval_Errors(t *testing.T) {
	unittest.SmallTest(t)
	testCases := []struct {
		input string
		want  error
	}{
		{"", ErrUnexpectedToken},
		{"1 + ", ErrUnexpectedToken},
		{"* 2", ErrUnexpectedToken},
		{"1 2", ErrUnexpectedToken},
		{"()", ErrUnexpectedToken},
		{"(1 + 2", ErrUnbalancedParenthesis},
		{"((1 + 2)", ErrUnbalancedParenthesis},
		{"1 + 2)", ErrUnbalancedParenthesis},
		{"(1 2)", ErrUnbalancedParenthesis},
		{"1 $ 2", lexer.ErrInvalidCharacter},
		{"$", lexer.ErrInvalidCharacter},
		{"(1 + 2) $", lexer.ErrInvalidCharacter},
		{"99999999999999999999 + 1", lexer.ErrIntegerOverflow},
		{"1 / 0", ErrDivisionByZero},
		{"4 + 8 / (3 - 3)", ErrDivisionByZero},
		{"(5 / (2 - 2)) + 1", ErrDivisionByZero},
	}
	for _, p := range AllPolicies {
		for _, tc := range testCases {
			_, err := Eval(tc.input, p)
			require.Error(t, err, "%s: %q", p, tc.input)
			assert.True(t, errors.Is(err, tc.want), "%s: %q: %s", p, tc.input, err)
		}
	}
}

func TestEval_UnbalancedIsAlsoUnexpectedToken(t *testing.T) {
	unittest.SmallTest(t)
	_, err := Eval("(1 + 2", Conventional)
	assert.ErrorIs(t, err, ErrUnbalancedParenthesis)
	assert.ErrorIs(t, err, ErrUnexpectedToken)
	assert.NotErrorIs(t, err, ErrDivisionByZero)
}

func TestEvaluate_OnlyOnce(t *testing.T) {
	unittest.SmallTest(t)
	i := New(lexer.New("2 * 3"), Conventional)
	v, err := i.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, int64(6), v)

	_, err = i.Evaluate()
	assert.ErrorIs(t, err, ErrConsumed)
}

func TestEval_IsIdempotent(t *testing.T) {
	unittest.SmallTest(t)
	const input = "5 * 9 * (7 * 3 * 3 + 9 * 3 + (8 + 6 * 4))"
	first, err := Eval(input, AdditionFirst)
	require.NoError(t, err)
	for n := 0; n < 5; n++ {
		again, err := Eval(input, AdditionFirst)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEat_UnexpectedKind(t *testing.T) {
	unittest.SmallTest(t)
	i := New(lexer.New("3"), Conventional)
	err := i.eat(lexer.LParen)
	require.ErrorIs(t, err, ErrUnexpectedToken)
	assert.Contains(t, err.Error(), "want LPAREN, got INTEGER(3) at offset 0")
	assert.Equal(t, lexer.Integer, i.current.Kind)

	require.NoError(t, i.eat(lexer.Integer))
	assert.Equal(t, lexer.EOF, i.current.Kind)
}

func TestPolicy_ParseAndString(t *testing.T) {
	unittest.SmallTest(t)
	for _, p := range AllPolicies {
		got, err := ParsePolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParsePolicy("reverse_polish")
	assert.Error(t, err)
	assert.Equal(t, "unknown", Policy(42).String())

	assert.Equal(t, LeftToRight, PolicyFromLeftToRight(true))
	assert.Equal(t, Conventional, PolicyFromLeftToRight(false))
}
