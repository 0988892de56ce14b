package lexer

import "fmt"

// Kind is the type of a Token.
type Kind int

const (
	// EOF marks the end of the input. It carries no value.
	EOF Kind = iota
	Integer
	Plus
	Minus
	Mul
	Div
	LParen
	RParen
)

var kindNames = map[Kind]string{
	EOF:     "EOF",
	Integer: "INTEGER",
	Plus:    "PLUS",
	Minus:   "MINUS",
	Mul:     "MUL",
	Div:     "DIV",
	LParen:  "LPAREN",
	RParen:  "RPAREN",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a single lexical unit. Value is only meaningful for Integer.
type Token struct {
	Kind  Kind
	Value int64
	// Pos is the byte offset of the token in the input.
	Pos int
}

func (t Token) String() string {
	if t.Kind == Integer {
		return fmt.Sprintf("%s(%d)", t.Kind, t.Value)
	}
	return t.Kind.String()
}
