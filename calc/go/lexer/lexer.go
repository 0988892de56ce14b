// Package lexer turns a line of integer arithmetic into a stream of tokens.
//
// The lexer is pull based: each call to Next scans just far enough to produce
// one token. It understands non-negative decimal integers, the operators
// "+ - * /", parentheses and whitespace. Anything else is an error.
package lexer

import (
	"errors"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/aoc2020/calc/go/skerr"
)

var (
	// ErrInvalidCharacter is returned for any character that is not a digit,
	// whitespace, an operator or a parenthesis.
	ErrInvalidCharacter = errors.New("invalid character")

	// ErrIntegerOverflow is returned for integer literals that don't fit in an
	// int64.
	ErrIntegerOverflow = errors.New("integer literal out of range")
)

// eof is the value of Lexer.ch once the input is exhausted.
const eof rune = -1

// Lexer scans a single expression. A Lexer is not safe for concurrent use.
type Lexer struct {
	text string

	// pos is the byte offset of ch.
	pos int
	// width is the size in bytes of ch.
	width int
	ch    rune

	// err is sticky: once set every call to Next returns it.
	err error
}

// New returns a Lexer positioned at the first character of text.
func New(text string) *Lexer {
	l := &Lexer{text: text}
	l.read()
	return l
}

// read loads the character at l.pos into l.ch.
func (l *Lexer) read() {
	if l.pos >= len(l.text) {
		l.ch = eof
		l.width = 0
		return
	}
	l.ch, l.width = utf8.DecodeRuneInString(l.text[l.pos:])
}

func (l *Lexer) advance() {
	l.pos += l.width
	l.read()
}

// Next returns the next token. At the end of the input it returns a token of
// Kind EOF, and keeps doing so on every later call.
func (l *Lexer) Next() (Token, error) {
	if l.err != nil {
		return Token{}, l.err
	}
	for l.ch != eof {
		if unicode.IsSpace(l.ch) {
			l.advance()
			continue
		}
		if isDigit(l.ch) {
			return l.integer()
		}
		if kind, ok := operators[l.ch]; ok {
			tok := Token{Kind: kind, Pos: l.pos}
			l.advance()
			return tok, nil
		}
		l.err = skerr.Wrapf(ErrInvalidCharacter, "%q at offset %d", l.ch, l.pos)
		return Token{}, l.err
	}
	return Token{Kind: EOF, Pos: l.pos}, nil
}

// integer consumes a maximal run of digits.
func (l *Lexer) integer() (Token, error) {
	start := l.pos
	for isDigit(l.ch) {
		l.advance()
	}
	v, err := strconv.ParseInt(l.text[start:l.pos], 10, 64)
	if err != nil {
		l.err = skerr.Wrapf(ErrIntegerOverflow, "%q at offset %d", l.text[start:l.pos], start)
		return Token{}, l.err
	}
	return Token{Kind: Integer, Value: v, Pos: start}, nil
}

// Tokenize drains a fresh Lexer for text. The returned slice ends with the
// EOF token.
func Tokenize(text string) ([]Token, error) {
	l := New(text)
	ret := []Token{}
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		ret = append(ret, tok)
		if tok.Kind == EOF {
			return ret, nil
		}
	}
}

var operators = map[rune]Kind{
	'+': Plus,
	'-': Minus,
	'*': Mul,
	'/': Div,
	'(': LParen,
	')': RParen,
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
