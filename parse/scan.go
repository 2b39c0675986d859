package parse

import (
	"fmt"
	"strconv"
)

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokIdent
	tokOp
	tokLeftParen
	tokRightParen
	tokComma
)

type token struct {
	kind tokenKind
	text string
	val  float64
	pos  int
}

// scan splits src into tokens. Numbers follow Go's float syntax, including
// exponents, and identifiers are the usual letters, digits, and underscores.
func scan(src string) ([]token, error) {
	var toks []token

	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t':
			i++

		case isDigit(c) || c == '.':
			start := i
			for i < len(src) && (isDigit(src[i]) || src[i] == '.') {
				i++
			}
			if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
				j := i + 1
				if j < len(src) && (src[j] == '+' || src[j] == '-') {
					j++
				}
				if j < len(src) && isDigit(src[j]) {
					for j < len(src) && isDigit(src[j]) {
						j++
					}
					i = j
				}
			}
			val, err := strconv.ParseFloat(src[start:i], 64)
			if err != nil {
				return nil, fmt.Errorf(
					"Invalid number %q at position %d in %q.",
					src[start:i], start, src)
			}
			toks = append(toks, token{
				kind: tokNumber, text: src[start:i], val: val, pos: start,
			})

		case isLetter(c):
			start := i
			for i < len(src) && (isLetter(src[i]) || isDigit(src[i])) {
				i++
			}
			toks = append(toks, token{
				kind: tokIdent, text: src[start:i], pos: start,
			})

		case c == '+' || c == '-' || c == '*' || c == '/' || c == '^':
			toks = append(toks, token{kind: tokOp, text: src[i : i+1], pos: i})
			i++

		case c == '(':
			toks = append(toks, token{kind: tokLeftParen, pos: i})
			i++

		case c == ')':
			toks = append(toks, token{kind: tokRightParen, pos: i})
			i++

		case c == ',':
			toks = append(toks, token{kind: tokComma, pos: i})
			i++

		default:
			return nil, fmt.Errorf(
				"Invalid character %q at position %d in %q.", c, i, src)
		}
	}

	return toks, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}
