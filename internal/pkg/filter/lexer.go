package filter

import (
	"fmt"
	"unicode"
)

type tokenType int

const (
	tokString tokenType = iota
	tokIdent
	tokKeyword // in, not, and, or
	tokEq      // ==
	tokNeq     // !=
	tokLparen
	tokRparen
	tokEOF
)

type token struct {
	typ tokenType
	val string
	pos int // rune offset in the source line, 0-based
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '$'
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$'
}

func lex(source string) ([]token, error) {
	var tokens []token
	runes := []rune(source)

	i := 0
	for i < len(runes) {
		r := runes[i]

		switch {
		case unicode.IsSpace(r):
			i++

		case r == '(':
			tokens = append(tokens, token{tokLparen, "(", i})
			i++

		case r == ')':
			tokens = append(tokens, token{tokRparen, ")", i})
			i++

		case r == '"' || r == '\'':
			quote := r
			start := i
			i++
			var val []rune
			for i < len(runes) && runes[i] != quote {
				val = append(val, runes[i])
				i++
			}
			if i >= len(runes) {
				return nil, &SyntaxError{Col: start + 1, Msg: "unterminated string literal"}
			}
			i++ // closing quote
			tokens = append(tokens, token{tokString, string(val), start})

		case r == '=':
			if i+1 < len(runes) && runes[i+1] == '=' {
				tokens = append(tokens, token{tokEq, "==", i})
				i += 2
			} else {
				return nil, &SyntaxError{Col: i + 1, Msg: "unexpected '=', did you mean '=='?"}
			}

		case r == '!':
			if i+1 < len(runes) && runes[i+1] == '=' {
				tokens = append(tokens, token{tokNeq, "!=", i})
				i += 2
			} else {
				return nil, &SyntaxError{Col: i + 1, Msg: "unexpected '!', did you mean '!='?"}
			}

		case isIdentStart(r):
			start := i
			for i < len(runes) && isIdentPart(runes[i]) {
				i++
			}
			word := string(runes[start:i])
			switch word {
			case "in", "not", "and", "or":
				tokens = append(tokens, token{tokKeyword, word, start})
			default:
				tokens = append(tokens, token{tokIdent, word, start})
			}

		default:
			return nil, &SyntaxError{Col: i + 1, Msg: fmt.Sprintf("unexpected character %q", r)}
		}
	}

	tokens = append(tokens, token{tokEOF, "", len(runes)})
	return tokens, nil
}
