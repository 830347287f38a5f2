package filter

import "fmt"

// Grammar, lowest precedence first:
//
//	expr       := andExpr { "or" andExpr }
//	andExpr    := unary { "and" unary }
//	unary      := "not" unary | atom
//	atom       := "(" expr ")" | comparison
//	comparison := operand ( "in" | "not" "in" | "==" | "!=" ) operand
//	operand    := STRING | IDENT
type parser struct {
	tokens []token
	pos    int
}

func parse(source string) (expr, error) {
	tokens, err := lex(source)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.typ != tokEOF {
		return nil, p.errorf(tok, "unexpected %q after expression", tok.val)
	}

	return e, nil
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.typ != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) acceptKeyword(word string) bool {
	if tok := p.peek(); tok.typ == tokKeyword && tok.val == word {
		p.next()
		return true
	}
	return false
}

func (p *parser) errorf(tok token, format string, args ...any) error {
	return &SyntaxError{Col: tok.pos + 1, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parseExpr() (expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.acceptKeyword("or") {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = orNode{left: left, right: right}
	}

	return left, nil
}

func (p *parser) parseAnd() (expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.acceptKeyword("and") {
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = andNode{left: left, right: right}
	}

	return left, nil
}

func (p *parser) parseUnary() (expr, error) {
	if p.acceptKeyword("not") {
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notNode{inner: inner}, nil
	}

	return p.parseAtom()
}

func (p *parser) parseAtom() (expr, error) {
	if tok := p.peek(); tok.typ == tokLparen {
		open := p.next()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.typ != tokRparen {
			return nil, p.errorf(open, "unbalanced parenthesis")
		}
		return e, nil
	}

	return p.parseComparison()
}

func (p *parser) parseComparison() (expr, error) {
	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}

	tok := p.next()
	switch {
	case tok.typ == tokKeyword && tok.val == "in":
		right, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		return containsNode{needle: left, haystack: right}, nil

	case tok.typ == tokKeyword && tok.val == "not":
		if inTok := p.next(); inTok.typ != tokKeyword || inTok.val != "in" {
			return nil, p.errorf(inTok, "expected 'in' after 'not'")
		}
		right, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		return containsNode{needle: left, haystack: right, negate: true}, nil

	case tok.typ == tokEq:
		right, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		return equalsNode{left: left, right: right}, nil

	case tok.typ == tokNeq:
		right, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		return equalsNode{left: left, right: right, negate: true}, nil

	default:
		return nil, p.errorf(tok, "expected comparison operator, got %q", tok.val)
	}
}

func (p *parser) parseOperand() (operand, error) {
	tok := p.next()
	switch tok.typ {
	case tokString:
		return literalNode{val: tok.val}, nil
	case tokIdent:
		return variableNode{name: tok.val}, nil
	default:
		return nil, p.errorf(tok, "expected string literal or identifier, got %q", tok.val)
	}
}
