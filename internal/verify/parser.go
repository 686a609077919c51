package verify

import (
	"unicode"

	"github.com/pkg/errors"
)

var ErrSyntax = errors.New("syntax error")

// Parse reads an expression in the minimizer's output notation: identifiers,
// the constants 0 and 1, parentheses, NOT as ~ or !, AND as & and OR as |.
// AND binds tighter than OR.
func Parse(src string) (Expr, error) {
	p := &parser{lex: newLexer(src)}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.lex.next(); tok.kind != tokEOF {
		return nil, errors.Wrapf(ErrSyntax, "unexpected %q at %d", tok.text, tok.pos)
	}
	return e, nil
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokNot
	tokAnd
	tokOr
	tokLParen
	tokRParen
	tokIllegal
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

var punct = map[byte]tokenKind{
	'~': tokNot,
	'!': tokNot,
	'&': tokAnd,
	'|': tokOr,
	'(': tokLParen,
	')': tokRParen,
}

type lexer struct {
	s string
	i int
}

func newLexer(s string) *lexer { return &lexer{s: s} }

func (l *lexer) peek() token {
	pos := l.i
	tok := l.next()
	l.i = pos
	return tok
}

func (l *lexer) next() token {
	for l.i < len(l.s) && unicode.IsSpace(rune(l.s[l.i])) {
		l.i++
	}
	start := l.i
	if l.i >= len(l.s) {
		return token{kind: tokEOF, pos: start}
	}
	ch := l.s[l.i]
	if kind, ok := punct[ch]; ok {
		l.i++
		return token{kind: kind, text: string(ch), pos: start}
	}

	if isIdentStart(ch) {
		l.i++
		for l.i < len(l.s) && isIdentPart(l.s[l.i]) {
			l.i++
		}
		return token{kind: tokIdent, text: l.s[start:l.i], pos: start}
	}
	if unicode.IsDigit(rune(ch)) {
		l.i++
		for l.i < len(l.s) && unicode.IsDigit(rune(l.s[l.i])) {
			l.i++
		}
		return token{kind: tokNumber, text: l.s[start:l.i], pos: start}
	}

	l.i++
	return token{kind: tokIllegal, text: string(ch), pos: start}
}

func isIdentStart(b byte) bool {
	return unicode.IsLetter(rune(b)) || b == '_'
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || unicode.IsDigit(rune(b))
}

type parser struct {
	lex *lexer
}

func (p *parser) parseExpr() (Expr, error) { return p.parseOr() }

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.lex.peek().kind == tokOr {
		p.lex.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = ExprOr{A: left, B: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.lex.peek().kind == tokAnd {
		p.lex.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = ExprAnd{A: left, B: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Expr, error) {
	if p.lex.peek().kind == tokNot {
		p.lex.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ExprNot{X: x}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	tok := p.lex.next()
	switch tok.kind {
	case tokIdent:
		return ExprIdent{Name: tok.text}, nil
	case tokNumber:
		switch tok.text {
		case "0":
			return ExprConst{Value: false}, nil
		case "1":
			return ExprConst{Value: true}, nil
		}
		return nil, errors.Wrapf(ErrSyntax, "constant %q at %d must be 0 or 1", tok.text, tok.pos)
	case tokLParen:
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if closing := p.lex.next(); closing.kind != tokRParen {
			return nil, errors.Wrapf(ErrSyntax, "expected ) at %d", closing.pos)
		}
		return x, nil
	case tokEOF:
		return nil, errors.Wrapf(ErrSyntax, "unexpected end of expression at %d", tok.pos)
	}
	return nil, errors.Wrapf(ErrSyntax, "unexpected %q at %d", tok.text, tok.pos)
}
