package expr

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

type opKind int

const (
	opVar opKind = iota
	opConst
	opNot
	opAnd
	opXor
	opOr
	opImplies
	opIff
)

// node is a parsed expression. Unary and binary operators keep their
// operands in args.
type node struct {
	op   opKind
	name string
	val  bool
	args []*node
}

// prec orders operators from loosest (1) to tightest binding.
func (n *node) prec() int {
	switch n.op {
	case opIff:
		return 1
	case opImplies:
		return 2
	case opOr:
		return 3
	case opXor:
		return 4
	case opAnd:
		return 5
	case opNot:
		return 6
	}
	return 7
}

var symbols = map[opKind]string{
	opNot:     "~",
	opAnd:     "&",
	opXor:     "^",
	opOr:      "|",
	opImplies: "→",
	opIff:     "↔",
}

func (n *node) String() string {
	var b strings.Builder
	n.format(&b, 0)
	return b.String()
}

func (n *node) format(b *strings.Builder, min int) {
	p := n.prec()
	if p < min {
		b.WriteByte('(')
		defer b.WriteByte(')')
	}
	switch n.op {
	case opVar:
		b.WriteString(n.name)
	case opConst:
		b.WriteString(boolWord(n.val))
	case opNot:
		b.WriteString(symbols[opNot])
		n.args[0].format(b, p)
	default:
		// Implication groups to the right, everything else to the left.
		left, right := p, p+1
		if n.op == opImplies {
			left, right = p+1, p
		}
		n.args[0].format(b, left)
		b.WriteString(" " + symbols[n.op] + " ")
		n.args[1].format(b, right)
	}
}

func boolWord(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// evaluable renders n in govaluate syntax, fully parenthesized so the
// evaluator's own precedence never applies.
func (n *node) evaluable() string {
	switch n.op {
	case opVar:
		return "[" + n.name + "]"
	case opConst:
		return boolWord(n.val)
	case opNot:
		return "!" + n.args[0].evaluable()
	case opImplies:
		return "(!" + n.args[0].evaluable() + " || " + n.args[1].evaluable() + ")"
	}
	op := map[opKind]string{opAnd: "&&", opXor: "!=", opOr: "||", opIff: "=="}[n.op]
	return "(" + n.args[0].evaluable() + " " + op + " " + n.args[1].evaluable() + ")"
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokIdent
	tokOp
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokKind
	op   opKind
	text string
	pos  int
}

// operators lists every accepted spelling, longest first so "<->" wins
// over "->" and "&&" over "&".
var operators = []struct {
	text string
	op   opKind
}{
	{"<->", opIff},
	{"&&", opAnd},
	{"||", opOr},
	{"!=", opXor},
	{"==", opIff},
	{"->", opImplies},
	{"&", opAnd},
	{"∧", opAnd},
	{"|", opOr},
	{"∨", opOr},
	{"~", opNot},
	{"!", opNot},
	{"¬", opNot},
	{"^", opXor},
	{"⊕", opXor},
	{"→", opImplies},
	{"↔", opIff},
}

var wordOps = map[string]opKind{
	"and": opAnd,
	"or":  opOr,
	"not": opNot,
}

var constants = map[string]bool{
	"true": true, "True": true,
	"false": false, "False": false,
}

var functions = map[string]opKind{
	"implies": opImplies,
	"xor":     opXor,
	"iff":     opIff,
}

// IsReserved reports whether name is an operator word, constant or function
// name and so cannot be used as a variable.
func IsReserved(name string) bool {
	_, op := wordOps[name]
	_, c := constants[name]
	_, f := functions[name]
	return op || c || f
}

func tokenize(src string) ([]token, error) {
	var toks []token
	i := 0
next:
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		if unicode.IsSpace(r) {
			i += size
			continue
		}
		switch r {
		case '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i})
			i++
			continue
		case ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i})
			i++
			continue
		case ',':
			toks = append(toks, token{kind: tokComma, text: ",", pos: i})
			i++
			continue
		}
		for _, o := range operators {
			if strings.HasPrefix(src[i:], o.text) {
				toks = append(toks, token{kind: tokOp, op: o.op, text: o.text, pos: i})
				i += len(o.text)
				continue next
			}
		}
		if unicode.IsLetter(r) || r == '_' {
			start := i
			for i < len(src) {
				r, size := utf8.DecodeRuneInString(src[i:])
				if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
					break
				}
				i += size
			}
			word := src[start:i]
			if op, ok := wordOps[word]; ok {
				toks = append(toks, token{kind: tokOp, op: op, text: word, pos: start})
			} else {
				toks = append(toks, token{kind: tokIdent, text: word, pos: start})
			}
			continue
		}
		return nil, errors.Wrapf(ErrUnsupported, "%q at %d", r, i)
	}
	return append(toks, token{kind: tokEOF, pos: len(src)}), nil
}

// parser binds, from tightest to loosest: NOT, AND, XOR, OR, implication
// (right associative), equivalence.
type parser struct {
	toks []token
	i    int
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) accept(op opKind) bool {
	if t := p.peek(); t.kind == tokOp && t.op == op {
		p.i++
		return true
	}
	return false
}

func (p *parser) parseIff() (*node, error) {
	left, err := p.parseImplies()
	if err != nil {
		return nil, err
	}
	for p.accept(opIff) {
		right, err := p.parseImplies()
		if err != nil {
			return nil, err
		}
		left = &node{op: opIff, args: []*node{left, right}}
	}
	return left, nil
}

func (p *parser) parseImplies() (*node, error) {
	left, err := p.parseBinary(opOr)
	if err != nil {
		return nil, err
	}
	if !p.accept(opImplies) {
		return left, nil
	}
	right, err := p.parseImplies()
	if err != nil {
		return nil, err
	}
	return &node{op: opImplies, args: []*node{left, right}}, nil
}

// tighter maps each left-associative level to the one it is built from.
var tighter = map[opKind]opKind{opOr: opXor, opXor: opAnd, opAnd: opNot}

func (p *parser) parseBinary(op opKind) (*node, error) {
	operand := func() (*node, error) {
		if sub := tighter[op]; sub != opNot {
			return p.parseBinary(sub)
		}
		return p.parseUnary()
	}
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for p.accept(op) {
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &node{op: op, args: []*node{left, right}}
	}
	return left, nil
}

func (p *parser) parseUnary() (*node, error) {
	if p.accept(opNot) {
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &node{op: opNot, args: []*node{x}}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (*node, error) {
	t := p.next()
	switch t.kind {
	case tokIdent:
		if v, ok := constants[t.text]; ok {
			return &node{op: opConst, val: v}, nil
		}
		if p.peek().kind != tokLParen {
			return &node{op: opVar, name: t.text}, nil
		}
		op, ok := functions[t.text]
		if !ok {
			return nil, errors.Wrapf(ErrUnsupported, "function %s at %d", t.text, t.pos)
		}
		p.next()
		a, err := p.parseIff()
		if err != nil {
			return nil, err
		}
		if c := p.next(); c.kind != tokComma {
			return nil, errors.Wrapf(ErrSyntax, "%s takes 2 arguments, expected , at %d", t.text, c.pos)
		}
		b, err := p.parseIff()
		if err != nil {
			return nil, err
		}
		if c := p.next(); c.kind != tokRParen {
			return nil, errors.Wrapf(ErrSyntax, "%s takes 2 arguments, expected ) at %d", t.text, c.pos)
		}
		return &node{op: op, args: []*node{a, b}}, nil
	case tokLParen:
		x, err := p.parseIff()
		if err != nil {
			return nil, err
		}
		if c := p.next(); c.kind != tokRParen {
			return nil, errors.Wrapf(ErrSyntax, "expected ) at %d", c.pos)
		}
		return x, nil
	case tokEOF:
		return nil, errors.Wrap(ErrSyntax, "unexpected end of expression")
	}
	return nil, errors.Wrapf(ErrSyntax, "unexpected %q at %d", t.text, t.pos)
}

func parse(src string) (*node, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	n, err := p.parseIff()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, errors.Wrapf(ErrSyntax, "unexpected %q at %d", t.text, t.pos)
	}
	return n, nil
}
