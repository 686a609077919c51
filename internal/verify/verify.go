// Package verify checks a minimized sum of products against the function it
// was derived from, using a SAT solver to search for a disagreeing input.
package verify

import (
	"fmt"
	"math/bits"

	"github.com/crillab/gophersat/bf"
	"github.com/pkg/errors"
)

var (
	ErrNoVariables     = errors.New("no variables")
	ErrUnknownVariable = errors.New("expression uses a variable outside the variable list")
	ErrNotSOP          = errors.New("expression is not a sum of products")
	ErrIndexOutOfRange = errors.New("index outside the truth table")
)

// Mismatch is returned by Check when the expression disagrees with the
// function on a care index.
type Mismatch struct {
	Index int
	Want  bool
	Got   bool
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("index %d: want %s, got %s", m.Index, bit(m.Want), bit(m.Got))
}

func bit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

type literal struct {
	name string
	neg  bool
}

// product is a conjunction of literals. An empty product is constant 1.
type product []literal

// sumOfProducts flattens e into its products. The constant 0 contributes none.
func sumOfProducts(e Expr) ([]product, error) {
	switch e := e.(type) {
	case ExprOr:
		a, err := sumOfProducts(e.A)
		if err != nil {
			return nil, err
		}
		b, err := sumOfProducts(e.B)
		if err != nil {
			return nil, err
		}
		return append(a, b...), nil
	default:
		p, ok, err := flattenProduct(e)
		if err != nil || !ok {
			return nil, err
		}
		return []product{p}, nil
	}
}

// flattenProduct reports ok=false for a product containing the constant 0.
func flattenProduct(e Expr) (product, bool, error) {
	switch e := e.(type) {
	case ExprAnd:
		a, okA, err := flattenProduct(e.A)
		if err != nil {
			return nil, false, err
		}
		b, okB, err := flattenProduct(e.B)
		if err != nil {
			return nil, false, err
		}
		return append(a, b...), okA && okB, nil
	case ExprIdent:
		return product{{name: e.Name}}, true, nil
	case ExprNot:
		if id, ok := e.X.(ExprIdent); ok {
			return product{{name: id.Name, neg: true}}, true, nil
		}
	case ExprConst:
		return nil, e.Value, nil
	}
	return nil, false, errors.Wrapf(ErrNotSOP, "%T inside a product", e)
}

// checkIndices requires every index to address a row of an n-variable table.
func checkIndices(kind string, n int, indices []int) error {
	for _, idx := range indices {
		if idx < 0 || (n < bits.UintSize-1 && idx >= 1<<n) {
			return errors.Wrapf(ErrIndexOutOfRange, "%s %d with %d variables", kind, idx, n)
		}
	}
	return nil
}

// Check parses sop and confirms it is 1 on every minterm and 0 on every
// index that is neither a minterm nor a don't-care. Index i binds vars[j]
// to bit len(vars)-1-j of i.
//
// Two searches are run: a minterm no product covers, then a product that
// covers an index outside the on-set and don't-cares.
func Check(vars []string, minterms, dontCares []int, sop string) error {
	if len(vars) == 0 {
		return ErrNoVariables
	}
	if err := checkIndices("minterm", len(vars), minterms); err != nil {
		return err
	}
	if err := checkIndices("don't-care", len(vars), dontCares); err != nil {
		return err
	}
	e, err := Parse(sop)
	if err != nil {
		return errors.WithMessagef(err, "parse %q", sop)
	}
	known := make(map[string]bool, len(vars))
	for _, v := range vars {
		known[v] = true
	}
	for _, id := range Idents(e) {
		if !known[id] {
			return errors.Wrapf(ErrUnknownVariable, "%q", id)
		}
	}
	products, err := sumOfProducts(e)
	if err != nil {
		return errors.WithMessagef(err, "%q", sop)
	}

	c := checker{vars: vars, expr: e, minterms: minterms}
	if idx, ok := c.uncovered(products); ok {
		return c.mismatch(idx)
	}
	if idx, ok := c.overcovered(products, dontCares); ok {
		return c.mismatch(idx)
	}
	return nil
}

type checker struct {
	vars     []string
	expr     Expr
	minterms []int
}

func (c checker) mismatch(idx int) *Mismatch {
	want := false
	for _, m := range c.minterms {
		if m == idx {
			want = true
			break
		}
	}
	return &Mismatch{Index: idx, Want: want, Got: Eval(c.expr, c.assignment(idx))}
}

func (c checker) assignment(idx int) map[string]bool {
	n := len(c.vars)
	assign := make(map[string]bool, n)
	for j, v := range c.vars {
		assign[v] = idx>>(n-1-j)&1 == 1
	}
	return assign
}

func (c checker) index(model map[string]bool) int {
	idx := 0
	for j, v := range c.vars {
		if model[v] {
			idx |= 1 << (len(c.vars) - 1 - j)
		}
	}
	return idx
}

// uncovered looks for a minterm on which every product is 0.
func (c checker) uncovered(products []product) (int, bool) {
	if len(c.minterms) == 0 {
		return 0, false
	}
	var block []bf.Formula
	for _, p := range products {
		if len(p) == 0 {
			return 0, false
		}
		block = append(block, notProduct(p))
	}
	candidates := make([]bf.Formula, len(c.minterms))
	for i, m := range c.minterms {
		candidates[i] = bf.And(append(c.cube(m), block...)...)
	}
	model := bf.Solve(bf.Or(candidates...))
	if model == nil {
		return 0, false
	}
	return c.index(model), true
}

// overcovered looks for an index outside minterms and dontCares on which
// some product is 1.
func (c checker) overcovered(products []product, dontCares []int) (int, bool) {
	var block []bf.Formula
	for _, idx := range c.minterms {
		block = append(block, notProduct(c.cubeProduct(idx)))
	}
	for _, idx := range dontCares {
		block = append(block, notProduct(c.cubeProduct(idx)))
	}
	var candidates []bf.Formula
	for _, p := range products {
		f := append(literals(p), block...)
		if len(f) == 0 {
			// Constant 1 with nothing to exclude.
			return 0, true
		}
		candidates = append(candidates, bf.And(f...))
	}
	if len(candidates) == 0 {
		return 0, false
	}
	model := bf.Solve(bf.Or(candidates...))
	if model == nil {
		return 0, false
	}
	return c.index(model), true
}

func (c checker) cubeProduct(idx int) product {
	n := len(c.vars)
	p := make(product, n)
	for j, v := range c.vars {
		p[j] = literal{name: v, neg: idx>>(n-1-j)&1 == 0}
	}
	return p
}

func (c checker) cube(idx int) []bf.Formula {
	return literals(c.cubeProduct(idx))
}

func literals(p product) []bf.Formula {
	out := make([]bf.Formula, len(p))
	for i, l := range p {
		out[i] = bf.Var(l.name)
		if l.neg {
			out[i] = bf.Not(out[i])
		}
	}
	return out
}

// notProduct is the clause that falsifies p. p must be non-empty.
func notProduct(p product) bf.Formula {
	lits := make([]bf.Formula, len(p))
	for i, l := range p {
		lits[i] = bf.Var(l.name)
		if !l.neg {
			lits[i] = bf.Not(lits[i])
		}
	}
	return bf.Or(lits...)
}
