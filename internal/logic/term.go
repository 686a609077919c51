package logic

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Term is a group of truth-table indices over a fixed variable list, as
// produced by one combination step of the minimizer. A Term is not modified
// after NewTerm returns.
type Term struct {
	Indices   []int
	Variables []string
	// DontCare is set when every index of the term is a don't-care.
	DontCare bool

	binary []string
	imp    Implicant
}

// NewTerm builds a term from its indices. The indices are copied, sorted and
// deduplicated; the variable list is copied too.
func NewTerm(indices []int, variables []string, dontCare bool) Term {
	idx := slices.Clone(indices)
	slices.Sort(idx)
	idx = slices.Compact(idx)

	n := len(variables)
	t := Term{
		Indices:   idx,
		Variables: slices.Clone(variables),
		DontCare:  dontCare,
		binary:    make([]string, len(idx)),
	}
	for i, v := range idx {
		t.binary[i] = fmt.Sprintf("%0*b", n, v)
	}

	// The implicant fixes the bits every index agrees on.
	t.imp = Implicant{Width: n}
	if len(idx) > 0 {
		var varying uint64
		for _, v := range idx[1:] {
			varying |= uint64(v ^ idx[0])
		}
		t.imp.Mask = fullMask(n) &^ varying
		t.imp.Value = uint64(idx[0]) & t.imp.Mask
	}
	return t
}

// Binary returns the zero-padded binary form of each index, len(Variables)
// digits wide.
func (t Term) Binary() []string {
	return slices.Clone(t.binary)
}

// Implicant returns the smallest product term containing every index.
func (t Term) Implicant() Implicant {
	return t.imp
}

// Expression renders the term as a product of the literals shared by all of
// its indices. An empty term is "0"; a term spanning the whole truth table is
// "1".
func (t Term) Expression() string {
	if len(t.Indices) == 0 {
		return "0"
	}
	if len(t.Indices) == 1<<len(t.Variables) {
		return "1"
	}
	return t.imp.Product(t.Variables)
}

func (t Term) String() string {
	return fmt.Sprintf("Term(%v, %s)", t.Indices, t.Expression())
}

// clone returns a copy that shares no slices with t.
func (t Term) clone() Term {
	t.Indices = slices.Clone(t.Indices)
	t.Variables = slices.Clone(t.Variables)
	t.binary = slices.Clone(t.binary)
	return t
}

// mergeTerms combines two terms whose implicants differ in a single fixed
// position. The child holds the union of both index sets.
func mergeTerms(a, b Term) (Term, bool) {
	imp, ok := tryMerge(a.imp, b.imp)
	if !ok {
		return Term{}, false
	}
	idx := make([]int, 0, len(a.Indices)+len(b.Indices))
	idx = append(idx, a.Indices...)
	idx = append(idx, b.Indices...)
	child := NewTerm(idx, a.Variables, a.DontCare && b.DontCare)
	child.imp = imp
	return child, true
}
