package logic

import (
	"strings"

	"github.com/pkg/errors"
)

// Implicant represents a product term over Width variables using bitmasks.
// Mask has 1=care, 0=don't-care; Value holds the bit values for care
// positions. Variable i (0 = first, leftmost) lives in bit Width-1-i, so the
// pattern string reads like the zero-padded binary form of an index.
type Implicant struct {
	Value uint64
	Mask  uint64
	Width int
}

// Minterm returns the fully specified implicant for index idx.
func Minterm(idx, width int) Implicant {
	full := fullMask(width)
	return Implicant{Value: uint64(idx) & full, Mask: full, Width: width}
}

// ParseImplicant reads a pattern over {0,1,-} such as "1-01".
func ParseImplicant(pattern string) (Implicant, error) {
	width := len(pattern)
	if width == 0 || width > 64 {
		return Implicant{}, errors.Wrapf(ErrPattern, "%q", pattern)
	}
	imp := Implicant{Width: width}
	for i := 0; i < width; i++ {
		bit := uint64(1) << (width - 1 - i)
		switch pattern[i] {
		case '0':
			imp.Mask |= bit
		case '1':
			imp.Mask |= bit
			imp.Value |= bit
		case '-':
		default:
			return Implicant{}, errors.Wrapf(ErrPattern, "%q: unexpected %q at %d", pattern, pattern[i], i)
		}
	}
	return imp, nil
}

// String renders the implicant as a {0,1,-} pattern.
func (imp Implicant) String() string {
	var b strings.Builder
	b.Grow(imp.Width)
	for i := 0; i < imp.Width; i++ {
		bit := uint64(1) << (imp.Width - 1 - i)
		switch {
		case imp.Mask&bit == 0:
			b.WriteByte('-')
		case imp.Value&bit != 0:
			b.WriteByte('1')
		default:
			b.WriteByte('0')
		}
	}
	return b.String()
}

// Covers reports whether index idx matches every care position.
func (imp Implicant) Covers(idx int) bool {
	if idx < 0 || uint64(idx) > fullMask(imp.Width) {
		return false
	}
	return uint64(idx)&imp.Mask == imp.Value&imp.Mask
}

// Literals returns the number of care positions.
func (imp Implicant) Literals() int {
	n := 0
	for m := imp.Mask & fullMask(imp.Width); m != 0; m &= m - 1 {
		n++
	}
	return n
}

// Expand returns every index the implicant stands for, in ascending order.
func (imp Implicant) Expand() []int {
	// Collect don't-care bit positions within variable range
	var dcBits []int
	for b := 0; b < imp.Width; b++ {
		if imp.Mask&(uint64(1)<<b) == 0 {
			dcBits = append(dcBits, b)
		}
	}

	// Base value: care bits are fixed
	base := imp.Value & imp.Mask

	n := 1 << len(dcBits)
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		m := base
		for j, bit := range dcBits {
			if i&(1<<j) != 0 {
				m |= uint64(1) << bit
			}
		}
		out = append(out, int(m))
	}
	return out
}

// Product renders the implicant as an AND of literals over vars, using ~ for
// negation. An implicant with no care positions is the constant "1".
func (imp Implicant) Product(vars []string) string {
	var lits []string
	for i := 0; i < imp.Width && i < len(vars); i++ {
		bit := uint64(1) << (imp.Width - 1 - i)
		if imp.Mask&bit == 0 {
			continue // don't-care
		}
		if imp.Value&bit == 0 {
			lits = append(lits, "~"+vars[i])
		} else {
			lits = append(lits, vars[i])
		}
	}
	if len(lits) == 0 {
		return "1"
	}
	return strings.Join(lits, " & ")
}

// SumOfProducts joins the products of imps with " | ". No implicants is the
// constant "0".
func SumOfProducts(imps []Implicant, vars []string) string {
	if len(imps) == 0 {
		return "0"
	}
	terms := make([]string, len(imps))
	for i, imp := range imps {
		terms[i] = imp.Product(vars)
	}
	return strings.Join(terms, " | ")
}

// tryMerge attempts to merge two implicants that have the same mask (same
// set of care variables) and differ in exactly one variable's polarity.
func tryMerge(a, b Implicant) (Implicant, bool) {
	if a.Mask != b.Mask || a.Width != b.Width {
		return Implicant{}, false
	}
	diff := (a.Value ^ b.Value) & a.Mask
	if diff == 0 || (diff&(diff-1)) != 0 {
		return Implicant{}, false // 0 or >1 bits differ
	}
	// Exactly one bit differs, so that variable drops out
	return Implicant{
		Value: a.Value &^ diff,
		Mask:  a.Mask &^ diff,
		Width: a.Width,
	}, true
}

func fullMask(width int) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<width - 1
}
