package logic

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// MaxVariables bounds the variable count the minimizer accepts. The
// combination step is quadratic in the number of terms per round, so large
// counts are slow long before they are wrong.
const MaxVariables = 16

// QuineMcCluskey minimizes a single-output Boolean function given as
// minterm indices plus optional don't-care indices. Index i assigns variable
// j the bit len(variables)-1-j of i, so the first variable is the most
// significant.
//
// Prime implicants are computed on first use and cached. An instance is not
// safe for concurrent use.
type QuineMcCluskey struct {
	variables []string
	minterms  []int
	dontCares []int
	terms     []int // minterms and don't-cares, ascending

	required mapset.Set[int]

	primes   []Term
	computed bool
}

// New validates the inputs and returns a minimizer. Duplicate indices are
// collapsed; indices outside [0, 2^n) and indices listed as both minterm and
// don't-care are rejected.
func New(variables []string, minterms, dontCares []int) (*QuineMcCluskey, error) {
	n := len(variables)
	if n < 1 || n > MaxVariables {
		return nil, errors.Wrapf(ErrVariableCount, "got %d, want 1 to %d", n, MaxVariables)
	}
	size := 1 << n

	m, err := normalizeIndices(minterms, size)
	if err != nil {
		return nil, errors.WithMessage(err, "minterms")
	}
	d, err := normalizeIndices(dontCares, size)
	if err != nil {
		return nil, errors.WithMessage(err, "don't-cares")
	}

	required := mapset.NewThreadUnsafeSet[int](m...)
	for _, idx := range d {
		if required.Contains(idx) {
			return nil, errors.Wrapf(ErrOverlap, "index %d", idx)
		}
	}

	terms := make([]int, 0, len(m)+len(d))
	terms = append(terms, m...)
	terms = append(terms, d...)
	slices.Sort(terms)

	return &QuineMcCluskey{
		variables: slices.Clone(variables),
		minterms:  m,
		dontCares: d,
		terms:     terms,
		required:  required,
	}, nil
}

func normalizeIndices(in []int, size int) ([]int, error) {
	out := slices.Clone(in)
	slices.Sort(out)
	out = slices.Compact(out)
	for _, idx := range out {
		if idx < 0 || idx >= size {
			return nil, errors.Wrapf(ErrIndexOutOfRange, "index %d, want 0 to %d", idx, size-1)
		}
	}
	return out, nil
}

// Variables returns the variable names in index bit order.
func (q *QuineMcCluskey) Variables() []string { return slices.Clone(q.variables) }

// Minterms returns the sorted minterm indices.
func (q *QuineMcCluskey) Minterms() []int { return slices.Clone(q.minterms) }

// DontCares returns the sorted don't-care indices.
func (q *QuineMcCluskey) DontCares() []int { return slices.Clone(q.dontCares) }

// NumVars returns the number of variables.
func (q *QuineMcCluskey) NumVars() int { return len(q.variables) }

// IsMinterm reports whether idx is one of the required minterms.
func (q *QuineMcCluskey) IsMinterm(idx int) bool { return q.required.Contains(idx) }

// IsDontCare reports whether idx is a don't-care.
func (q *QuineMcCluskey) IsDontCare(idx int) bool {
	_, found := slices.BinarySearch(q.dontCares, idx)
	return found
}

// PrimeImplicants returns every prime implicant of the function, in the
// order the combination rounds discover them. Don't-cares take part in
// forming implicants. The result is computed once per instance.
func (q *QuineMcCluskey) PrimeImplicants() []Implicant {
	q.findPrimeImplicants()
	out := make([]Implicant, len(q.primes))
	for i, t := range q.primes {
		out[i] = t.Implicant()
	}
	return out
}

// PrimeTerms is PrimeImplicants with the indices each implicant groups,
// don't-cares included.
func (q *QuineMcCluskey) PrimeTerms() []Term {
	q.findPrimeImplicants()
	out := make([]Term, len(q.primes))
	for i, t := range q.primes {
		out[i] = t.clone()
	}
	return out
}

// findPrimeImplicants implements the QM merge phase. Every pair of terms in
// the current generation that differs in exactly one fixed bit merges into
// the next generation; terms that never merge in their round are prime.
func (q *QuineMcCluskey) findPrimeImplicants() {
	if q.computed {
		return
	}
	q.computed = true

	// Start with minterms and don't-cares as fully specified terms
	current := make([]Term, len(q.terms))
	for i, idx := range q.terms {
		current[i] = NewTerm([]int{idx}, q.variables, !q.required.Contains(idx))
	}

	var primes []Term
	for len(current) > 0 {
		used := make([]bool, len(current))
		var next []Term
		seen := make(map[Implicant]bool)

		// Try all pairs
		for i := 0; i < len(current); i++ {
			for j := i + 1; j < len(current); j++ {
				merged, ok := mergeTerms(current[i], current[j])
				if !ok {
					continue
				}
				used[i] = true
				used[j] = true
				if !seen[merged.imp] {
					seen[merged.imp] = true
					next = append(next, merged)
				}
			}
		}

		// Unmerged terms are prime
		for i, t := range current {
			if !used[i] {
				primes = append(primes, t)
			}
		}

		current = next
	}
	q.primes = primes
}

// Coverage expands every don't-care position of imp and returns the
// resulting indices that are minterms of the function, ascending.
// Don't-cares are never part of the coverage.
func (q *QuineMcCluskey) Coverage(imp Implicant) []int {
	var out []int
	for _, idx := range imp.Expand() {
		if q.required.Contains(idx) {
			out = append(out, idx)
		}
	}
	return out
}

// EssentialPrimeImplicants returns the prime implicants that are the only
// cover of at least one minterm, ordered by the first minterm that makes
// each one essential.
func (q *QuineMcCluskey) EssentialPrimeImplicants() []Implicant {
	primes := q.PrimeImplicants()

	// Map each minterm to the prime implicants that cover it
	covering := make(map[int][]int, len(q.minterms))
	for pi, p := range primes {
		for _, m := range q.Coverage(p) {
			covering[m] = append(covering[m], pi)
		}
	}

	var essential []Implicant
	seen := make(map[int]bool)
	for _, m := range q.minterms {
		pis := covering[m]
		if len(pis) != 1 || seen[pis[0]] {
			continue
		}
		seen[pis[0]] = true
		essential = append(essential, primes[pis[0]])
	}
	return essential
}

// Cover selects the prime implicants of the minimized expression: the
// essential ones, then greedily whichever remaining implicant covers the most
// still-uncovered minterms, the earliest discovered winning ties.
func (q *QuineMcCluskey) Cover() ([]Implicant, error) {
	essential := q.EssentialPrimeImplicants()

	uncovered := mapset.NewThreadUnsafeSet[int](q.minterms...)
	selected := slices.Clone(essential)
	chosen := make(map[Implicant]bool, len(essential))
	for _, e := range essential {
		chosen[e] = true
		for _, m := range q.Coverage(e) {
			uncovered.Remove(m)
		}
	}

	candidates := make([]Implicant, 0)
	for _, p := range q.PrimeImplicants() {
		if !chosen[p] {
			candidates = append(candidates, p)
		}
	}

	for uncovered.Cardinality() > 0 {
		best := -1
		bestCount := 0
		for ci, c := range candidates {
			if chosen[c] {
				continue
			}
			count := 0
			for _, m := range q.Coverage(c) {
				if uncovered.Contains(m) {
					count++
				}
			}
			if count > bestCount {
				best, bestCount = ci, count
			}
		}
		if best < 0 {
			left := uncovered.ToSlice()
			slices.Sort(left)
			return selected, errors.Wrapf(ErrIncompleteCover, "uncovered %v", left)
		}
		pick := candidates[best]
		chosen[pick] = true
		selected = append(selected, pick)
		for _, m := range q.Coverage(pick) {
			uncovered.Remove(m)
		}
	}
	return selected, nil
}

// Minimize returns the minimized sum-of-products expression: products of
// literals joined by " & ", negation written as a ~ prefix, products joined
// by " | ". A function without minterms is "0"; one whose only cover is the
// empty product is "1".
func (q *QuineMcCluskey) Minimize() (string, error) {
	if len(q.minterms) == 0 {
		return "0", nil
	}
	selected, err := q.Cover()
	if err != nil {
		return "", err
	}
	return SumOfProducts(selected, q.variables), nil
}
