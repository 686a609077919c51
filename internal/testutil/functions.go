// Package testutil holds helpers shared by package tests: seeded random
// Boolean functions and a reference evaluator for rendered sums of products.
package testutil

import (
	"fmt"
	"math/rand"
	"strings"
)

// Function is a single-output Boolean function in index form.
type Function struct {
	Vars      []string
	Minterms  []int
	DontCares []int
}

func (f Function) String() string {
	return fmt.Sprintf("f(%s) = m%v + d%v", strings.Join(f.Vars, ","), f.Minterms, f.DontCares)
}

// Vars returns n single-letter variable names starting at A.
func Vars(n int) []string {
	vars := make([]string, n)
	for i := range vars {
		vars[i] = string(rune('A' + i))
	}
	return vars
}

// RandomFunctions returns count functions of n variables. Each index is a
// minterm, a don't-care or neither; dontCares=false never draws don't-cares.
// The same seed always yields the same functions.
func RandomFunctions(seed int64, n, count int, dontCares bool) []Function {
	rng := rand.New(rand.NewSource(seed))
	out := make([]Function, count)
	for i := range out {
		f := Function{Vars: Vars(n)}
		for idx := 0; idx < 1<<n; idx++ {
			switch r := rng.Intn(6); {
			case r < 2:
				f.Minterms = append(f.Minterms, idx)
			case r == 2 && dontCares:
				f.DontCares = append(f.DontCares, idx)
			}
		}
		out[i] = f
	}
	return out
}

// EvalSOP evaluates a sum of products written as "~A & B | C" (or the
// constants "0" and "1") at truth-table index idx. Variable j takes bit
// len(vars)-1-j of idx.
func EvalSOP(sop string, vars []string, idx int) (bool, error) {
	switch strings.TrimSpace(sop) {
	case "0":
		return false, nil
	case "1":
		return true, nil
	}
	pos := make(map[string]int, len(vars))
	for j, v := range vars {
		pos[v] = len(vars) - 1 - j
	}
	for _, product := range strings.Split(sop, "|") {
		holds := true
		for _, lit := range strings.Split(product, "&") {
			lit = strings.TrimSpace(lit)
			neg := strings.HasPrefix(lit, "~")
			name := strings.TrimPrefix(lit, "~")
			bit, ok := pos[name]
			if !ok {
				return false, fmt.Errorf("unknown literal %q in %q", lit, sop)
			}
			if (idx>>bit&1 == 1) == neg {
				holds = false
				break
			}
		}
		if holds {
			return true, nil
		}
	}
	return false, nil
}
