package main

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/pborges/kmap/internal/logic"
)

// maxIndex bounds every index and range end; no function over
// logic.MaxVariables inputs has a row beyond it.
const maxIndex = 1<<logic.MaxVariables - 1

var errBadIndex = errors.New("invalid index")

// listFlag collects every occurrence of a repeatable flag.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, "; ") }

func (l *listFlag) Set(s string) error {
	*l = append(*l, s)
	return nil
}

// parseVars splits a comma-separated variable list.
func parseVars(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.New("no variables given")
	}
	var out []string
	for _, v := range strings.Split(s, ",") {
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, errors.Errorf("empty variable name in %q", s)
		}
		if slices.Contains(out, v) {
			return nil, errors.Errorf("variable %q listed twice", v)
		}
		out = append(out, v)
	}
	return out, nil
}

// parseIndices reads a list such as "0,2,5-7" into ascending, distinct
// indices. Whitespace around items is ignored and an empty list is valid.
// Indices above maxIndex are rejected before any range is expanded.
func parseIndices(s string) ([]int, error) {
	var out []int
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(item, "-")
		a, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, errors.Wrapf(errBadIndex, "%q", item)
		}
		b := a
		if isRange {
			if b, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
				return nil, errors.Wrapf(errBadIndex, "range %q", item)
			}
			if b < a {
				return nil, errors.Errorf("range %q runs backwards", item)
			}
		}
		if b > maxIndex {
			return nil, errors.Wrapf(errBadIndex, "%q exceeds %d", item, maxIndex)
		}
		for i := a; i <= b; i++ {
			out = append(out, i)
		}
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}
