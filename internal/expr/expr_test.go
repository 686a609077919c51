package expr

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func TestMinterms(t *testing.T) {
	pq := []string{"p", "q"}
	pqr := []string{"p", "q", "r"}
	cases := []struct {
		src  string
		vars []string
		want []int
	}{
		{"p & q", pq, []int{3}},
		{"p && q", pq, []int{3}},
		{"p ∧ q", pq, []int{3}},
		{"p and q", pq, []int{3}},
		{"p | q", pq, []int{1, 2, 3}},
		{"p ∨ q", pq, []int{1, 2, 3}},
		{"p or q", pq, []int{1, 2, 3}},
		{"~p", pq, []int{0, 1}},
		{"¬p", pq, []int{0, 1}},
		{"not p", pq, []int{0, 1}},
		{"!(p || q)", pq, []int{0}},
		{"p ^ q", pq, []int{1, 2}},
		{"p ⊕ q", pq, []int{1, 2}},
		{"p != q", pq, []int{1, 2}},
		{"p ↔ q", pq, []int{0, 3}},
		{"p <-> q", pq, []int{0, 3}},
		{"p → q", pq, []int{0, 1, 3}},
		{"p -> q", pq, []int{0, 1, 3}},
		{"implies(p, q)", pq, []int{0, 1, 3}},
		{"xor(p, q)", pq, []int{1, 2}},
		{"iff(p, q) & r", pqr, []int{1, 7}},
		{"p & q | ~r", pqr, []int{0, 2, 4, 6, 7}},
		{"p | q & r", pqr, []int{3, 4, 5, 6, 7}},
		{"p & q ^ r", pqr, []int{1, 3, 5, 6}},
		{"p ^ q | r", pqr, []int{1, 2, 3, 4, 5, 7}},
		{"p → q → r", pqr, []int{0, 1, 2, 3, 4, 5, 7}},
		{"not p and q", pq, []int{1}},
		{"true", []string{"p"}, []int{0, 1}},
		{"p & false", []string{"p"}, nil},
		{"candy & p", []string{"candy", "p"}, []int{3}},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			e, err := Parse(tc.src)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			got, err := e.Minterms(tc.vars)
			if err != nil {
				t.Fatalf("minterms: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	cases := []struct {
		src  string
		want error
	}{
		{"", ErrEmpty},
		{"   ", ErrEmpty},
		{"p + q", ErrUnsupported},
		{"p > 1", ErrUnsupported},
		{"'x' == p", ErrUnsupported},
		{"foo(p, q)", ErrUnsupported},
		{"p & (q", ErrSyntax},
		{"p &", ErrSyntax},
		{"p q", ErrSyntax},
		{"implies(p)", ErrSyntax},
		{"and p", ErrSyntax},
	}
	for _, tc := range cases {
		if err := Validate(tc.src); !errors.Is(err, tc.want) {
			t.Errorf("%q: got %v, want %v", tc.src, err, tc.want)
		}
	}
}

func TestCanonical(t *testing.T) {
	cases := map[string]string{
		"p&q^r":          "p & q ^ r",
		"(p | q) & ~r":   "(p | q) & ~r",
		"not (p and q)":  "~(p & q)",
		"implies(a, b)":  "a → b",
		"p -> q -> r":    "p → q → r",
		"(p → q) → r":    "(p → q) → r",
		"p == q <-> r":   "p ↔ q ↔ r",
		"p ↔ (q ↔ r)":    "p ↔ (q ↔ r)",
		"¬¬p ∨ False":    "~~p | false",
		"xor(p | q, r)":  "(p | q) ^ r",
		"iff(p & q, r)":  "p & q ↔ r",
		"p ^ (q ^ r)":    "p ^ (q ^ r)",
		"((p))":          "p",
		"p and (q or r)": "p & (q | r)",
	}
	for in, want := range cases {
		e, err := Parse(in)
		if err != nil {
			t.Errorf("%q: %v", in, err)
			continue
		}
		if got := e.Canonical(); got != want {
			t.Errorf("Canonical(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEvaluable(t *testing.T) {
	e, err := Parse("A & B ^ C")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := e.Evaluable(), "(([A] && [B]) != [C])"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	// With A=B=false and C=true the AND is false, so the XOR is true.
	got, err := e.Eval(map[string]bool{"A": false, "B": false, "C": true})
	if err != nil {
		t.Fatal(err)
	}
	if !got {
		t.Errorf("A & B ^ C evaluated as A & (B ^ C)")
	}
}

func TestVars(t *testing.T) {
	e, err := Parse("r & p | ~q & p")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"p", "q", "r"}, e.Vars()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestEval_UndefinedVariable(t *testing.T) {
	e, err := Parse("p & q")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.Eval(map[string]bool{"p": true}); !errors.Is(err, ErrUndefinedVariable) {
		t.Errorf("got %v, want ErrUndefinedVariable", err)
	}
	if _, err := e.Minterms([]string{"p"}); !errors.Is(err, ErrUndefinedVariable) {
		t.Errorf("minterms: got %v, want ErrUndefinedVariable", err)
	}
	if _, err := e.Steps(map[string]bool{"q": true}); !errors.Is(err, ErrUndefinedVariable) {
		t.Errorf("steps: got %v, want ErrUndefinedVariable", err)
	}
}

func TestIsReserved(t *testing.T) {
	for _, w := range []string{"and", "or", "not", "true", "False", "implies", "xor", "iff"} {
		if !IsReserved(w) {
			t.Errorf("%q not reserved", w)
		}
	}
	for _, w := range []string{"p", "candy", "android", "nota"} {
		if IsReserved(w) {
			t.Errorf("%q reserved", w)
		}
	}
}
