package expr

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSteps(t *testing.T) {
	cases := []struct {
		src    string
		assign map[string]bool
		want   []Step
	}{
		{
			"p and not q or r",
			map[string]bool{"p": true, "q": false, "r": false},
			[]Step{
				{"expression", "p & ~q | r"},
				{"substitute variables", "true & ~false | false"},
				{"evaluate negations (~)", "true & true | false"},
				{"evaluate AND (&)", "true | false"},
				{"evaluate OR (|)", "true"},
			},
		},
		{
			"(p | q) & r",
			map[string]bool{"p": false, "q": true, "r": true},
			[]Step{
				{"expression", "(p | q) & r"},
				{"substitute variables", "(false | true) & true"},
				{"evaluate OR (|)", "true & true"},
				{"evaluate AND (&)", "true"},
			},
		},
		{
			"p → q ↔ ~q → ~p",
			map[string]bool{"p": true, "q": false},
			[]Step{
				{"expression", "p → q ↔ ~q → ~p"},
				{"substitute variables", "true → false ↔ ~false → ~true"},
				{"evaluate negations (~)", "true → false ↔ true → false"},
				{"evaluate implications (→)", "false ↔ false"},
				{"evaluate equivalences (↔)", "true"},
			},
		},
		{
			"true",
			nil,
			[]Step{
				{"expression", "true"},
				{"substitute variables", "true"},
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			e, err := Parse(tc.src)
			if err != nil {
				t.Fatal(err)
			}
			got, err := e.Steps(tc.assign)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestSteps_AgreeWithEval(t *testing.T) {
	exprs := []string{
		"p & q ^ r",
		"~(p | q) → r",
		"xor(p, q & ~r) ↔ p",
		"(p ^ q) & (q ^ r) | ~p",
		"p -> (q -> (r -> p))",
	}
	vars := []string{"p", "q", "r"}
	for _, src := range exprs {
		e, err := Parse(src)
		if err != nil {
			t.Fatalf("%q: %v", src, err)
		}
		for idx := 0; idx < 8; idx++ {
			assign := make(map[string]bool)
			for j, v := range vars {
				assign[v] = idx>>(2-j)&1 == 1
			}
			want, err := e.Eval(assign)
			if err != nil {
				t.Fatal(err)
			}
			steps, err := e.Steps(assign)
			if err != nil {
				t.Fatal(err)
			}
			if last := steps[len(steps)-1].Expr; last != boolWord(want) {
				t.Errorf("%q at %d: steps end in %q, Eval gives %v", src, idx, last, want)
			}
		}
	}
}
