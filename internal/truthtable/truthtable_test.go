package truthtable

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/pborges/kmap/internal/expr"
)

func TestGenerate_Minterms(t *testing.T) {
	tab, err := Generate(Config{
		Variables:   []string{"p", "q", "r"},
		Expressions: []string{"p & q", "~r", "p ⊕ q"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if tab.Len() != 8 {
		t.Fatalf("got %d rows", tab.Len())
	}
	want := [][]int{
		{6, 7},
		{0, 2, 4, 6},
		{2, 3, 4, 5},
	}
	for col, w := range want {
		got, err := tab.Minterms(col)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(w, got); diff != "" {
			t.Errorf("column %d (-want +got):\n%s", col, diff)
		}
	}
	if _, err := tab.Minterms(3); !errors.Is(err, ErrColumn) {
		t.Errorf("got %v, want ErrColumn", err)
	}
}

func TestGenerate_RowOrder(t *testing.T) {
	tab, err := Generate(Config{Variables: []string{"a", "b"}, Expressions: []string{"a"}})
	if err != nil {
		t.Fatal(err)
	}
	idx, values, results := tab.Row(2)
	if idx != 2 {
		t.Errorf("index %d", idx)
	}
	if diff := cmp.Diff([]bool{true, false}, values); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]bool{true}, results); diff != "" {
		t.Errorf("results (-want +got):\n%s", diff)
	}

	rev, err := Generate(Config{Variables: []string{"a", "b"}, Expressions: []string{"a"}, Reverse: true})
	if err != nil {
		t.Fatal(err)
	}
	if idx, _, _ := rev.Row(0); idx != 3 {
		t.Errorf("reversed first row is index %d, want 3", idx)
	}
	m, _ := rev.Minterms(0)
	if diff := cmp.Diff([]int{2, 3}, m); diff != "" {
		t.Errorf("reversing changed minterms (-want +got):\n%s", diff)
	}
}

func TestGenerate_Errors(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want error
	}{
		{"no variables", Config{}, ErrVariableCount},
		{"too many", Config{Variables: strings.Split("a,b,c,d,e,f,g,h,i", ",")}, ErrVariableCount},
		{"bad name", Config{Variables: []string{"1x"}}, ErrVariableName},
		{"reserved name", Config{Variables: []string{"true"}}, ErrVariableName},
		{"operator word", Config{Variables: []string{"and"}}, ErrVariableName},
		{"duplicate", Config{Variables: []string{"a", "a"}}, ErrVariableName},
		{"unknown variable", Config{Variables: []string{"a"}, Expressions: []string{"a & b"}}, expr.ErrUndefinedVariable},
		{"bad expression", Config{Variables: []string{"a"}, Expressions: []string{"a + 1"}}, expr.ErrUnsupported},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Generate(tc.cfg); !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestWriteCSV(t *testing.T) {
	tab, err := Generate(Config{Variables: []string{"p", "q"}, Expressions: []string{"p | q"}})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := tab.WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}
	want := "p,q,p | q\n0,0,0\n0,1,1\n1,0,1\n1,1,1\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestWriteText(t *testing.T) {
	tab, err := Generate(Config{Variables: []string{"p", "q"}, Expressions: []string{"p & q"}})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	tab.WriteText(&buf)
	out := buf.String()
	for _, s := range []string{"p & q", "#"} {
		if !strings.Contains(out, s) {
			t.Errorf("output lacks %q:\n%s", s, out)
		}
	}
	if got := strings.Count(out, "\n"); got < 6 {
		t.Errorf("expected header and four rows, got %d lines:\n%s", got, out)
	}
}

func TestWriteCSV_Formats(t *testing.T) {
	tab, err := Generate(Config{
		Variables:        []string{"p", "q"},
		Expressions:      []string{"p → q"},
		ExpressionFormat: TrueFalse,
	})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := tab.WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}
	want := "p,q,p → q\n0,0,T\n0,1,T\n1,0,F\n1,1,T\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	tab, err = Generate(Config{
		Variables:      []string{"p"},
		Expressions:    []string{"~p"},
		VariableFormat: TrueFalse,
	})
	if err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	if err := tab.WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("p,~p\nF,1\nT,0\n", buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"1/0": Binary, "binary": Binary, "T/F": TrueFalse, "tf": TrueFalse}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseFormat("yes/no"); !errors.Is(err, ErrFormat) {
		t.Errorf("got %v, want ErrFormat", err)
	}
}

func TestSteps(t *testing.T) {
	tab, err := Generate(Config{Variables: []string{"p", "q"}, Expressions: []string{"p", "p & ~q"}})
	if err != nil {
		t.Fatal(err)
	}
	steps, err := tab.Steps(2, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := []expr.Step{
		{Stage: "expression", Expr: "p & ~q"},
		{Stage: "substitute variables", Expr: "true & ~false"},
		{Stage: "evaluate negations (~)", Expr: "true & true"},
		{Stage: "evaluate AND (&)", Expr: "true"},
	}
	if diff := cmp.Diff(want, steps); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if _, err := tab.Steps(4, 0); !errors.Is(err, ErrRow) {
		t.Errorf("got %v, want ErrRow", err)
	}
	if _, err := tab.Steps(0, 2); !errors.Is(err, ErrColumn) {
		t.Errorf("got %v, want ErrColumn", err)
	}
}
