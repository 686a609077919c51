// Package truthtable evaluates expressions over every assignment of a
// variable list.
package truthtable

import (
	"encoding/csv"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"github.com/pborges/kmap/internal/expr"
)

const MaxVariables = 8

var (
	ErrVariableCount = errors.Errorf("truth tables support 1 to %d variables", MaxVariables)
	ErrVariableName  = errors.New("invalid variable name")
	ErrColumn        = errors.New("no such expression column")
	ErrFormat        = errors.New("unknown display format")
	ErrRow           = errors.New("no such row")
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Format selects how truth values are written.
type Format int

const (
	Binary    Format = iota // 1 and 0
	TrueFalse               // T and F
)

// ParseFormat accepts "1/0" or "binary", and "T/F" or "tf".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1/0", "10", "binary":
		return Binary, nil
	case "t/f", "tf":
		return TrueFalse, nil
	}
	return 0, errors.Wrapf(ErrFormat, "%q", s)
}

func (f Format) String() string {
	if f == TrueFalse {
		return "T/F"
	}
	return "1/0"
}

// Cell writes b in this format.
func (f Format) Cell(b bool) string {
	switch {
	case f == TrueFalse && b:
		return "T"
	case f == TrueFalse:
		return "F"
	case b:
		return "1"
	}
	return "0"
}

type Config struct {
	Variables   []string
	Expressions []string
	// Reverse lists rows from all-true down to all-false. Row indices, and so
	// minterms, are unaffected.
	Reverse bool
	// VariableFormat and ExpressionFormat apply to the variable and result
	// columns of WriteCSV and WriteText.
	VariableFormat   Format
	ExpressionFormat Format
}

// Table holds one result column per expression. Row i assigns Variables[j]
// the bit len(Variables)-1-j of i.
type Table struct {
	Variables   []string
	Expressions []string
	reverse     bool
	varFmt      Format
	exprFmt     Format
	parsed      []*expr.Expression
	results     [][]bool // results[index][expression]
}

// Generate validates the configuration and evaluates every expression on
// every row.
func Generate(cfg Config) (*Table, error) {
	n := len(cfg.Variables)
	if n < 1 || n > MaxVariables {
		return nil, errors.Wrapf(ErrVariableCount, "got %d", n)
	}
	seen := make(map[string]bool, n)
	for _, v := range cfg.Variables {
		if !identRe.MatchString(v) || expr.IsReserved(v) {
			return nil, errors.Wrapf(ErrVariableName, "%q", v)
		}
		if seen[v] {
			return nil, errors.Wrapf(ErrVariableName, "%q listed twice", v)
		}
		seen[v] = true
	}

	parsed := make([]*expr.Expression, len(cfg.Expressions))
	for i, src := range cfg.Expressions {
		e, err := expr.Parse(src)
		if err != nil {
			return nil, errors.WithMessagef(err, "expression %d", i+1)
		}
		parsed[i] = e
	}

	t := &Table{
		Variables:   append([]string(nil), cfg.Variables...),
		Expressions: append([]string(nil), cfg.Expressions...),
		reverse:     cfg.Reverse,
		varFmt:      cfg.VariableFormat,
		exprFmt:     cfg.ExpressionFormat,
		parsed:      parsed,
		results:     make([][]bool, 1<<n),
	}
	for idx := range t.results {
		assign := t.assignment(idx)
		t.results[idx] = make([]bool, len(parsed))
		for i, e := range parsed {
			v, err := e.Eval(assign)
			if err != nil {
				return nil, errors.WithMessagef(err, "expression %d", i+1)
			}
			t.results[idx][i] = v
		}
	}
	return t, nil
}

func (t *Table) assignment(idx int) map[string]bool {
	n := len(t.Variables)
	assign := make(map[string]bool, n)
	for j, v := range t.Variables {
		assign[v] = idx>>(n-1-j)&1 == 1
	}
	return assign
}

// Len returns the number of rows, 2^len(Variables).
func (t *Table) Len() int { return len(t.results) }

// Row returns the truth-table index shown at display position i, the
// variable values and the expression results.
func (t *Table) Row(i int) (idx int, values, results []bool) {
	idx = i
	if t.reverse {
		idx = len(t.results) - 1 - i
	}
	n := len(t.Variables)
	values = make([]bool, n)
	for j := range values {
		values[j] = idx>>(n-1-j)&1 == 1
	}
	return idx, values, append([]bool(nil), t.results[idx]...)
}

// Minterms returns the indices where expression col is true, ascending.
func (t *Table) Minterms(col int) ([]int, error) {
	if col < 0 || col >= len(t.Expressions) {
		return nil, errors.Wrapf(ErrColumn, "%d of %d", col, len(t.Expressions))
	}
	var out []int
	for idx, res := range t.results {
		if res[col] {
			out = append(out, idx)
		}
	}
	return out, nil
}

// Steps explains how expression col reaches its value at truth-table index
// idx.
func (t *Table) Steps(idx, col int) ([]expr.Step, error) {
	if col < 0 || col >= len(t.parsed) {
		return nil, errors.Wrapf(ErrColumn, "%d of %d", col, len(t.parsed))
	}
	if idx < 0 || idx >= len(t.results) {
		return nil, errors.Wrapf(ErrRow, "index %d of %d", idx, len(t.results))
	}
	return t.parsed[col].Steps(t.assignment(idx))
}

func (t *Table) header() []string {
	h := append([]string(nil), t.Variables...)
	return append(h, t.Expressions...)
}

func (t *Table) record(i int) []string {
	_, values, results := t.Row(i)
	rec := make([]string, 0, len(values)+len(results))
	for _, v := range values {
		rec = append(rec, t.varFmt.Cell(v))
	}
	for _, r := range results {
		rec = append(rec, t.exprFmt.Cell(r))
	}
	return rec
}

// WriteCSV writes a header of variable names then expressions, followed by
// one record per row in display order.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.header()); err != nil {
		return err
	}
	for i := 0; i < t.Len(); i++ {
		if err := cw.Write(t.record(i)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteText renders the table with a leading index column.
func (t *Table) WriteText(w io.Writer) {
	tw := tablewriter.NewWriter(w)
	tw.SetAutoFormatHeaders(false)
	tw.SetAlignment(tablewriter.ALIGN_CENTER)
	tw.SetHeader(append([]string{"#"}, t.header()...))
	for i := 0; i < t.Len(); i++ {
		idx, _, _ := t.Row(i)
		tw.Append(append([]string{strconv.Itoa(idx)}, t.record(i)...))
	}
	tw.Render()
}
