// Package expr evaluates the Boolean expressions typed into the truth table.
//
// Input may use programming, word or logic notation:
//
//	NOT  ~  !   ¬  not
//	AND  &  &&  ∧  and
//	XOR  ^  ⊕   !=
//	OR   |  ||  ∨  or
//	IMP  →  ->
//	EQV  ↔  <-> ==
//
// listed from tightest to loosest binding. Implication groups to the right.
// The constants true and false, parentheses, and the functions implies(a, b),
// xor(a, b) and iff(a, b) are accepted as well.
package expr

import (
	"sort"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/pkg/errors"
)

var (
	ErrEmpty             = errors.New("expression cannot be empty")
	ErrUnsupported       = errors.New("unsupported symbol")
	ErrSyntax            = errors.New("syntax error")
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrNotBoolean        = errors.New("expression does not yield a boolean")
)

// Expression is a parsed, validated Boolean expression.
type Expression struct {
	src  string
	root *node
	eval *govaluate.EvaluableExpression
	vars []string
}

// Parse reads src and prepares it for evaluation.
func Parse(src string) (*Expression, error) {
	if strings.TrimSpace(src) == "" {
		return nil, ErrEmpty
	}
	root, err := parse(src)
	if err != nil {
		return nil, errors.WithMessagef(err, "parse %q", src)
	}
	ev, err := govaluate.NewEvaluableExpression(root.evaluable())
	if err != nil {
		return nil, errors.Wrapf(err, "parse %q", src)
	}

	seen := make(map[string]bool)
	var vars []string
	var walk func(*node)
	walk = func(n *node) {
		if n.op == opVar && !seen[n.name] {
			seen[n.name] = true
			vars = append(vars, n.name)
		}
		for _, a := range n.args {
			walk(a)
		}
	}
	walk(root)
	sort.Strings(vars)
	return &Expression{src: src, root: root, eval: ev, vars: vars}, nil
}

// Validate reports whether src parses, without keeping the result.
func Validate(src string) error {
	_, err := Parse(src)
	return err
}

func (e *Expression) String() string { return e.src }

// Canonical renders the expression with ~ & ^ | → ↔ and only the
// parentheses precedence requires.
func (e *Expression) Canonical() string { return e.root.String() }

// Evaluable returns the fully parenthesized form handed to the evaluator.
func (e *Expression) Evaluable() string { return e.root.evaluable() }

// Vars returns the variables the expression references, sorted.
func (e *Expression) Vars() []string {
	return append([]string(nil), e.vars...)
}

func (e *Expression) checkBound(assign map[string]bool) error {
	var missing []string
	for _, v := range e.vars {
		if _, ok := assign[v]; !ok {
			missing = append(missing, v)
		}
	}
	if len(missing) > 0 {
		return errors.Wrapf(ErrUndefinedVariable, "%s in %q", strings.Join(missing, ", "), e.src)
	}
	return nil
}

// Eval evaluates the expression under the assignment. Every referenced
// variable must be bound.
func (e *Expression) Eval(assign map[string]bool) (bool, error) {
	if err := e.checkBound(assign); err != nil {
		return false, err
	}
	params := make(map[string]interface{}, len(assign))
	for k, v := range assign {
		params[k] = v
	}
	res, err := e.eval.Evaluate(params)
	if err != nil {
		return false, errors.Wrapf(err, "evaluate %q", e.src)
	}
	b, ok := res.(bool)
	if !ok {
		return false, errors.Wrapf(ErrNotBoolean, "%q gave %v", e.src, res)
	}
	return b, nil
}

// Minterms evaluates the expression on every row of the truth table over
// vars and returns the indices where it holds. Row i binds vars[j] to bit
// len(vars)-1-j of i.
func (e *Expression) Minterms(vars []string) ([]int, error) {
	var out []int
	assign := make(map[string]bool, len(vars))
	for idx := 0; idx < 1<<len(vars); idx++ {
		for j, v := range vars {
			assign[v] = idx>>(len(vars)-1-j)&1 == 1
		}
		ok, err := e.Eval(assign)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, idx)
		}
	}
	return out, nil
}
