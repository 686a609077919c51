package expr

// Step is one stage of a worked evaluation.
type Step struct {
	Stage string
	Expr  string
}

var stages = []struct {
	op   opKind
	name string
}{
	{opNot, "evaluate negations (~)"},
	{opAnd, "evaluate AND (&)"},
	{opXor, "evaluate XOR (^)"},
	{opOr, "evaluate OR (|)"},
	{opImplies, "evaluate implications (→)"},
	{opIff, "evaluate equivalences (↔)"},
}

// Steps explains how the expression reaches its value under assign. The
// first step substitutes the variables; each later step folds every operator
// of one precedence level whose operands are already known, tightest level
// first, repeating the levels until a single constant is left. The result
// agrees with Eval.
func (e *Expression) Steps(assign map[string]bool) ([]Step, error) {
	if err := e.checkBound(assign); err != nil {
		return nil, err
	}
	cur := substitute(e.root, assign)
	steps := []Step{
		{Stage: "expression", Expr: e.root.String()},
		{Stage: "substitute variables", Expr: cur.String()},
	}
	for cur.op != opConst {
		progressed := false
		for _, s := range stages {
			next, changed := fold(cur, s.op)
			if !changed {
				continue
			}
			cur, progressed = next, true
			steps = append(steps, Step{Stage: s.name, Expr: cur.String()})
		}
		if !progressed {
			break
		}
	}
	return steps, nil
}

func substitute(n *node, assign map[string]bool) *node {
	if n.op == opVar {
		return &node{op: opConst, val: assign[n.name]}
	}
	out := &node{op: n.op, name: n.name, val: n.val}
	for _, a := range n.args {
		out.args = append(out.args, substitute(a, assign))
	}
	return out
}

// fold replaces each op node whose operands are constants, working bottom
// up so a chain of the same operator collapses in one pass.
func fold(n *node, op opKind) (*node, bool) {
	if len(n.args) == 0 {
		return n, false
	}
	out := &node{op: n.op, args: make([]*node, len(n.args))}
	changed := false
	for i, a := range n.args {
		var c bool
		out.args[i], c = fold(a, op)
		changed = changed || c
	}
	if out.op != op {
		return out, changed
	}
	for _, a := range out.args {
		if a.op != opConst {
			return out, changed
		}
	}
	return &node{op: opConst, val: apply(op, out.args)}, true
}

func apply(op opKind, args []*node) bool {
	switch op {
	case opNot:
		return !args[0].val
	case opAnd:
		return args[0].val && args[1].val
	case opXor:
		return args[0].val != args[1].val
	case opOr:
		return args[0].val || args[1].val
	case opImplies:
		return !args[0].val || args[1].val
	}
	return args[0].val == args[1].val
}
