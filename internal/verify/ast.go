package verify

// Expr is a node of a parsed sum-of-products expression.
type Expr interface{ isExpr() }

type ExprIdent struct{ Name string }

func (ExprIdent) isExpr() {}

type ExprNot struct{ X Expr }

func (ExprNot) isExpr() {}

type ExprAnd struct{ A, B Expr }

func (ExprAnd) isExpr() {}

type ExprOr struct{ A, B Expr }

func (ExprOr) isExpr() {}

type ExprConst struct{ Value bool }

func (ExprConst) isExpr() {}

// Idents returns the distinct identifiers of e in first-seen order.
func Idents(e Expr) []string {
	var out []string
	seen := make(map[string]bool)
	var walk func(Expr)
	walk = func(e Expr) {
		switch e := e.(type) {
		case ExprIdent:
			if !seen[e.Name] {
				seen[e.Name] = true
				out = append(out, e.Name)
			}
		case ExprNot:
			walk(e.X)
		case ExprAnd:
			walk(e.A)
			walk(e.B)
		case ExprOr:
			walk(e.A)
			walk(e.B)
		}
	}
	walk(e)
	return out
}

// Eval evaluates e under assign. Unbound identifiers read as false.
func Eval(e Expr, assign map[string]bool) bool {
	switch e := e.(type) {
	case ExprIdent:
		return assign[e.Name]
	case ExprNot:
		return !Eval(e.X, assign)
	case ExprAnd:
		return Eval(e.A, assign) && Eval(e.B, assign)
	case ExprOr:
		return Eval(e.A, assign) || Eval(e.B, assign)
	case ExprConst:
		return e.Value
	}
	return false
}
