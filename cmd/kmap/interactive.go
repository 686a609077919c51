package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/pborges/kmap/internal/expr"
	"github.com/pborges/kmap/internal/logic"
	"github.com/pborges/kmap/internal/render"
	"github.com/pborges/kmap/internal/truthtable"
)

// cmdInteractive asks for variables, then loops over expressions until the
// user types exit or interrupts. Each expression gets its truth table,
// Karnaugh map when the variable count allows one, and minimized form.
func cmdInteractive(out io.Writer) error {
	varsPrompt := promptui.Prompt{
		Label:   "Variables (comma separated)",
		Default: "p,q,r",
		Validate: func(s string) error {
			vars, err := parseVars(s)
			if err != nil {
				return err
			}
			if len(vars) > truthtable.MaxVariables {
				return errors.Errorf("at most %d variables", truthtable.MaxVariables)
			}
			return nil
		},
	}
	raw, err := varsPrompt.Run()
	if err != nil {
		return promptErr(err)
	}
	vars, err := parseVars(raw)
	if err != nil {
		return err
	}

	for {
		exprPrompt := promptui.Prompt{
			Label:    "Expression (or exit)",
			Validate: func(s string) error { return validateExpr(s, vars) },
		}
		src, err := exprPrompt.Run()
		if err != nil {
			return promptErr(err)
		}
		if strings.TrimSpace(src) == "exit" {
			return nil
		}

		dcPrompt := promptui.Prompt{
			Label: "Don't-care indices (blank for none)",
			Validate: func(s string) error {
				_, err := parseIndices(s)
				return err
			},
		}
		dcRaw, err := dcPrompt.Run()
		if err != nil {
			return promptErr(err)
		}
		dontCares, err := parseIndices(dcRaw)
		if err != nil {
			return err
		}

		tab, err := solve(out, vars, src, dontCares)
		if err != nil {
			fmt.Fprintln(out, promptui.Styler(promptui.FGRed)("error: "+err.Error()))
		} else if err := explainLoop(out, tab); err != nil {
			return err
		}
		fmt.Fprintln(out, promptui.Styler(promptui.FGMagenta)(strings.Repeat("-", 30)))
	}
}

// validateExpr accepts "exit" and any expression over vars.
func validateExpr(s string, vars []string) error {
	if strings.TrimSpace(s) == "exit" {
		return nil
	}
	e, err := expr.Parse(s)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(vars))
	for _, v := range vars {
		known[v] = true
	}
	for _, v := range e.Vars() {
		if !known[v] {
			return errors.Wrapf(expr.ErrUndefinedVariable, "%s", v)
		}
	}
	return nil
}

// explainLoop offers a worked evaluation of any row until the user leaves
// the index blank.
func explainLoop(out io.Writer, tab *truthtable.Table) error {
	for {
		rowPrompt := promptui.Prompt{
			Label: "Explain row index (blank to continue)",
			Validate: func(s string) error {
				_, err := parseRow(s, tab.Len())
				return err
			},
		}
		raw, err := rowPrompt.Run()
		if err != nil {
			return promptErr(err)
		}
		idx, err := parseRow(raw, tab.Len())
		if err != nil {
			return err
		}
		if idx < 0 {
			return nil
		}
		if err := explain(out, tab, idx); err != nil {
			return err
		}
	}
}

// parseRow returns -1 for a blank line.
func parseRow(s string, rows int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return -1, nil
	}
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(errBadIndex, "%q", s)
	}
	if idx < 0 || idx >= rows {
		return 0, errors.Wrapf(errBadIndex, "%d is outside 0-%d", idx, rows-1)
	}
	return idx, nil
}

// explain prints the step by step evaluation of every expression column at
// row idx.
func explain(out io.Writer, tab *truthtable.Table, idx int) error {
	for col := range tab.Expressions {
		steps, err := tab.Steps(idx, col)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Row %d:\n", idx)
		for i, s := range steps {
			fmt.Fprintf(out, "  %d. %-28s %s\n", i+1, s.Stage+":", s.Expr)
		}
	}
	return nil
}

func solve(out io.Writer, vars []string, src string, dontCares []int) (*truthtable.Table, error) {
	tab, err := truthtable.Generate(truthtable.Config{
		Variables:        vars,
		Expressions:      []string{src},
		ExpressionFormat: truthtable.TrueFalse,
	})
	if err != nil {
		return nil, err
	}
	tab.WriteText(out)
	if err := summarize(out, tab, vars, dontCares); err != nil {
		return nil, err
	}
	return tab, nil
}

func summarize(out io.Writer, tab *truthtable.Table, vars []string, dontCares []int) error {
	minterms, err := tab.Minterms(0)
	if err != nil {
		return err
	}
	// Rows that are true stay minterms even when also listed as don't-cares.
	var dc []int
	for _, d := range dontCares {
		if !slices.Contains(minterms, d) {
			dc = append(dc, d)
		}
	}

	if n := len(vars); n >= logic.MinMapVariables && n <= logic.MaxMapVariables {
		km, err := logic.NewKarnaughMap(vars, minterms, dc)
		if err != nil {
			return err
		}
		return render.Text(out, km)
	}
	q, err := logic.New(vars, minterms, dc)
	if err != nil {
		return err
	}
	sop, err := q.Minimize()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, promptui.Styler(promptui.FGGreen)("Simplified: "+sop))
	return nil
}

func promptErr(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return nil
	}
	return err
}
