// Package render draws a Karnaugh map with its prime implicant groupings and
// minimized expression, as HTML or as a plain-text table.
package render

import (
	"fmt"
	"strings"

	"github.com/pborges/kmap/internal/logic"
)

// Headers returns the axis labels of km in display order, such as "A=1" for
// a single-variable axis or "C,D=01" for two.
func Headers(km *logic.KarnaughMap) (rows, cols []string) {
	rv, cv := km.RowVariables(), km.ColVariables()
	rows = make([]string, km.Rows())
	for r := range rows {
		rows[r] = label(rv, km.RowCode(r))
	}
	cols = make([]string, km.Cols())
	for c := range cols {
		cols[c] = label(cv, km.ColCode(c))
	}
	return rows, cols
}

func label(vars []string, code int) string {
	return fmt.Sprintf("%s=%0*b", strings.Join(vars, ","), len(vars), code)
}

// view is the renderer-neutral content of a map.
type view struct {
	RowHeaders []string
	ColHeaders []string
	Rows       []viewRow
	Legend     []legendEntry
	Expression string
}

type viewRow struct {
	Header string
	Cells  []viewCell
}

type viewCell struct {
	Cell   logic.Cell
	Groups []cellGroup
}

type cellGroup struct {
	ID        int
	Essential bool
}

type legendEntry struct {
	ID        int
	Term      string
	Pattern   string
	Essential bool
}

func (c viewCell) Class() string {
	switch c.Cell {
	case logic.One:
		return "minterm"
	case logic.DontCare:
		return "dont-care"
	}
	return "maxterm"
}

func kind(essential bool) string {
	if essential {
		return "essential"
	}
	return "prime"
}

func newView(km *logic.KarnaughMap) (*view, error) {
	expr, err := km.SimplifiedExpression()
	if err != nil {
		return nil, err
	}
	v := &view{Expression: expr}
	v.RowHeaders, v.ColHeaders = Headers(km)

	groups := km.Groupings()
	member := make(map[logic.Coord][]cellGroup)
	for i, g := range groups {
		v.Legend = append(v.Legend, legendEntry{ID: i, Term: g.Term, Pattern: g.Pattern, Essential: g.Essential})
		for _, at := range g.Cells {
			member[at] = append(member[at], cellGroup{ID: i, Essential: g.Essential})
		}
	}

	v.Rows = make([]viewRow, km.Rows())
	for r := range v.Rows {
		row := viewRow{Header: v.RowHeaders[r], Cells: make([]viewCell, km.Cols())}
		for c := range row.Cells {
			row.Cells[c] = viewCell{Cell: km.Cell(r, c), Groups: member[logic.Coord{Row: r, Col: c}]}
		}
		v.Rows[r] = row
	}
	return v, nil
}
