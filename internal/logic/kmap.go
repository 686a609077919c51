package logic

import (
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

const (
	MinMapVariables = 2
	MaxMapVariables = 5
)

// Cell is the value shown in one Karnaugh map square.
type Cell uint8

const (
	Zero Cell = iota
	One
	DontCare
)

func (c Cell) String() string {
	switch c {
	case One:
		return "1"
	case DontCare:
		return "X"
	default:
		return "0"
	}
}

// Coord addresses a map cell by Gray-ordered row and column position.
type Coord struct {
	Row, Col int
}

// Grouping is one prime implicant placed on the map.
type Grouping struct {
	Cells     []Coord // cells of the minterms the implicant covers
	Term      string  // product term, e.g. "~A & C"
	Pattern   string  // implicant pattern, e.g. "0-1"
	Essential bool
}

// KarnaughMap lays a function of 2 to 5 variables out on a Gray-ordered
// grid. The leading variables select the row and the trailing ones the
// column:
//
//	2 vars: 2x2, rows A,    cols B
//	3 vars: 2x4, rows A,    cols B,C
//	4 vars: 4x4, rows A,B,  cols C,D
//	5 vars: 4x8, rows A,B,  cols C,D,E
//
// With five variables C is the high bit of the column Gray code, so the left
// four columns are the C=0 half and the right four mirror them as C=1.
type KarnaughMap struct {
	qm *QuineMcCluskey

	rowBits, colBits int
	rowGray, colGray []int
	rowPos, colPos   []int
	grid             [][]Cell
}

// NewKarnaughMap builds the grid for the function. It fails with ErrMapSize
// when the variable count is outside [2,5], and with the errors of New for
// bad indices.
func NewKarnaughMap(variables []string, minterms, dontCares []int) (*KarnaughMap, error) {
	n := len(variables)
	if n < MinMapVariables || n > MaxMapVariables {
		return nil, errors.Wrapf(ErrMapSize, "got %d variables", n)
	}
	qm, err := New(variables, minterms, dontCares)
	if err != nil {
		return nil, err
	}

	rowBits, colBits := mapSplit(n)
	km := &KarnaughMap{
		qm:      qm,
		rowBits: rowBits,
		colBits: colBits,
		rowGray: GrayCode[int](rowBits),
		colGray: GrayCode[int](colBits),
	}
	km.rowPos = grayPositions(km.rowGray)
	km.colPos = grayPositions(km.colGray)

	km.grid = make([][]Cell, len(km.rowGray))
	for r := range km.grid {
		km.grid[r] = make([]Cell, len(km.colGray))
		for c := range km.grid[r] {
			idx := km.Index(r, c)
			switch {
			case qm.IsMinterm(idx):
				km.grid[r][c] = One
			case qm.IsDontCare(idx):
				km.grid[r][c] = DontCare
			}
		}
	}
	return km, nil
}

// mapSplit returns how many variables go on the rows and on the columns.
func mapSplit(n int) (rowBits, colBits int) {
	switch n {
	case 2:
		return 1, 1
	case 3:
		return 1, 2
	case 4:
		return 2, 2
	default:
		return 2, 3
	}
}

// QM returns the minimizer the map queries for groupings. It is shared, not
// copied.
func (km *KarnaughMap) QM() *QuineMcCluskey { return km.qm }

func (km *KarnaughMap) Variables() []string { return km.qm.Variables() }
func (km *KarnaughMap) NumVars() int        { return km.qm.NumVars() }
func (km *KarnaughMap) Rows() int           { return len(km.rowGray) }
func (km *KarnaughMap) Cols() int           { return len(km.colGray) }

// RowVariables and ColVariables return the variables on each axis.
func (km *KarnaughMap) RowVariables() []string { return slices.Clone(km.qm.variables[:km.rowBits]) }
func (km *KarnaughMap) ColVariables() []string { return slices.Clone(km.qm.variables[km.rowBits:]) }

// RowCode returns the Gray value of row r, which is the value of the row
// variables for that row.
func (km *KarnaughMap) RowCode(r int) int { return km.rowGray[r] }

// ColCode returns the Gray value of column c.
func (km *KarnaughMap) ColCode(c int) int { return km.colGray[c] }

// Cell returns the value at row r, column c.
func (km *KarnaughMap) Cell(r, c int) Cell { return km.grid[r][c] }

// Grid returns a copy of the cells, row by row.
func (km *KarnaughMap) Grid() [][]Cell {
	out := make([][]Cell, len(km.grid))
	for r, row := range km.grid {
		out[r] = append([]Cell(nil), row...)
	}
	return out
}

// Index returns the truth-table index shown at row r, column c: the row's
// Gray value in the high bits, the column's in the low bits.
func (km *KarnaughMap) Index(r, c int) int {
	if r < 0 || r >= len(km.rowGray) || c < 0 || c >= len(km.colGray) {
		panic(fmt.Sprintf("logic: cell (%d,%d) outside %dx%d map", r, c, km.Rows(), km.Cols()))
	}
	return km.rowGray[r]<<km.colBits | km.colGray[c]
}

// Coords is the inverse of Index.
func (km *KarnaughMap) Coords(idx int) (row, col int) {
	colMask := 1<<km.colBits - 1
	return km.rowPos[(idx>>km.colBits)&(1<<km.rowBits-1)], km.colPos[idx&colMask]
}

// Groupings places every prime implicant on the map: the cells of the
// minterms it covers, its product term and its pattern.
func (km *KarnaughMap) Groupings() []Grouping {
	essential := make(map[Implicant]bool)
	for _, e := range km.qm.EssentialPrimeImplicants() {
		essential[e] = true
	}

	primes := km.qm.PrimeImplicants()
	out := make([]Grouping, 0, len(primes))
	for _, p := range primes {
		g := Grouping{
			Term:      p.Product(km.qm.variables),
			Pattern:   p.String(),
			Essential: essential[p],
		}
		for _, idx := range km.qm.Coverage(p) {
			r, c := km.Coords(idx)
			g.Cells = append(g.Cells, Coord{Row: r, Col: c})
		}
		out = append(out, g)
	}
	return out
}

// SimplifiedExpression returns the minimized sum-of-products.
func (km *KarnaughMap) SimplifiedExpression() (string, error) {
	return km.qm.Minimize()
}
