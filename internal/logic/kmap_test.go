package logic

import (
	"math/bits"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/pborges/kmap/internal/testutil"
)

func mustMap(t *testing.T, vars []string, minterms, dontCares []int) *KarnaughMap {
	t.Helper()
	km, err := NewKarnaughMap(vars, minterms, dontCares)
	if err != nil {
		t.Fatalf("NewKarnaughMap: %v", err)
	}
	return km
}

func TestKarnaughMap_Dimensions(t *testing.T) {
	cases := []struct {
		n, rows, cols int
	}{
		{2, 2, 2},
		{3, 2, 4},
		{4, 4, 4},
		{5, 4, 8},
	}
	for _, tc := range cases {
		km := mustMap(t, testutil.Vars(tc.n), nil, nil)
		if km.Rows() != tc.rows || km.Cols() != tc.cols {
			t.Errorf("%d vars: got %dx%d, want %dx%d", tc.n, km.Rows(), km.Cols(), tc.rows, tc.cols)
		}
		if got := len(km.RowVariables()) + len(km.ColVariables()); got != tc.n {
			t.Errorf("%d vars: axes hold %d variables", tc.n, got)
		}
	}
}

func TestKarnaughMap_UnsupportedSize(t *testing.T) {
	for _, n := range []int{0, 1, 6, 8} {
		if _, err := NewKarnaughMap(testutil.Vars(n), nil, nil); !errors.Is(err, ErrMapSize) {
			t.Errorf("%d vars: got %v, want ErrMapSize", n, err)
		}
	}
}

func TestKarnaughMap_BadIndex(t *testing.T) {
	if _, err := NewKarnaughMap(testutil.Vars(3), []int{8}, nil); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("got %v, want ErrIndexOutOfRange", err)
	}
}

func TestKarnaughMap_IndexLayout(t *testing.T) {
	for n := MinMapVariables; n <= MaxMapVariables; n++ {
		km := mustMap(t, testutil.Vars(n), nil, nil)
		seen := make(map[int]bool)
		for r := 0; r < km.Rows(); r++ {
			for c := 0; c < km.Cols(); c++ {
				idx := km.Index(r, c)
				if seen[idx] {
					t.Errorf("%d vars: index %d placed twice", n, idx)
				}
				seen[idx] = true
				if gr, gc := km.Coords(idx); gr != r || gc != c {
					t.Errorf("%d vars: Coords(%d) = (%d,%d), want (%d,%d)", n, idx, gr, gc, r, c)
				}
				// Neighbours, wrapping around both edges, differ in one variable.
				right := km.Index(r, (c+1)%km.Cols())
				down := km.Index((r+1)%km.Rows(), c)
				if km.Cols() > 1 && bits.OnesCount(uint(idx^right)) != 1 {
					t.Errorf("%d vars: (%d,%d) and right neighbour: %d vs %d", n, r, c, idx, right)
				}
				if km.Rows() > 1 && bits.OnesCount(uint(idx^down)) != 1 {
					t.Errorf("%d vars: (%d,%d) and lower neighbour: %d vs %d", n, r, c, idx, down)
				}
			}
		}
		if len(seen) != 1<<n {
			t.Errorf("%d vars: %d indices placed, want %d", n, len(seen), 1<<n)
		}
	}
}

func TestKarnaughMap_FiveVariableHalves(t *testing.T) {
	km := mustMap(t, testutil.Vars(5), []int{31}, []int{0})
	if r, c := km.Coords(31); r != 2 || c != 5 {
		t.Errorf("Coords(31) = (%d,%d), want (2,5)", r, c)
	}
	if km.Cell(2, 5) != One || km.Cell(0, 0) != DontCare {
		t.Errorf("cells: (2,5)=%s (0,0)=%s", km.Cell(2, 5), km.Cell(0, 0))
	}
	// C is the high column bit: left half C=0, right half C=1.
	for c := 0; c < km.Cols(); c++ {
		high := km.ColCode(c) >> 2
		if want := c / 4; high != want {
			t.Errorf("column %d: C=%d, want %d", c, high, want)
		}
	}
}

func TestKarnaughMap_TwoVariableGrid(t *testing.T) {
	km := mustMap(t, []string{"p", "q"}, []int{0, 1}, nil)
	want := [][]Cell{{One, One}, {Zero, Zero}}
	if diff := cmp.Diff(want, km.Grid()); diff != "" {
		t.Errorf("grid (-want +got):\n%s", diff)
	}
	expr, err := km.SimplifiedExpression()
	if err != nil {
		t.Fatal(err)
	}
	if expr != "~p" {
		t.Errorf("got %q, want ~p", expr)
	}
}

func TestKarnaughMap_FourVariableHalf(t *testing.T) {
	km := mustMap(t, []string{"p", "q", "r", "s"}, []int{0, 1, 2, 3, 4, 5, 6, 7}, nil)
	grid := km.Grid()
	cells, ones := 0, 0
	for r, row := range grid {
		for _, cell := range row {
			cells++
			if cell == One {
				ones++
			}
			// p is the high row bit; rows 0 and 1 are p=0.
			if wantOne := r < 2; (cell == One) != wantOne {
				t.Errorf("row %d: cell %s", r, cell)
			}
		}
	}
	if cells != 16 || ones != 8 {
		t.Errorf("got %d cells with %d ones, want 16 with 8", cells, ones)
	}
	if expr, _ := km.SimplifiedExpression(); expr != "~p" {
		t.Errorf("got %q, want ~p", expr)
	}
}

func TestKarnaughMap_AllOnes(t *testing.T) {
	all := make([]int, 16)
	for i := range all {
		all[i] = i
	}
	km := mustMap(t, testutil.Vars(4), all, nil)
	for r, row := range km.Grid() {
		for c, cell := range row {
			if cell != One {
				t.Errorf("(%d,%d) = %s", r, c, cell)
			}
		}
	}
	if expr, _ := km.SimplifiedExpression(); expr != "1" {
		t.Errorf("got %q, want 1", expr)
	}
}

func TestKarnaughMap_Groupings(t *testing.T) {
	km := mustMap(t, []string{"p", "q", "r"}, []int{6, 7}, nil)
	if km.Cell(1, 2) != One || km.Cell(1, 3) != One {
		t.Fatalf("grid: %v", km.Grid())
	}
	want := []Grouping{{
		Cells:     []Coord{{Row: 1, Col: 3}, {Row: 1, Col: 2}},
		Term:      "p & q",
		Pattern:   "11-",
		Essential: true,
	}}
	if diff := cmp.Diff(want, km.Groupings()); diff != "" {
		t.Errorf("groupings (-want +got):\n%s", diff)
	}
}

func TestKarnaughMap_GroupingsWrapAround(t *testing.T) {
	// p & r: cells (1,1) and (1,2) in Gray column order 00 01 11 10.
	km := mustMap(t, []string{"p", "q", "r"}, []int{5, 7}, nil)
	groups := km.Groupings()
	if len(groups) != 1 {
		t.Fatalf("got %d groups", len(groups))
	}
	if diff := cmp.Diff([]Coord{{1, 1}, {1, 2}}, groups[0].Cells); diff != "" {
		t.Errorf("cells (-want +got):\n%s", diff)
	}
	if groups[0].Term != "p & r" {
		t.Errorf("term %q", groups[0].Term)
	}

	// ~r across the left and right edges.
	km = mustMap(t, []string{"p", "q", "r"}, []int{0, 2, 4, 6}, nil)
	groups = km.Groupings()
	if len(groups) != 1 || groups[0].Pattern != "--0" {
		t.Fatalf("groups: %+v", groups)
	}
	if diff := cmp.Diff([]Coord{{0, 0}, {0, 3}, {1, 0}, {1, 3}}, groups[0].Cells); diff != "" {
		t.Errorf("cells (-want +got):\n%s", diff)
	}
}

func TestKarnaughMap_SharesMinimizer(t *testing.T) {
	km := mustMap(t, testutil.Vars(3), []int{1, 3}, nil)
	km.Groupings()
	if !km.QM().computed {
		t.Errorf("groupings did not populate the shared minimizer")
	}
}
