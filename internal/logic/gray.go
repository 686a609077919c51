package logic

import "golang.org/x/exp/constraints"

// GrayCode returns the reflected binary Gray code over the given number of
// bits: 2^bits values starting at 0, where neighbours (including the last and
// the first) differ in exactly one bit. GrayCode(0) is empty.
func GrayCode[T constraints.Integer](bits int) []T {
	if bits <= 0 {
		return nil
	}
	if bits == 1 {
		return []T{0, 1}
	}
	prev := GrayCode[T](bits - 1)
	high := T(1) << (bits - 1)
	out := make([]T, 0, 2*len(prev))
	out = append(out, prev...)
	for i := len(prev) - 1; i >= 0; i-- {
		out = append(out, prev[i]|high)
	}
	return out
}

// grayPositions inverts a Gray sequence: pos[v] is the position of v.
func grayPositions(seq []int) []int {
	pos := make([]int, len(seq))
	for i, v := range seq {
		pos[v] = i
	}
	return pos
}
