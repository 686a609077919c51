package logic

import "github.com/pkg/errors"

var (
	// ErrVariableCount is returned when a function has no variables or more
	// than MaxVariables of them.
	ErrVariableCount = errors.New("unsupported number of variables")
	// ErrIndexOutOfRange is returned for a minterm or don't-care index outside
	// [0, 2^n).
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrOverlap is returned when an index is both a minterm and a don't-care.
	ErrOverlap = errors.New("index is both a minterm and a don't-care")
	// ErrIncompleteCover is returned when no prime implicant covers a
	// remaining minterm.
	ErrIncompleteCover = errors.New("prime implicants do not cover all minterms")
	// ErrMapSize is returned when a Karnaugh map is requested for a variable
	// count outside [MinMapVariables, MaxMapVariables].
	ErrMapSize = errors.New("karnaugh maps support 2 to 5 variables")
	// ErrPattern is returned by ParseImplicant for malformed patterns.
	ErrPattern = errors.New("invalid implicant pattern")
)
