package mdp

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// TableError implements errors unique to materializing or querying an
// MDP table.
type TableError struct {
	Op  string
	Err error
}

// Error satisfies the error interface
func (e *TableError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *TableError) Unwrap() error {
	return e.Err
}

var errInvalidDistribution = errors.New("probability row has negative " +
	"mass or does not sum to 1")

var errShapeMismatch = errors.New("dimensions do not match table")

var errIndexOutOfRange = errors.New("state index outside table")

// IsInvalidDistribution returns whether or not an error reports that a
// probability row failed validation: a negative entry, or a sum
// differing from 1 by more than the validation tolerance.
func IsInvalidDistribution(err error) bool {
	if tableErr, ok := err.(*TableError); ok {
		err = tableErr.Err
	}
	return err == errInvalidDistribution
}

// IsShapeMismatch returns whether or not an error reports a dimension
// mismatch between the table and a supplied policy or observation.
func IsShapeMismatch(err error) bool {
	if tableErr, ok := err.(*TableError); ok {
		err = tableErr.Err
	}
	return err == errShapeMismatch
}

// IsIndexOutOfRange returns whether or not an error reports that a
// model's transition function referenced a nonexistent state.
func IsIndexOutOfRange(err error) bool {
	if tableErr, ok := err.(*TableError); ok {
		err = tableErr.Err
	}
	return err == errIndexOutOfRange
}

// DivergenceError reports that an iterative solve exceeded its
// iteration cap without converging. It carries the last iterate and
// the max-norm residual at the final iteration so callers can inspect
// how far the solve got.
type DivergenceError struct {
	Op         string
	Iterations int
	Residual   float64
	LastQ      *mat.Dense
}

// Error satisfies the error interface
func (e *DivergenceError) Error() string {
	return fmt.Sprintf("%v: failed to converge after %d iterations "+
		"(residual %v)", e.Op, e.Iterations, e.Residual)
}

// IsNumericalDivergence returns whether or not an error reports that
// an iterative solve failed to converge within its iteration cap.
func IsNumericalDivergence(err error) bool {
	_, ok := err.(*DivergenceError)
	return ok
}
