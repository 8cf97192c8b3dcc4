// Package oracle implements exact dynamic-programming computations
// over materialized MDP tables.
//
// All computations are pure functions of the table and the supplied
// policy: nothing is sampled, nothing is learned, and no state
// persists between calls. Because the table is immutable, any number
// of oracle computations may run against it concurrently.
package oracle

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/HANA-PON/ShinRL/mdp"
)

// Convergence defaults for the iterative Bellman solves
const (
	DefaultTolerance     float64 = 1e-8
	DefaultMaxIterations int     = 10_000
)

// Oracle computes value functions, visitation frequencies, and returns
// for a single materialized MDP table. The zero value is not usable;
// construct with New or NewWith.
type Oracle struct {
	m             *mdp.MDP
	tolerance     float64
	maxIterations int
}

// New returns an Oracle over m using the default convergence
// parameters
func New(m *mdp.MDP) *Oracle {
	o, _ := NewWith(m, DefaultTolerance, DefaultMaxIterations)
	return o
}

// NewWith returns an Oracle over m that iterates until the max-norm
// change between successive Bellman backups falls below tolerance,
// giving up after maxIterations backups
func NewWith(m *mdp.MDP, tolerance float64, maxIterations int) (*Oracle,
	error) {
	if tolerance <= 0.0 {
		return nil, fmt.Errorf("newWith: tolerance = %v must be positive",
			tolerance)
	}
	if maxIterations <= 0 {
		return nil, fmt.Errorf("newWith: maxIterations = %d must be positive",
			maxIterations)
	}
	return &Oracle{m: m, tolerance: tolerance, maxIterations: maxIterations},
		nil
}

// backup computes one Bellman backup of every (state, action) pair
// into out, bootstrapping from the per-state values v:
//
//	out(s, a) = reward(s, a) + discount · Σ_{s'} P(s'|s, a) · v(s')
func (o *Oracle) backup(v []float64, out *mat.Dense) {
	numStates := o.m.NumStates()
	numActions := o.m.NumActions()
	discount := o.m.Discount()

	for s := 0; s < numStates; s++ {
		for a := 0; a < numActions; a++ {
			var expected float64
			next, probs := o.m.NextStates(s, a)
			for i, n := range next {
				expected += probs[i] * v[n]
			}
			out.Set(s, a, o.m.Reward(s, a)+discount*expected)
		}
	}
}

// valuer reduces a row of Q-values at one state to a scalar state
// value. Policy evaluation uses the policy-weighted mean; optimality
// backups use the max.
type valuer func(state int, q *mat.Dense) float64

// stateValues fills v with the state values of q under val
func (o *Oracle) stateValues(q *mat.Dense, val valuer, v []float64) {
	for s := range v {
		v[s] = val(s, q)
	}
}

// fixedPoint iterates Bellman backups from a zero table until the
// max-norm change between successive iterates falls below the
// tolerance. If the iteration cap is hit first, the last iterate and
// its residual are reported in a DivergenceError.
func (o *Oracle) fixedPoint(op string, val valuer) (*mat.Dense, error) {
	numStates := o.m.NumStates()
	numActions := o.m.NumActions()

	q := mat.NewDense(numStates, numActions, nil)
	next := mat.NewDense(numStates, numActions, nil)
	v := make([]float64, numStates)

	residual := math.Inf(1)
	for i := 0; i < o.maxIterations; i++ {
		o.stateValues(q, val, v)
		o.backup(v, next)

		residual = floats.Distance(q.RawMatrix().Data,
			next.RawMatrix().Data, math.Inf(1))
		q, next = next, q

		if residual <= o.tolerance {
			return q, nil
		}
	}

	return nil, &mdp.DivergenceError{
		Op:         op,
		Iterations: o.maxIterations,
		Residual:   residual,
		LastQ:      q,
	}
}

// finiteHorizon runs exactly horizon backward-induction backups from a
// zero table. Used in place of fixedPoint when the discount is 1, where
// the infinite-horizon fixed point is undefined.
func (o *Oracle) finiteHorizon(val valuer) *mat.Dense {
	numStates := o.m.NumStates()
	numActions := o.m.NumActions()

	q := mat.NewDense(numStates, numActions, nil)
	next := mat.NewDense(numStates, numActions, nil)
	v := make([]float64, numStates)

	for i := 0; i < o.m.Horizon(); i++ {
		o.stateValues(q, val, v)
		o.backup(v, next)
		q, next = next, q
	}
	return q
}

func (o *Oracle) solve(op string, val valuer) (*mat.Dense, error) {
	if o.m.Discount() == 1.0 {
		return o.finiteHorizon(val), nil
	}
	return o.fixedPoint(op, val)
}

// CalcQ evaluates policy on m with the default convergence parameters.
// See Oracle.Q.
func CalcQ(m *mdp.MDP, policy mat.Matrix) (*mat.Dense, error) {
	return New(m).Q(policy)
}

// CalcOptimalQ computes the optimal action-value table of m with the
// default convergence parameters. See Oracle.OptimalQ.
func CalcOptimalQ(m *mdp.MDP) (*mat.Dense, error) {
	return New(m).OptimalQ()
}

// CalcVisit computes the discounted expected visitation frequencies of
// policy on m. See Oracle.Visit.
func CalcVisit(m *mdp.MDP, policy mat.Matrix) (*mat.Dense, error) {
	return New(m).Visit(policy)
}

// CalcReturn computes the expected return of policy on m with the
// default convergence parameters. See Oracle.Return.
func CalcReturn(m *mdp.MDP, policy mat.Matrix) (float64, error) {
	return New(m).Return(policy)
}
