package oracle

import (
	"gonum.org/v1/gonum/mat"
)

// OptimalQ computes the optimal action-value table of the MDP by value
// iteration on the Bellman optimality equation
//
//	Q*(s, a) = reward(s, a) +
//	           discount · Σ_{s'} P(s'|s, a) · max_{a'} Q*(s', a')
//
// with the same convergence criteria as Q. Ties in the max are
// irrelevant to the converged values; where an argmax is needed, see
// mdp.GreedyPolicy, which breaks ties towards the lowest action index.
//
// When the table's discount is exactly 1, exactly horizon
// backward-induction steps are performed instead of iterating to a
// fixed point.
func (o *Oracle) OptimalQ() (*mat.Dense, error) {
	numActions := o.m.NumActions()
	val := func(state int, q *mat.Dense) float64 {
		max := q.At(state, 0)
		for a := 1; a < numActions; a++ {
			if v := q.At(state, a); v > max {
				max = v
			}
		}
		return max
	}

	return o.solve("calc optimal q", val)
}
