package mdp

import (
	"gonum.org/v1/gonum/mat"
)

// Policies are plain numStates × numActions matrices with one
// probability distribution over actions per row. They are caller-owned:
// the oracle package only ever reads them.

// UniformPolicy returns the policy that selects uniformly among the
// numActions actions at every one of the numStates states
func UniformPolicy(numStates, numActions int) *mat.Dense {
	policy := mat.NewDense(numStates, numActions, nil)
	p := 1.0 / float64(numActions)
	for s := 0; s < numStates; s++ {
		for a := 0; a < numActions; a++ {
			policy.Set(s, a, p)
		}
	}
	return policy
}

// GreedyPolicy returns the deterministic policy that selects, at each
// state, the action with the largest value in the corresponding row of
// q. Ties are broken towards the lowest action index.
func GreedyPolicy(q mat.Matrix) *mat.Dense {
	numStates, numActions := q.Dims()
	policy := mat.NewDense(numStates, numActions, nil)

	for s := 0; s < numStates; s++ {
		best, bestVal := 0, q.At(s, 0)
		for a := 1; a < numActions; a++ {
			if v := q.At(s, a); v > bestVal {
				best, bestVal = a, v
			}
		}
		policy.Set(s, best, 1.0)
	}
	return policy
}
