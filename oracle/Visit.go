package oracle

import (
	"gonum.org/v1/gonum/mat"
)

// Visit computes the expected discounted visitation frequency of every
// (state, action) pair under policy, starting from the table's initial
// state distribution:
//
//	Σ_{t=0}^{horizon-1} discount^t · Pr(state_t = s, action_t = a | policy)
//
// The sum is computed by propagating the state distribution forwards
// through the Markov chain induced by policy for exactly horizon
// steps; no convergence test is needed since the sum is finite by
// construction.
//
// Returns a ShapeMismatch or InvalidDistribution error for a malformed
// policy.
func (o *Oracle) Visit(policy mat.Matrix) (*mat.Dense, error) {
	if err := o.m.CheckPolicy(policy); err != nil {
		return nil, err
	}

	numStates := o.m.NumStates()
	numActions := o.m.NumActions()

	visit := mat.NewDense(numStates, numActions, nil)

	stateDist := make([]float64, numStates)
	nextDist := make([]float64, numStates)
	init := o.m.InitialStateDistribution()
	for s := 0; s < numStates; s++ {
		stateDist[s] = init.AtVec(s)
	}

	scale := 1.0 // discount^t
	for t := 0; t < o.m.Horizon(); t++ {
		for i := range nextDist {
			nextDist[i] = 0.0
		}

		for s := 0; s < numStates; s++ {
			if stateDist[s] == 0.0 {
				continue
			}
			for a := 0; a < numActions; a++ {
				mass := stateDist[s] * policy.At(s, a)
				if mass == 0.0 {
					continue
				}
				visit.Set(s, a, visit.At(s, a)+scale*mass)

				next, probs := o.m.NextStates(s, a)
				for i, n := range next {
					nextDist[n] += mass * probs[i]
				}
			}
		}

		stateDist, nextDist = nextDist, stateDist
		scale *= o.m.Discount()
	}

	return visit, nil
}
