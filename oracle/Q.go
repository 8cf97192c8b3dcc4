package oracle

import (
	"gonum.org/v1/gonum/mat"
)

// Q computes the action-value table of policy: the fixed point of
//
//	Q(s, a) = reward(s, a) +
//	          discount · Σ_{s'} P(s'|s, a) · Σ_{a'} policy(a'|s') · Q(s', a')
//
// solved by iterated Bellman backups until the max-norm change between
// iterates falls below the oracle's tolerance. When the table's
// discount is exactly 1 the fixed point is undefined, so exactly
// horizon backward-induction steps are performed instead.
//
// Returns a ShapeMismatch or InvalidDistribution error for a malformed
// policy, and a NumericalDivergence error if the iteration cap is hit
// before convergence.
func (o *Oracle) Q(policy mat.Matrix) (*mat.Dense, error) {
	if err := o.m.CheckPolicy(policy); err != nil {
		return nil, err
	}

	numActions := o.m.NumActions()
	val := func(state int, q *mat.Dense) float64 {
		var v float64
		for a := 0; a < numActions; a++ {
			v += policy.At(state, a) * q.At(state, a)
		}
		return v
	}

	return o.solve("calc q", val)
}

// Return computes the scalar expected return of policy from the
// table's initial state distribution:
//
//	Σ_s initProbs(s) · Σ_a policy(a|s) · Q(s, a)
//
// using the Q-table from Q(policy). This closed form avoids an
// explicit rollout.
func (o *Oracle) Return(policy mat.Matrix) (float64, error) {
	q, err := o.Q(policy)
	if err != nil {
		return 0.0, err
	}

	init := o.m.InitialStateDistribution()

	var ret float64
	for s := 0; s < o.m.NumStates(); s++ {
		for a := 0; a < o.m.NumActions(); a++ {
			ret += init.AtVec(s) * policy.At(s, a) * q.At(s, a)
		}
	}
	return ret, nil
}
