// Package environment outlines the interfaces needed to describe finite
// Markov decision processes to the materializer and oracle packages
package environment

import (
	"gonum.org/v1/gonum/mat"
)

// Model describes a finite MDP by per-transition functions. A Model is
// a pure description: it has no episode state, and its methods may be
// called in any order, any number of times. The mdp package walks every
// (state, action) pair of a Model exactly once to build a fixed table,
// after which the Model is no longer consulted.
//
// State and action indices are 0-based and dense: states are
// 0..NumStates()-1 and actions 0..NumActions()-1.
type Model interface {
	// NumStates returns the number of states in the MDP
	NumStates() int

	// NumActions returns the number of actions available at every
	// state of the MDP
	NumActions() int

	// InitialDistribution returns the starting-state distribution as
	// a probability vector of length NumStates()
	InitialDistribution() mat.Vector

	// Transition returns the support of the next-state distribution
	// for taking action in state, as a slice of candidate next-state
	// indices and a matching slice of probabilities. States left out
	// of the support have probability 0. The returned probabilities
	// must be non-negative and sum to 1.
	Transition(state, action int) ([]int, []float64)

	// Reward returns the expected immediate reward for taking action
	// in state
	Reward(state, action int) float64

	// Observation returns the observation feature vector for state.
	// The returned vector must have the same length for every state.
	Observation(state int) mat.Vector
}
