// Package chain implements a finite chain MDP: states laid out in a
// line, with actions that walk left or right along it
package chain

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Actions available in a Chain
const (
	Left int = iota
	Right
)

// Chain is an N-state, 2-action MDP. Episodes start at the left end of
// the chain. The Right action from the last state earns GoalReward and
// stays put; every other (state, action) pair earns StepReward. With
// probability slip an action fails and the state does not change, so
// slip = 0 gives a deterministic single-path MDP that is convenient
// for hand-verified tests.
type Chain struct {
	numStates  int
	slip       float64
	stepReward float64
	goalReward float64
}

// New returns a Chain with numStates states. Slip is the probability
// that an action fails to move, and must lie in [0, 1).
func New(numStates int, slip, stepReward, goalReward float64) (*Chain,
	error) {
	if numStates < 2 {
		return nil, fmt.Errorf("new: numStates = %d must be at least 2",
			numStates)
	}
	if slip < 0.0 || slip >= 1.0 {
		return nil, fmt.Errorf("new: slip = %v not in [0, 1)", slip)
	}

	return &Chain{
		numStates:  numStates,
		slip:       slip,
		stepReward: stepReward,
		goalReward: goalReward,
	}, nil
}

// NumStates returns the number of states in the chain
func (c *Chain) NumStates() int {
	return c.numStates
}

// NumActions returns the number of actions, which is always 2
func (c *Chain) NumActions() int {
	return 2
}

// InitialDistribution places all starting mass on the leftmost state
func (c *Chain) InitialDistribution() mat.Vector {
	init := mat.NewVecDense(c.numStates, nil)
	init.SetVec(0, 1.0)
	return init
}

// Transition returns the next-state support for taking action in state
func (c *Chain) Transition(state, action int) ([]int, []float64) {
	target := state
	switch action {
	case Left:
		if state > 0 {
			target = state - 1
		}
	case Right:
		if state < c.numStates-1 {
			target = state + 1
		}
	}

	if target == state {
		return []int{state}, []float64{1.0}
	}
	if c.slip == 0.0 {
		return []int{target}, []float64{1.0}
	}
	return []int{state, target}, []float64{c.slip, 1.0 - c.slip}
}

// Reward returns the expected immediate reward of taking action in
// state
func (c *Chain) Reward(state, action int) float64 {
	if state == c.numStates-1 && action == Right {
		return c.goalReward
	}
	return c.stepReward
}

// Observation returns the one-hot encoding of state
func (c *Chain) Observation(state int) mat.Vector {
	obs := mat.NewVecDense(c.numStates, nil)
	obs.SetVec(state, 1.0)
	return obs
}

func (c *Chain) String() string {
	return fmt.Sprintf("Chain | States: %d  |  Slip: %.2f", c.numStates,
		c.slip)
}
