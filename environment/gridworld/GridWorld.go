// Package gridworld implements 2D gridworld MDPs
package gridworld

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Actions available in a GridWorld
const (
	Left int = iota
	Right
	Up
	Down
)

// NumActions is the number of actions available at every GridWorld
// state
const NumActions int = 4

// GridWorld describes an r×c gridworld as a finite MDP. States are
// cells of the grid, flattened row-major with (x, y) mapping to index
// y*c + x. Actions move one cell in each cardinal direction;
// moves off the edge of the grid leave the position unchanged. Goal
// states are absorbing.
//
// GridWorld implements environment.Model, so it can be materialized
// into a table by the mdp package.
type GridWorld struct {
	r, c  int
	start int
	goal  *Goal
}

// New creates a new GridWorld with r rows, c columns, starting
// position (x, y), and the argument goal task
func New(x, y, r, c int, goal *Goal) (*GridWorld, error) {
	if r <= 0 || c <= 0 {
		return nil, fmt.Errorf("new: grid dimensions (%d, %d) must be "+
			"positive", r, c)
	}
	if x < 0 || x >= c {
		return nil, fmt.Errorf("new: x = %d not in [0, %d)", x, c)
	}
	if y < 0 || y >= r {
		return nil, fmt.Errorf("new: y = %d not in [0, %d)", y, r)
	}

	return &GridWorld{r: r, c: c, start: cToInd(x, y, c), goal: goal}, nil
}

// Dims gets the rows and columns of the GridWorld
func (g *GridWorld) Dims() (r, c int) {
	return g.r, g.c
}

// NumStates returns the number of cells in the grid
func (g *GridWorld) NumStates() int {
	return g.r * g.c
}

// NumActions returns the number of actions, one per cardinal direction
func (g *GridWorld) NumActions() int {
	return NumActions
}

// InitialDistribution places all starting mass on the starting cell
func (g *GridWorld) InitialDistribution() mat.Vector {
	init := mat.NewVecDense(g.NumStates(), nil)
	init.SetVec(g.start, 1.0)
	return init
}

// Transition returns the next-state support for taking action in
// state. GridWorld moves are deterministic, so the support is always a
// single state with probability 1.
func (g *GridWorld) Transition(state, action int) ([]int, []float64) {
	return []int{g.nextState(state, action)}, []float64{1.0}
}

// Reward returns the reward for taking action in state: the goal
// reward when the move lands on a goal cell, and the time-step reward
// otherwise. Actions taken in a goal cell earn nothing, since goal
// cells are absorbing.
func (g *GridWorld) Reward(state, action int) float64 {
	if g.goal.IsGoal(state) {
		return 0.0
	}
	return g.goal.Reward(g.nextState(state, action))
}

// Observation returns the one-hot encoding of the grid cell
func (g *GridWorld) Observation(state int) mat.Vector {
	obs := mat.NewVecDense(g.NumStates(), nil)
	obs.SetVec(state, 1.0)
	return obs
}

// nextState computes the cell reached by taking action in state
func (g *GridWorld) nextState(state, action int) int {
	if g.goal.IsGoal(state) {
		return state
	}

	x, y := indToC(state, g.c)
	switch action {
	case Left:
		if x > 0 {
			x--
		}
	case Right:
		if x < g.c-1 {
			x++
		}
	case Up:
		if y < g.r-1 {
			y++
		}
	case Down:
		if y > 0 {
			y--
		}
	}
	return cToInd(x, y, g.c)
}

func (g *GridWorld) String() string {
	x, y := indToC(g.start, g.c)
	return fmt.Sprintf("GridWorld | Start: (%d, %d)  |  Goal: %v  |  "+
		"Bounds: (%d, %d)", x, y, g.goal, g.r, g.c)
}

// cToInd converts coordinates (x, y) to a flat cell index
func cToInd(x, y, c int) int {
	return y*c + x
}

// indToC converts a flat cell index to (x, y) coordinates
func indToC(ind, c int) (int, int) {
	y := ind / c
	x := ind - y*c
	return x, y
}
