package gridworld

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/HANA-PON/ShinRL/utils/matutils"
)

// Goal represents the task of reaching goal cells in a GridWorld
type Goal struct {
	goals          *mat.VecDense // one-hot encoding of goal cells
	r, c           int           // total rows and columns in environment
	timeStepReward float64
	goalReward     float64
}

// NewGoal creates and returns a new set of goals at positions
// (x[i], y[i]), given that the gridworld has r rows and c columns.
// Moves landing on a goal cell earn gr; all other moves earn tr.
func NewGoal(x, y []int, r, c int, tr, gr float64) (*Goal, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("x length (%d) != y length (%d)",
			len(x), len(y))
	}
	if len(x) == 0 {
		return nil, fmt.Errorf("at least one goal is required")
	}

	goals := mat.NewVecDense(r*c, nil)
	for i := range x {
		// Ensure that the goal is within the proper bounds
		if x[i] < 0 || x[i] >= c {
			return nil, fmt.Errorf("x[%d] = %d not in [0, %d)", i, x[i], c)
		} else if y[i] < 0 || y[i] >= r {
			return nil, fmt.Errorf("y[%d] = %d not in [0, %d)", i, y[i], r)
		}

		goals.SetVec(cToInd(x[i], y[i], c), 1.0)
	}

	return &Goal{goals, r, c, tr, gr}, nil
}

// IsGoal returns whether the cell with flat index ind is a goal cell
func (g *Goal) IsGoal(ind int) bool {
	return g.goals.AtVec(ind) != 0.0
}

// Reward returns the reward for a move that lands on the cell with
// flat index ind
func (g *Goal) Reward(ind int) float64 {
	if g.IsGoal(ind) {
		return g.goalReward
	}
	return g.timeStepReward
}

// String returns the Goal as a string
func (g *Goal) String() string {
	return matutils.Format(g.goals)
}
