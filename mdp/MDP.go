// Package mdp materializes finite MDP descriptions into fixed tables.
//
// A user-defined environment.Model describes an MDP by black-box
// per-transition functions. New walks every (state, action) pair of
// the model once and records the results in an MDP table. The table is
// immutable after construction, so any number of oracle computations
// may read it concurrently; the model itself is never consulted again.
package mdp

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/HANA-PON/ShinRL/environment"
)

// ValidationTolerance is the largest amount by which a probability row
// may differ from summing to exactly 1 and still be accepted
const ValidationTolerance float64 = 1e-5

// MDP is the materialized, tabular form of an environment.Model. The
// transition kernel is stored sparsely: for each (state, action) pair
// only the next states with non-zero probability are kept.
type MDP struct {
	numStates  int
	numActions int
	obsDims    int

	obsMat     *mat.Dense // numStates × obsDims
	rewMat     *mat.Dense // numStates × numActions
	tranStates [][]int    // indexed by state*numActions + action
	tranProbs  [][]float64
	initProbs  *mat.VecDense

	discount float64
	horizon  int
}

// New materializes model into an MDP table under the discounting
// scheme of config. The model's transition and reward functions are
// invoked once per (state, action) pair and its observation function
// once per state. Probability rows are validated, never renormalized:
// a row that fails validation surfaces as an InvalidDistribution error
// so that bugs in the model are not masked.
func New(model environment.Model, config environment.Config) (*MDP, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "new: invalid config")
	}

	numStates := model.NumStates()
	numActions := model.NumActions()
	if numStates <= 0 || numActions <= 0 {
		return nil, fmt.Errorf("new: model must have positive state and "+
			"action counts, have (%d, %d)", numStates, numActions)
	}

	m := &MDP{
		numStates:  numStates,
		numActions: numActions,
		rewMat:     mat.NewDense(numStates, numActions, nil),
		tranStates: make([][]int, numStates*numActions),
		tranProbs:  make([][]float64, numStates*numActions),
		discount:   config.Discount,
		horizon:    config.Horizon,
	}

	if err := m.fillInitProbs(model); err != nil {
		return nil, err
	}
	if err := m.fillObservations(model); err != nil {
		return nil, err
	}
	if err := m.fillTransitions(model); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *MDP) fillInitProbs(model environment.Model) error {
	init := model.InitialDistribution()
	if init.Len() != m.numStates {
		return &TableError{
			Op:  fmt.Sprintf("materialize: initial distribution length %d", init.Len()),
			Err: errShapeMismatch,
		}
	}

	probs := make([]float64, m.numStates)
	for i := 0; i < m.numStates; i++ {
		probs[i] = init.AtVec(i)
	}
	if !validDistribution(probs) {
		return &TableError{
			Op:  "materialize: initial distribution",
			Err: errInvalidDistribution,
		}
	}

	m.initProbs = mat.NewVecDense(m.numStates, probs)
	return nil
}

func (m *MDP) fillObservations(model environment.Model) error {
	for s := 0; s < m.numStates; s++ {
		obs := model.Observation(s)

		if s == 0 {
			m.obsDims = obs.Len()
			m.obsMat = mat.NewDense(m.numStates, m.obsDims, nil)
		} else if obs.Len() != m.obsDims {
			return &TableError{
				Op: fmt.Sprintf("materialize: observation(%d) has length "+
					"%d, want %d", s, obs.Len(), m.obsDims),
				Err: errShapeMismatch,
			}
		}

		for j := 0; j < m.obsDims; j++ {
			m.obsMat.Set(s, j, obs.AtVec(j))
		}
	}
	return nil
}

func (m *MDP) fillTransitions(model environment.Model) error {
	for s := 0; s < m.numStates; s++ {
		for a := 0; a < m.numActions; a++ {
			m.rewMat.Set(s, a, model.Reward(s, a))

			next, probs := model.Transition(s, a)
			op := fmt.Sprintf("materialize: transition(%d, %d)", s, a)

			if len(next) != len(probs) {
				return &TableError{Op: op, Err: errShapeMismatch}
			}
			for _, n := range next {
				if n < 0 || n >= m.numStates {
					return &TableError{Op: op, Err: errIndexOutOfRange}
				}
			}
			if !validDistribution(probs) {
				return &TableError{Op: op, Err: errInvalidDistribution}
			}

			// Keep only the non-zero support
			i := s*m.numActions + a
			for j, p := range probs {
				if p == 0.0 {
					continue
				}
				m.tranStates[i] = append(m.tranStates[i], next[j])
				m.tranProbs[i] = append(m.tranProbs[i], p)
			}
		}
	}
	return nil
}

// validDistribution returns whether probs is non-negative and sums to
// 1 within ValidationTolerance
func validDistribution(probs []float64) bool {
	for _, p := range probs {
		if p < 0.0 {
			return false
		}
	}
	return math.Abs(floats.Sum(probs)-1.0) <= ValidationTolerance
}

// NumStates returns the number of states in the MDP
func (m *MDP) NumStates() int {
	return m.numStates
}

// NumActions returns the number of actions in the MDP
func (m *MDP) NumActions() int {
	return m.numActions
}

// ObsDims returns the length of each observation vector
func (m *MDP) ObsDims() int {
	return m.obsDims
}

// Discount returns the discount factor the table was built with
func (m *MDP) Discount() float64 {
	return m.discount
}

// Horizon returns the step cap used by finite-horizon computations
func (m *MDP) Horizon() int {
	return m.horizon
}

// Observation returns the observation vector of state as a read-only
// view into the observation matrix
func (m *MDP) Observation(state int) mat.Vector {
	return m.obsMat.RowView(state)
}

// ObsMat returns the numStates × obsDims observation matrix
func (m *MDP) ObsMat() mat.Matrix {
	return m.obsMat
}

// RewMat returns the numStates × numActions expected-reward matrix
func (m *MDP) RewMat() mat.Matrix {
	return m.rewMat
}

// Reward returns the expected immediate reward of taking action in
// state
func (m *MDP) Reward(state, action int) float64 {
	return m.rewMat.At(state, action)
}

// NextStates returns the non-zero support of the next-state
// distribution for (state, action): the candidate next states and
// their probabilities. The returned slices are views into the table
// and must not be modified.
func (m *MDP) NextStates(state, action int) ([]int, []float64) {
	i := state*m.numActions + action
	return m.tranStates[i], m.tranProbs[i]
}

// InitialStateDistribution returns the starting-state probability
// vector
func (m *MDP) InitialStateDistribution() mat.Vector {
	return m.initProbs
}

// CheckPolicy validates that policy is a numStates × numActions matrix
// whose every row is a probability distribution over actions. It
// returns a ShapeMismatch error on a dimension mismatch and an
// InvalidDistribution error on a row that fails validation.
func (m *MDP) CheckPolicy(policy mat.Matrix) error {
	r, c := policy.Dims()
	if r != m.numStates || c != m.numActions {
		return &TableError{
			Op: fmt.Sprintf("policy: have dimensions (%d, %d), want "+
				"(%d, %d)", r, c, m.numStates, m.numActions),
			Err: errShapeMismatch,
		}
	}

	row := make([]float64, m.numActions)
	for s := 0; s < m.numStates; s++ {
		for a := 0; a < m.numActions; a++ {
			row[a] = policy.At(s, a)
		}
		if !validDistribution(row) {
			return &TableError{
				Op:  fmt.Sprintf("policy: row %d", s),
				Err: errInvalidDistribution,
			}
		}
	}
	return nil
}
