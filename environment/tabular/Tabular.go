// Package tabular implements a gym-style sampling environment over a
// materialized MDP table. Where the oracle package computes exact
// quantities from the table, this package rolls the same table out one
// sampled transition at a time, for callers that want to interact with
// the MDP episodically.
package tabular

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	env "github.com/HANA-PON/ShinRL/environment"
	"github.com/HANA-PON/ShinRL/mdp"
	ts "github.com/HANA-PON/ShinRL/timestep"
	"github.com/HANA-PON/ShinRL/utils/floatutils"
)

// Environment steps through episodes of a materialized MDP. Starting
// states are sampled from the table's initial state distribution and
// next states from its transition kernel. Episodes end after the
// table's horizon steps.
type Environment struct {
	m   *mdp.MDP
	src rand.Source

	start       distuv.Categorical
	state       int
	currentStep ts.TimeStep
}

// New creates an Environment over the table m, seeding its sampling
// with seed. The environment starts ready to use, with the returned
// TimeStep holding the first starting state.
func New(m *mdp.MDP, seed uint64) (*Environment, ts.TimeStep) {
	src := rand.NewSource(seed)

	weights := make([]float64, m.NumStates())
	init := m.InitialStateDistribution()
	for i := range weights {
		weights[i] = init.AtVec(i)
	}

	e := &Environment{
		m:     m,
		src:   src,
		start: distuv.NewCategorical(weights, src),
	}

	return e, e.Reset()
}

// Reset starts a new episode and returns its first TimeStep
func (e *Environment) Reset() ts.TimeStep {
	e.state = int(e.start.Rand())

	step := ts.New(ts.First, 0.0, e.m.Discount(), e.m.Observation(e.state),
		e.state, 0)
	e.currentStep = step
	return step
}

// Step takes action in the current state, sampling the next state from
// the table's transition kernel. The second return value is whether
// the episode ended at this step, which happens once the table's
// horizon is reached.
func (e *Environment) Step(action int) (ts.TimeStep, bool, error) {
	if action < 0 || action >= e.m.NumActions() {
		return ts.TimeStep{}, false, fmt.Errorf("step: action = %d not "+
			"in [0, %d)", action, e.m.NumActions())
	}

	reward := e.m.Reward(e.state, action)

	next, probs := e.m.NextStates(e.state, action)
	if len(next) == 1 {
		e.state = next[0]
	} else {
		dist := distuv.NewCategorical(probs, e.src)
		e.state = next[int(dist.Rand())]
	}

	number := e.currentStep.Number + 1
	stepType := ts.Mid
	if number >= e.m.Horizon() {
		stepType = ts.Last
	}

	step := ts.New(stepType, reward, e.m.Discount(),
		e.m.Observation(e.state), e.state, number)
	e.currentStep = step

	return step, stepType == ts.Last, nil
}

// CurrentTimeStep returns the last TimeStep produced by Reset or Step
func (e *Environment) CurrentTimeStep() ts.TimeStep {
	return e.currentStep
}

// ObservationSpec returns the observation specification of the
// environment. Bounds are the per-dimension extremes over the table's
// observation matrix.
func (e *Environment) ObservationSpec() env.Spec {
	dims := e.m.ObsDims()
	shape := mat.NewVecDense(dims, nil)

	lower := make([]float64, dims)
	upper := make([]float64, dims)
	col := make([]float64, e.m.NumStates())
	for j := 0; j < dims; j++ {
		mat.Col(col, j, e.m.ObsMat())
		lower[j] = floatutils.Min(col...)
		upper[j] = floatutils.Max(col...)
	}

	return env.NewSpec(shape, env.Observation, mat.NewVecDense(dims, lower),
		mat.NewVecDense(dims, upper), env.Discrete)
}

// ActionSpec returns the action specification of the environment
func (e *Environment) ActionSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{0.0})
	upperBound := mat.NewVecDense(1,
		[]float64{float64(e.m.NumActions() - 1)})

	return env.NewSpec(shape, env.Action, lowerBound, upperBound,
		env.Discrete)
}

// DiscountSpec returns the discounting specification of the
// environment
func (e *Environment) DiscountSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	bound := mat.NewVecDense(1, []float64{e.m.Discount()})

	return env.NewSpec(shape, env.Discount, bound, bound, env.Discrete)
}
