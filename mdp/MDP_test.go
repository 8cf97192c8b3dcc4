package mdp

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/HANA-PON/ShinRL/environment"
)

// modelFunc is an environment.Model whose behaviour is supplied by
// function fields, so tests can hand the materializer malformed models
type modelFunc struct {
	states, actions int
	init            func() mat.Vector
	tran            func(s, a int) ([]int, []float64)
	rew             func(s, a int) float64
	obs             func(s int) mat.Vector
}

func (m *modelFunc) NumStates() int  { return m.states }
func (m *modelFunc) NumActions() int { return m.actions }

func (m *modelFunc) InitialDistribution() mat.Vector {
	return m.init()
}

func (m *modelFunc) Transition(s, a int) ([]int, []float64) {
	return m.tran(s, a)
}

func (m *modelFunc) Reward(s, a int) float64 {
	return m.rew(s, a)
}

func (m *modelFunc) Observation(s int) mat.Vector {
	return m.obs(s)
}

// validModel returns a well-formed 3-state, 2-action model that tests
// can break one function at a time
func validModel() *modelFunc {
	return &modelFunc{
		states:  3,
		actions: 2,
		init: func() mat.Vector {
			return mat.NewVecDense(3, []float64{1.0, 0.0, 0.0})
		},
		tran: func(s, a int) ([]int, []float64) {
			next := s
			if a == 1 {
				next = (s + 1) % 3
			}
			return []int{next}, []float64{1.0}
		},
		rew: func(s, a int) float64 {
			return float64(s) - float64(a)
		},
		obs: func(s int) mat.Vector {
			obs := mat.NewVecDense(3, nil)
			obs.SetVec(s, 1.0)
			return obs
		},
	}
}

func defaultConfig() environment.Config {
	return environment.Config{Discount: 0.99, Horizon: 10}
}

func TestNewMaterializesTable(t *testing.T) {
	m, err := New(validModel(), defaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.NumStates() != 3 || m.NumActions() != 2 {
		t.Errorf("wrong dimensions: (%d, %d)", m.NumStates(), m.NumActions())
	}
	if m.ObsDims() != 3 {
		t.Errorf("wrong observation dims: %d", m.ObsDims())
	}
	if m.Discount() != 0.99 || m.Horizon() != 10 {
		t.Errorf("wrong discounting: (%v, %d)", m.Discount(), m.Horizon())
	}

	for s := 0; s < 3; s++ {
		for a := 0; a < 2; a++ {
			want := float64(s) - float64(a)
			if got := m.Reward(s, a); got != want {
				t.Errorf("reward(%d, %d) = %v, want %v", s, a, got, want)
			}

			next, probs := m.NextStates(s, a)
			if len(next) != 1 || len(probs) != 1 || probs[0] != 1.0 {
				t.Errorf("transition(%d, %d) support (%v, %v)", s, a, next,
					probs)
			}
		}
	}

	init := m.InitialStateDistribution()
	if init.AtVec(0) != 1.0 || init.AtVec(1) != 0.0 || init.AtVec(2) != 0.0 {
		t.Errorf("wrong initial distribution: %v", init)
	}

	for s := 0; s < 3; s++ {
		if m.Observation(s).AtVec(s) != 1.0 {
			t.Errorf("observation(%d) not one-hot", s)
		}
	}
}

func TestNewDropsZeroProbabilityEntries(t *testing.T) {
	model := validModel()
	model.tran = func(s, a int) ([]int, []float64) {
		return []int{0, 1, 2}, []float64{0.5, 0.0, 0.5}
	}

	m, err := New(model, defaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	next, probs := m.NextStates(0, 0)
	if len(next) != 2 {
		t.Fatalf("zero-probability entry kept: (%v, %v)", next, probs)
	}
	if next[0] != 0 || next[1] != 2 {
		t.Errorf("wrong support: %v", next)
	}
}

func TestNewInvalidTransitionDistribution(t *testing.T) {
	tests := []struct {
		name  string
		probs []float64
	}{
		{"sum above one", []float64{0.5, 0.6}},
		{"sum below one", []float64{0.2, 0.2}},
		{"negative mass", []float64{1.5, -0.5}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			model := validModel()
			model.tran = func(s, a int) ([]int, []float64) {
				return []int{0, 1}, test.probs
			}

			_, err := New(model, defaultConfig())
			if !IsInvalidDistribution(err) {
				t.Errorf("expected InvalidDistribution, got %v", err)
			}
		})
	}
}

func TestNewInvalidInitialDistribution(t *testing.T) {
	model := validModel()
	model.init = func() mat.Vector {
		return mat.NewVecDense(3, []float64{0.7, 0.7, -0.4})
	}

	_, err := New(model, defaultConfig())
	if !IsInvalidDistribution(err) {
		t.Errorf("expected InvalidDistribution, got %v", err)
	}
}

func TestNewToleratesRoundoff(t *testing.T) {
	model := validModel()
	model.tran = func(s, a int) ([]int, []float64) {
		// Off from 1 by less than the validation tolerance
		return []int{0, 1}, []float64{0.5, 0.5 + 1e-7}
	}

	if _, err := New(model, defaultConfig()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNewIndexOutOfRange(t *testing.T) {
	for _, bad := range []int{-1, 3} {
		model := validModel()
		model.tran = func(s, a int) ([]int, []float64) {
			return []int{bad}, []float64{1.0}
		}

		_, err := New(model, defaultConfig())
		if !IsIndexOutOfRange(err) {
			t.Errorf("index %d: expected IndexOutOfRange, got %v", bad, err)
		}
	}
}

func TestNewObservationShapeMismatch(t *testing.T) {
	model := validModel()
	model.obs = func(s int) mat.Vector {
		return mat.NewVecDense(s+1, nil) // length varies per state
	}

	_, err := New(model, defaultConfig())
	if !IsShapeMismatch(err) {
		t.Errorf("expected ShapeMismatch, got %v", err)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	model := validModel()

	if _, err := New(model, environment.Config{Discount: 1.5, Horizon: 10}); err == nil {
		t.Error("expected error for discount > 1")
	}
	if _, err := New(model, environment.Config{Discount: 0.9, Horizon: 0}); err == nil {
		t.Error("expected error for non-positive horizon")
	}
}

func TestCheckPolicy(t *testing.T) {
	m, err := New(validModel(), defaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := m.CheckPolicy(UniformPolicy(3, 2)); err != nil {
		t.Errorf("uniform policy rejected: %v", err)
	}

	err = m.CheckPolicy(mat.NewDense(2, 2, nil))
	if !IsShapeMismatch(err) {
		t.Errorf("expected ShapeMismatch, got %v", err)
	}

	badRow := UniformPolicy(3, 2)
	badRow.Set(1, 0, 0.9)
	err = m.CheckPolicy(badRow)
	if !IsInvalidDistribution(err) {
		t.Errorf("expected InvalidDistribution, got %v", err)
	}
}

func TestTransitionRowsSumToOne(t *testing.T) {
	model := validModel()
	model.tran = func(s, a int) ([]int, []float64) {
		return []int{0, 1, 2}, []float64{0.2, 0.3, 0.5}
	}

	m, err := New(model, defaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for s := 0; s < m.NumStates(); s++ {
		for a := 0; a < m.NumActions(); a++ {
			_, probs := m.NextStates(s, a)
			var sum float64
			for _, p := range probs {
				sum += p
			}
			if math.Abs(sum-1.0) > ValidationTolerance {
				t.Errorf("row (%d, %d) sums to %v", s, a, sum)
			}
		}
	}
}
