package chain

import (
	"math"
	"testing"
)

func TestNewValidatesArguments(t *testing.T) {
	if _, err := New(1, 0.0, 0.0, 1.0); err == nil {
		t.Error("expected error for single-state chain")
	}
	if _, err := New(3, 1.0, 0.0, 1.0); err == nil {
		t.Error("expected error for slip = 1")
	}
	if _, err := New(3, -0.1, 0.0, 1.0); err == nil {
		t.Error("expected error for negative slip")
	}
}

func TestDeterministicTransitions(t *testing.T) {
	c, err := New(3, 0.0, -0.1, 1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		state, action, next int
	}{
		{0, Right, 1},
		{1, Right, 2},
		{2, Right, 2}, // right edge stays put
		{0, Left, 0},  // left edge stays put
		{1, Left, 0},
		{2, Left, 1},
	}

	for _, test := range tests {
		next, probs := c.Transition(test.state, test.action)
		if len(next) != 1 || probs[0] != 1.0 {
			t.Errorf("transition(%d, %d) support (%v, %v)", test.state,
				test.action, next, probs)
		}
		if next[0] != test.next {
			t.Errorf("transition(%d, %d) = %d, want %d", test.state,
				test.action, next[0], test.next)
		}
	}
}

func TestSlipperyTransitions(t *testing.T) {
	slip := 0.2
	c, err := New(3, slip, -0.1, 1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	next, probs := c.Transition(1, Right)
	if len(next) != 2 {
		t.Fatalf("wrong support size: %v", next)
	}
	if next[0] != 1 || math.Abs(probs[0]-slip) > 1e-12 {
		t.Errorf("stay entry (%d, %v)", next[0], probs[0])
	}
	if next[1] != 2 || math.Abs(probs[1]-(1.0-slip)) > 1e-12 {
		t.Errorf("move entry (%d, %v)", next[1], probs[1])
	}

	// Bumping into an edge cannot slip: the state never changes
	next, probs = c.Transition(0, Left)
	if len(next) != 1 || next[0] != 0 || probs[0] != 1.0 {
		t.Errorf("edge transition (%v, %v)", next, probs)
	}
}

func TestRewards(t *testing.T) {
	c, err := New(3, 0.0, -0.1, 1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := c.Reward(2, Right); got != 1.0 {
		t.Errorf("goal reward = %v, want 1", got)
	}
	if got := c.Reward(2, Left); got != -0.1 {
		t.Errorf("reward(2, left) = %v, want -0.1", got)
	}
	if got := c.Reward(0, Right); got != -0.1 {
		t.Errorf("reward(0, right) = %v, want -0.1", got)
	}
}

func TestInitialDistributionAndObservations(t *testing.T) {
	c, err := New(4, 0.0, 0.0, 1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	init := c.InitialDistribution()
	if init.AtVec(0) != 1.0 {
		t.Errorf("initial mass not on state 0: %v", init)
	}

	for s := 0; s < c.NumStates(); s++ {
		obs := c.Observation(s)
		if obs.Len() != c.NumStates() || obs.AtVec(s) != 1.0 {
			t.Errorf("observation(%d) not one-hot", s)
		}
	}
}
