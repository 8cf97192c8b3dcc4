// Package mountaincar implements a discretized Mountain Car MDP.
// Dynamics and reward are based on OpenAI gym's implementation of
// MountainCar-v0, with the continuous position-velocity state space
// snapped to a finite grid so the environment can be materialized into
// a table.
package mountaincar

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"

	"github.com/HANA-PON/ShinRL/utils/floatutils"
)

// Physical constants of the Mountain Car environment
const (
	MinPosition  float64 = -1.2
	MaxPosition  float64 = 0.6
	MaxSpeed     float64 = 0.07
	GoalPosition float64 = 0.5
	Power        float64 = 0.0015 // Engine power
	Gravity      float64 = 0.0025
)

// Actions: full reverse, coast, full forward
const (
	ReverseForce int = iota
	NoForce
	ForwardForce
	numActions
)

// Default state-space resolution
const (
	DefaultPositionRes int = 32
	DefaultVelocityRes int = 32
)

// Episodes start with zero velocity and a position in
// [InitMinPosition, InitMaxPosition], uniformly over the position bins
// that intersect the interval. These bounds follow gym's MountainCar-v0
// start distribution.
const (
	InitMinPosition float64 = -0.6
	InitMaxPosition float64 = -0.4
)

// MountainCar describes the discretized Mountain Car MDP. The
// position axis is split into posRes bins and the velocity axis into
// velRes bins; the state with flat index i has position bin i/velRes
// and velocity bin i%velRes. Transitions apply the continuous dynamics
// to the bin centre and snap the result to the nearest bin, giving a
// deterministic, single-support kernel. States at or beyond the goal
// position are absorbing.
//
// MountainCar implements environment.Model.
type MountainCar struct {
	posRes, velRes int
	positionBounds r1.Interval
	speedBounds    r1.Interval
	power          float64
	gravity        float64
}

// New creates a discretized Mountain Car with posRes position bins and
// velRes velocity bins
func New(posRes, velRes int) (*MountainCar, error) {
	if posRes < 2 || velRes < 2 {
		return nil, fmt.Errorf("new: resolutions (%d, %d) must be at "+
			"least 2", posRes, velRes)
	}

	return &MountainCar{
		posRes:         posRes,
		velRes:         velRes,
		positionBounds: r1.Interval{Min: MinPosition, Max: MaxPosition},
		speedBounds:    r1.Interval{Min: -MaxSpeed, Max: MaxSpeed},
		power:          Power,
		gravity:        Gravity,
	}, nil
}

// NumStates returns the number of (position, velocity) grid cells
func (m *MountainCar) NumStates() int {
	return m.posRes * m.velRes
}

// NumActions returns the number of discrete force settings
func (m *MountainCar) NumActions() int {
	return numActions
}

// InitialDistribution spreads the starting mass uniformly over the
// zero-velocity states whose position bin centre lies within the
// start interval
func (m *MountainCar) InitialDistribution() mat.Vector {
	var starts []int
	for p := 0; p < m.posRes; p++ {
		pos := m.binToPos(p)
		if pos >= InitMinPosition && pos <= InitMaxPosition {
			starts = append(starts, m.stateIndex(p, m.velToBin(0.0)))
		}
	}
	if len(starts) == 0 {
		// Resolution too coarse for the interval; fall back to the
		// nearest bin
		p := m.posToBin((InitMinPosition + InitMaxPosition) / 2)
		starts = []int{m.stateIndex(p, m.velToBin(0.0))}
	}

	init := mat.NewVecDense(m.NumStates(), nil)
	prob := 1.0 / float64(len(starts))
	for _, s := range starts {
		init.SetVec(s, init.AtVec(s)+prob)
	}
	return init
}

// Transition returns the next-state support for taking action in
// state. The discretized dynamics are deterministic, so the support is
// a single state with probability 1.
func (m *MountainCar) Transition(state, action int) ([]int, []float64) {
	position, velocity := m.stateToPosVel(state)
	if position >= GoalPosition {
		return []int{state}, []float64{1.0}
	}

	force := float64(action - 1)

	// Update the velocity
	velocity += force*m.power - m.gravity*math.Cos(3*position)
	velocity = floatutils.Clip(velocity, m.speedBounds.Min,
		m.speedBounds.Max)

	// Update the position
	position += velocity
	position = floatutils.Clip(position, m.positionBounds.Min,
		m.positionBounds.Max)

	// Ensure position stays within bounds
	if position <= m.positionBounds.Min && velocity < 0 {
		velocity = 0
	}

	next := m.stateIndex(m.posToBin(position), m.velToBin(velocity))
	return []int{next}, []float64{1.0}
}

// Reward returns -1 for every step taken before the goal position is
// reached, and 0 afterwards
func (m *MountainCar) Reward(state, action int) float64 {
	position, _ := m.stateToPosVel(state)
	if position >= GoalPosition {
		return 0.0
	}
	return -1.0
}

// Observation returns the (position, velocity) bin centres of state
func (m *MountainCar) Observation(state int) mat.Vector {
	position, velocity := m.stateToPosVel(state)
	return mat.NewVecDense(2, []float64{position, velocity})
}

func (m *MountainCar) String() string {
	return fmt.Sprintf("MountainCar | Resolution: (%d, %d)", m.posRes,
		m.velRes)
}

func (m *MountainCar) stateIndex(posBin, velBin int) int {
	return posBin*m.velRes + velBin
}

func (m *MountainCar) stateToPosVel(state int) (float64, float64) {
	posBin := state / m.velRes
	velBin := state - posBin*m.velRes
	return m.binToPos(posBin), m.binToVel(velBin)
}

func (m *MountainCar) binToPos(bin int) float64 {
	step := (m.positionBounds.Max - m.positionBounds.Min) /
		float64(m.posRes-1)
	return m.positionBounds.Min + float64(bin)*step
}

func (m *MountainCar) binToVel(bin int) float64 {
	step := (m.speedBounds.Max - m.speedBounds.Min) / float64(m.velRes-1)
	return m.speedBounds.Min + float64(bin)*step
}

func (m *MountainCar) posToBin(pos float64) int {
	step := (m.positionBounds.Max - m.positionBounds.Min) /
		float64(m.posRes-1)
	bin := int(math.Round((pos - m.positionBounds.Min) / step))
	return clampInt(bin, 0, m.posRes-1)
}

func (m *MountainCar) velToBin(vel float64) int {
	step := (m.speedBounds.Max - m.speedBounds.Min) / float64(m.velRes-1)
	bin := int(math.Round((vel - m.speedBounds.Min) / step))
	return clampInt(bin, 0, m.velRes-1)
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
