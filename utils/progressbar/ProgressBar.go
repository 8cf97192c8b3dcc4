// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"strings"
	"time"
)

// ProgressBar prints in-place progress for a loop of known length. It
// redraws on every Increment call, so it suits loops whose iterations
// are slow relative to terminal output, such as sweeps of full value
// iterations.
type ProgressBar struct {
	width   int
	max     int
	current int
	started time.Time
	closed  bool
}

// New returns a new progress bar that is width characters wide and
// reaches 100% after max Increment() calls
func New(width, max int) *ProgressBar {
	return &ProgressBar{
		width:   width,
		max:     max,
		started: time.Now(),
	}
}

// Increment advances the internal progress counter by one and redraws
// the bar. Each time an iteration is performed, Increment should be
// called.
func (p *ProgressBar) Increment() {
	if p.closed || p.current >= p.max {
		return
	}
	p.current++

	filled := p.current * p.width / p.max
	var bar strings.Builder
	bar.WriteString("|")
	bar.WriteString(strings.Repeat("█", filled))
	bar.WriteString(strings.Repeat(" ", p.width-filled))
	fmt.Printf("\r%v| [%3.0f%% | elapsed: %v]", bar.String(),
		float64(p.current)/float64(p.max)*100,
		time.Since(p.started).Round(time.Second))
}

// Close finishes the progress bar. The bar no longer updates after
// Close is called.
func (p *ProgressBar) Close() {
	if p.closed {
		panic("close: close on closed progress bar")
	}
	p.closed = true
	fmt.Println() // Jump to next line after printed bar
}
