// Package gate guards cart mutations and checkout entry with the "is the
// restaurant currently open" precondition.
package gate

import (
	"errors"
	"time"

	"github.com/rasoilabs/menucart/internal/domain"
	"github.com/rasoilabs/menucart/internal/schedule"
)

var ErrClosed = errors.New("restaurant is currently closed")

// Gate evaluates the weekly schedule against the clock on every call. The
// result is never cached; a restaurant open at render time may be closed a
// few minutes later.
type Gate struct {
	hours map[string]domain.DaySchedule

	// Now is the clock source, overridable in tests.
	Now func() time.Time
}

func New(hours map[string]domain.DaySchedule) *Gate {
	return &Gate{hours: hours, Now: time.Now}
}

// Open reports whether the restaurant is open right now.
func (g *Gate) Open() bool {
	return schedule.IsOpenNow(g.hours, g.Now())
}

// Run invokes the action only when the restaurant is open; otherwise it
// short-circuits with ErrClosed and the action never runs.
func (g *Gate) Run(action func() error) error {
	if !g.Open() {
		return ErrClosed
	}
	return action()
}
