package todo

import (
	"math"
	"time"

	"github.com/Makepad-fr/tada/internal/model"
)

// Clock returns the current time in milliseconds.
type Clock func() int64

func wallClock() int64 { return time.Now().UnixMilli() }

// IDSource hands out strictly increasing ids derived from a millisecond clock.
// Two calls within the same millisecond still get distinct ids.
type IDSource struct {
	clock Clock
	last  model.ID
}

// NewIDSource returns an IDSource reading the given clock. A nil clock uses wall time.
func NewIDSource(clock Clock) *IDSource {
	if clock == nil {
		clock = wallClock
	}
	return &IDSource{clock: clock}
}

// Next returns a fresh id greater than every id seen so far. Once the
// floor reaches math.MaxInt64 it can only return the clock value; Store
// resolves any collision that follows.
func (s *IDSource) Next() model.ID {
	id := model.ID(s.clock())
	if id <= s.last && s.last < math.MaxInt64 {
		id = s.last + 1
	}
	if id > s.last {
		s.last = id
	}
	return id
}

// Observe raises the floor to the largest id in c, so hydrated records never collide.
func (s *IDSource) Observe(c model.Collection) {
	for _, t := range c {
		if t.ID > s.last {
			s.last = t.ID
		}
	}
}
