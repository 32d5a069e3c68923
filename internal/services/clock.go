package services

import (
	"time"

	"github.com/yukikurage/supertask-api/internal/utils"
)

// Clock resolves "today" in the application time zone.
type Clock struct {
	Location *time.Location
	NowFunc  func() time.Time
}

// NewClock creates a Clock for loc using the wall clock.
func NewClock(loc *time.Location) Clock {
	return Clock{Location: loc, NowFunc: time.Now}
}

// Now returns the current instant.
func (c Clock) Now() time.Time {
	if c.NowFunc == nil {
		return time.Now()
	}
	return c.NowFunc()
}

// Today returns the current calendar date as a date value.
func (c Clock) Today() time.Time {
	return utils.Today(c.Now(), c.Location)
}
