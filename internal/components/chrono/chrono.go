// Package chrono is the clock and scheduler used for repeated dumps, times
// are in the site's timezone rather than the host's.
package chrono

import (
	"time"
	_ "time/tzdata"
)

// SiteTimezone is the timezone the site's schools operate in.
const SiteTimezone = "Asia/Shanghai"

type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type LocalClock struct {
	location *time.Location
}

func NewLocalClock(timezone string) (LocalClock, error) {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return LocalClock{}, err
	}
	return LocalClock{location: location}, nil
}

func (c LocalClock) Now() time.Time {
	return time.Now().In(c.location)
}

func (c LocalClock) Location() *time.Location {
	return c.location
}
