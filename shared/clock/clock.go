package clock

import (
	"roost/shared/timezone"
	"time"
)

// Clock supplies "now" in the application timezone. Date logic never reads
// the wall clock directly so it stays deterministic under test.
type Clock interface {
	Now() time.Time
}

type appClock struct{}

func (appClock) Now() time.Time {
	return timezone.Now()
}

// App returns the production clock backed by the configured app timezone.
func App() Clock {
	return appClock{}
}

// Fixed returns a clock frozen at the given instant.
func Fixed(t time.Time) Clock {
	return fixedClock{t: t}
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}
