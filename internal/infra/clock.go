package infra

import "time"

// Clock abstracts "now" in the branch-local timezone so that sale timestamps
// and caixa day buckets are deterministic in tests.
type Clock interface {
	Now() time.Time
	// Location is the branch-local timezone.
	Location() *time.Location
}

type systemClock struct{ loc *time.Location }

// NewClock loads the configured IANA zone; falls back to UTC when the zone
// database is missing the name.
func NewClock(tz string) Clock {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	return &systemClock{loc: loc}
}

func (c *systemClock) Now() time.Time           { return time.Now().In(c.loc) }
func (c *systemClock) Location() *time.Location { return c.loc }

// FixedClock is a test clock pinned to a single instant.
type FixedClock struct {
	Instant time.Time
}

func (c *FixedClock) Now() time.Time           { return c.Instant }
func (c *FixedClock) Location() *time.Location { return c.Instant.Location() }
