package service

import "time"

// Clock returns the current time. Services read it once per operation.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}
