package services

import "time"

// Clock supplies "now" to the services. Tests pin it.
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now().UTC()
}

func (c Clock) now() time.Time {
	if c == nil {
		return SystemClock()
	}
	return c().UTC()
}
