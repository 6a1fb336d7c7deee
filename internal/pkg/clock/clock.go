package clock

import "time"

// Clock abstracts time so stores and services can be driven by a fake in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// System returns the wall clock.
func System() Clock { return systemClock{} }

func (systemClock) Now() time.Time { return time.Now() }
