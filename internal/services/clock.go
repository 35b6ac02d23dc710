package services

import "time"

// TimeProvider supplies the current time so windows and timestamps can be tested
// deterministically.
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider reports the system time in UTC.
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
