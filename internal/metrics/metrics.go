// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
type Recorder interface {
	// User operation metrics
	IncUserCreated()
	IncUserFetched()
	IncUserListed()
	IncUserCacheHit()
	IncUserCacheMiss()

	// Database metrics. op is a logical operation name, not raw SQL.
	ObserveDBQuery(op string, duration time.Duration, err error)
}
