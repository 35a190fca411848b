package metrics

import "time"

// Noop is a Recorder that discards all metric events.
type Noop struct{}

// NewNoop creates a no-op Recorder.
func NewNoop() *Noop {
	return &Noop{}
}

func (n *Noop) IncUserCreated()                                     {}
func (n *Noop) IncUserFetched()                                     {}
func (n *Noop) IncUserListed()                                      {}
func (n *Noop) IncUserCacheHit()                                    {}
func (n *Noop) IncUserCacheMiss()                                   {}
func (n *Noop) ObserveDBQuery(op string, d time.Duration, err error) {}
