package searcher

import (
	"sync/atomic"
	"time"
)

// SearchMetrics summarizes one search for telemetry and experiments.
type SearchMetrics struct {
	Iterations int
	Rollouts   int
	Duration   time.Duration
	EarlyStop  bool
}

// Collector accumulates search counters. Counters are atomic so
// aggregate collectors can be shared across parallel games; each
// search still owns its own collector.
type Collector struct {
	startTime  time.Time
	iterations atomic.Int64
	rollouts   atomic.Int64
	earlyStop  atomic.Bool
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Start() {
	c.startTime = time.Now()
	c.iterations.Store(0)
	c.rollouts.Store(0)
	c.earlyStop.Store(false)
}

func (c *Collector) AddIteration()        { c.iterations.Add(1) }
func (c *Collector) AddRollout()          { c.rollouts.Add(1) }
func (c *Collector) SetEarlyStop(v bool)  { c.earlyStop.Store(v) }

func (c *Collector) Complete() SearchMetrics {
	return SearchMetrics{
		Iterations: int(c.iterations.Load()),
		Rollouts:   int(c.rollouts.Load()),
		Duration:   time.Since(c.startTime),
		EarlyStop:  c.earlyStop.Load(),
	}
}
