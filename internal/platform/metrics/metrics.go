package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	rateLimited     uint64
	totalDurationMs uint64

	checkIns        uint64
	cooldownRejects uint64
	dayComplete     uint64
	autoCheckouts   uint64
	sweeps          uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) CheckIn() {
	atomic.AddUint64(&c.checkIns, 1)
}

func (c *Collector) CooldownRejected() {
	atomic.AddUint64(&c.cooldownRejects, 1)
}

func (c *Collector) DayCompleteRejected() {
	atomic.AddUint64(&c.dayComplete, 1)
}

// Sweep records one auto-checkout pass that closed n days.
func (c *Collector) Sweep(n int) {
	atomic.AddUint64(&c.sweeps, 1)
	if n > 0 {
		atomic.AddUint64(&c.autoCheckouts, uint64(n))
	}
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	limited := atomic.LoadUint64(&c.rateLimited)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":         total,
		"errorsTotal":           errs,
		"rateLimitedTotal":      limited,
		"avgDurationMs":         avg,
		"totalDurationMs":       totalMs,
		"checkInsTotal":         atomic.LoadUint64(&c.checkIns),
		"cooldownRejectedTotal": atomic.LoadUint64(&c.cooldownRejects),
		"dayCompleteTotal":      atomic.LoadUint64(&c.dayComplete),
		"autoCheckoutsTotal":    atomic.LoadUint64(&c.autoCheckouts),
		"sweepsTotal":           atomic.LoadUint64(&c.sweeps),
	}
}
