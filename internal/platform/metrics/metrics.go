package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps process-wide counters exposed on /metrics.
type Collector struct {
	totalRequests   atomic.Uint64
	errorRequests   atomic.Uint64
	clientErrors    atomic.Uint64
	rateLimited     atomic.Uint64
	totalDurationMs atomic.Uint64

	attendanceCreated atomic.Uint64
	attendanceUpdated atomic.Uint64
	calendarHits      atomic.Uint64
	calendarMisses    atomic.Uint64
	calendarDayErrors atomic.Uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	if c == nil {
		return
	}
	c.totalRequests.Add(1)
	switch {
	case status >= 500:
		c.errorRequests.Add(1)
	case status == 429:
		c.rateLimited.Add(1)
		c.clientErrors.Add(1)
	case status >= 400:
		c.clientErrors.Add(1)
	}
	c.totalDurationMs.Add(uint64(max(duration.Milliseconds(), 0)))
}

func (c *Collector) AttendanceMarked(created bool) {
	if c == nil {
		return
	}
	if created {
		c.attendanceCreated.Add(1)
		return
	}
	c.attendanceUpdated.Add(1)
}

func (c *Collector) CalendarLookup(hit bool) {
	if c == nil {
		return
	}
	if hit {
		c.calendarHits.Add(1)
		return
	}
	c.calendarMisses.Add(1)
}

func (c *Collector) CalendarDayFailed() {
	if c == nil {
		return
	}
	c.calendarDayErrors.Add(1)
}

func (c *Collector) Snapshot() map[string]any {
	total := c.totalRequests.Load()
	totalMs := c.totalDurationMs.Load()
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":          total,
		"errorsTotal":            c.errorRequests.Load(),
		"clientErrorsTotal":      c.clientErrors.Load(),
		"rateLimitedTotal":       c.rateLimited.Load(),
		"avgDurationMs":          avg,
		"totalDurationMs":        totalMs,
		"attendanceCreatedTotal": c.attendanceCreated.Load(),
		"attendanceUpdatedTotal": c.attendanceUpdated.Load(),
		"calendarCacheHitsTotal": c.calendarHits.Load(),
		"calendarCacheMissTotal": c.calendarMisses.Load(),
		"calendarDayErrorsTotal": c.calendarDayErrors.Load(),
	}
}
