package attendance

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"staffpay/internal/apperr"
)

type Day struct {
	Date   string         `json:"date"`
	Status string         `json:"status"`
	Counts map[string]int `json:"counts"`
	Failed bool           `json:"failed,omitempty"`
}

type MonthView struct {
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	Generation uint64 `json:"generation"`
	Cached     bool   `json:"cached"`
	Days       []Day  `json:"days"`
}

type DayLookup interface {
	ListByDate(ctx context.Context, date string) ([]Record, error)
}

// CalendarObserver receives cache and fan-out events. *metrics.Collector satisfies it.
type CalendarObserver interface {
	CalendarLookup(hit bool)
	CalendarDayFailed()
}

type cacheKey struct {
	scope      string
	generation uint64
}

// Calendar builds per-day status grids by looking up every day of a month
// concurrently. Completed months are cached per generation; Invalidate starts
// a new generation.
type Calendar struct {
	lookup   DayLookup
	limit    int
	observer CalendarObserver

	mu         sync.Mutex
	generation uint64
	cache      map[cacheKey]MonthView
}

func NewCalendar(lookup DayLookup, concurrency int, observer CalendarObserver) *Calendar {
	return &Calendar{
		lookup:   lookup,
		limit:    max(concurrency, 1),
		observer: observer,
		cache:    map[cacheKey]MonthView{},
	}
}

func (c *Calendar) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	clear(c.cache)
}

func (c *Calendar) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

func (c *Calendar) Month(ctx context.Context, monthRaw, yearRaw string) (MonthView, error) {
	v := apperr.NewValidator()
	month, year, _ := v.MonthYear(monthRaw, yearRaw)
	if err := v.Err(); err != nil {
		return MonthView{}, err
	}
	return c.build(ctx, year, month)
}

func (c *Calendar) build(ctx context.Context, year, month int) (MonthView, error) {
	c.mu.Lock()
	key := cacheKey{scope: MonthScope(year, month), generation: c.generation}
	cached, ok := c.cache[key]
	c.mu.Unlock()
	c.observe(ok)
	if ok {
		cached.Cached = true
		return cached, nil
	}

	start, end := MonthBounds(year, month)
	days := make([]Day, end.Day())
	g := new(errgroup.Group)
	g.SetLimit(c.limit)
	for i := range days {
		date := start.AddDate(0, 0, i).Format(apperr.DateLayout)
		g.Go(func() error {
			days[i] = c.day(ctx, date)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return MonthView{}, err
	}

	view := MonthView{Year: year, Month: month, Generation: key.generation, Days: days}

	c.mu.Lock()
	if c.generation == key.generation {
		c.cache[key] = view
	}
	c.mu.Unlock()
	return view, nil
}

// day never fails; a lookup error yields an empty day.
func (c *Calendar) day(ctx context.Context, date string) Day {
	records, err := c.lookup.ListByDate(ctx, date)
	if err != nil {
		slog.Warn("calendar day lookup failed", "date", date, "err", err)
		if c.observer != nil {
			c.observer.CalendarDayFailed()
		}
		return Day{Date: date, Status: StatusNoData, Counts: map[string]int{}, Failed: true}
	}
	status, counts := DayStatus(records)
	return Day{Date: date, Status: status, Counts: counts}
}

func (c *Calendar) observe(hit bool) {
	if c.observer != nil {
		c.observer.CalendarLookup(hit)
	}
}

// DayStatus picks present over half_day over absent. Leave alone, or no
// records, is no-data.
func DayStatus(records []Record) (string, map[string]int) {
	counts := map[string]int{}
	for _, rec := range records {
		counts[rec.Status]++
	}
	switch {
	case counts[StatusPresent] > 0:
		return StatusPresent, counts
	case counts[StatusHalfDay] > 0:
		return StatusHalfDay, counts
	case counts[StatusAbsent] > 0:
		return StatusAbsent, counts
	default:
		return StatusNoData, counts
	}
}
