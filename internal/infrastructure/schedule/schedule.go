// Package schedule provides wall-clock firing rules and a driver that runs
// jobs whenever their rule fires.
package schedule

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"BlogForge/internal/ports"
)

// DailyAt fires every day at the given local time.
type DailyAt struct {
	Hour   int
	Minute int
	Loc    *time.Location
}

var _ ports.ScheduleRule = DailyAt{}

// Next returns the next daily firing instant strictly after the reference.
func (r DailyAt) Next(after time.Time) time.Time {
	loc := r.Loc
	if loc == nil {
		loc = time.UTC
	}
	t := after.In(loc)
	next := time.Date(t.Year(), t.Month(), t.Day(), r.Hour, r.Minute, 0, 0, loc)
	if !next.After(after) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// WeeklyAt fires once a week on the given weekday and local time.
type WeeklyAt struct {
	Weekday time.Weekday
	Hour    int
	Minute  int
	Loc     *time.Location
}

var _ ports.ScheduleRule = WeeklyAt{}

// Next returns the next weekly firing instant strictly after the reference.
func (r WeeklyAt) Next(after time.Time) time.Time {
	loc := r.Loc
	if loc == nil {
		loc = time.UTC
	}
	t := after.In(loc)
	next := time.Date(t.Year(), t.Month(), t.Day(), r.Hour, r.Minute, 0, 0, loc)

	days := (int(r.Weekday) - int(next.Weekday()) + 7) % 7
	next = next.AddDate(0, 0, days)
	if !next.After(after) {
		next = next.AddDate(0, 0, 7)
	}
	return next
}

type entry struct {
	rule ports.ScheduleRule
	job  func(time.Time)
}

// Runner fires registered jobs at the instants their rules compute. Each
// entry gets its own goroutine with a timer reset after every run.
type Runner struct {
	logger  *slog.Logger
	entries []entry

	mu      sync.Mutex
	stop    chan struct{}
	done    sync.WaitGroup
	started bool
}

var _ ports.ScheduleDriver = (*Runner)(nil)

// NewRunner builds an empty driver.
func NewRunner(logger *slog.Logger) *Runner {
	return &Runner{logger: logger}
}

// Schedule registers a job. Must be called before Start.
func (r *Runner) Schedule(rule ports.ScheduleRule, job func(time.Time)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry{rule: rule, job: job})
}

// Start launches one goroutine per registered entry. Calling Start twice
// without Stop is a no-op.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return nil
	}
	r.started = true
	r.stop = make(chan struct{})

	for _, e := range r.entries {
		r.done.Add(1)
		go r.run(ctx, e, r.stop)
	}

	r.log("schedule runner started", "entries", len(r.entries))
	return nil
}

func (r *Runner) run(ctx context.Context, e entry, stop chan struct{}) {
	defer r.done.Done()

	for {
		next := e.rule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case fired := <-timer.C:
			e.job(fired)
		case <-ctx.Done():
			timer.Stop()
			return
		case <-stop:
			timer.Stop()
			return
		}
	}
}

// Stop halts all entry goroutines and waits for in-flight jobs to return.
func (r *Runner) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return nil
	}
	r.started = false
	close(r.stop)
	r.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		r.done.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Runner) log(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Info(msg, args...)
	}
}
