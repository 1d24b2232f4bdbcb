// Package scheduler triggers the daily batch at a configured wall-clock time
// and emits heartbeat status while idle. The cron library owns the trigger
// clock, so daylight-saving shifts and clock adjustments are its problem,
// not a hand-rolled wall-clock diff's.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Job is the daily batch entry point.
type Job func(ctx context.Context)

// Scheduler runs one Job per calendar day at the configured time.
type Scheduler struct {
	cron      *cron.Cron
	loc       *time.Location
	hour      int
	minute    int
	heartbeat time.Duration
	entryID   cron.EntryID
}

// New builds a scheduler for a 24-hour "HH:MM" send time in the given
// location.
func New(hour, minute int, loc *time.Location, heartbeat time.Duration) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		loc:       loc,
		hour:      hour,
		minute:    minute,
		heartbeat: heartbeat,
	}
}

// Start registers the daily job and blocks, emitting heartbeats, until the
// context is cancelled. A panicking or erroring job never takes the
// scheduler down; the next day's trigger stays armed.
func (s *Scheduler) Start(ctx context.Context, job Job) error {
	spec := fmt.Sprintf("%d %d * * *", s.minute, s.hour)
	entryID, err := s.cron.AddFunc(spec, func() {
		s.runGuarded(ctx, job)
	})
	if err != nil {
		return errors.Wrapf(err, "schedule daily job at %02d:%02d", s.hour, s.minute)
	}
	s.entryID = entryID
	s.cron.Start()

	logrus.Infof("scheduler started, next run at %s", s.NextRun(time.Now().In(s.loc)).Format("2006-01-02 15:04:05"))

	ticker := time.NewTicker(s.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logrus.Info("scheduler stopped by operator")
			<-s.cron.Stop().Done()
			return ctx.Err()
		case <-ticker.C:
			s.emitHeartbeat()
		}
	}
}

// runGuarded shields the cron goroutine from the job: any panic is logged
// and the daily cadence continues.
func (s *Scheduler) runGuarded(ctx context.Context, job Job) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("daily run panicked: %v", r)
		}
	}()

	logrus.Info("daily trigger fired")
	job(ctx)
}

// emitHeartbeat logs the time remaining until the next trigger without
// triggering anything.
func (s *Scheduler) emitHeartbeat() {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("heartbeat error: %v", r)
		}
	}()

	now := time.Now().In(s.loc)
	next := s.nextFromCron(now)
	remaining := next.Sub(now)
	logrus.Infof("scheduler active, next run in %s (%s)",
		FormatRemaining(remaining), next.Format("2006-01-02 15:04"))
}

// nextFromCron prefers the live cron entry; falls back to the pure
// computation when the entry is not available.
func (s *Scheduler) nextFromCron(now time.Time) time.Time {
	if entry := s.cron.Entry(s.entryID); entry.ID == s.entryID && !entry.Next.IsZero() {
		return entry.Next
	}
	return s.NextRun(now)
}

// NextRun computes the next trigger instant: today at the configured time if
// not yet passed, else tomorrow. Pure, so the property is testable without a
// running cron.
func (s *Scheduler) NextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, s.minute, 0, 0, now.Location())
	if !now.Before(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// FormatRemaining renders a countdown as "3h 42m".
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", h, m)
}
