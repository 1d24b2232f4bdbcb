package main

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lisicong/tiktok-streak/accounts"
	"github.com/lisicong/tiktok-streak/batch"
	"github.com/lisicong/tiktok-streak/browser"
	"github.com/lisicong/tiktok-streak/configs"
	"github.com/lisicong/tiktok-streak/cookies"
	"github.com/lisicong/tiktok-streak/tiktok"
)

// StreakService owns one daily run end to end: config files, browser
// session, batch, summary. Runs are strictly sequential; the browser manager
// blocks a second caller until the first run releases the instance.
type StreakService struct {
	cfg     *configs.Config
	manager *browser.Manager

	mu          sync.Mutex
	running     bool
	lastSummary *batch.Summary
}

func NewStreakService(cfg *configs.Config, manager *browser.Manager) *StreakService {
	return &StreakService{cfg: cfg, manager: manager}
}

// RunOnce executes a full batch: load cookies and accounts, establish the
// session, message every account. Config errors abort this run only; the
// scheduler stays alive for the next day.
func (s *StreakService) RunOnce(ctx context.Context) (*batch.Summary, error) {
	logrus.Info("==================== DAILY RUN STARTED ====================")

	cookieRecords, err := cookies.Load(s.cfg.CookiesPath)
	if err != nil {
		return nil, err
	}
	users, err := accounts.Load(s.cfg.AccountsPath)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, errors.Errorf("no accounts in %s", s.cfg.AccountsPath)
	}

	page, release := s.manager.NewPageWithRelease()
	defer release()

	if err := tiktok.InitSession(ctx, page, cookieRecords); err != nil {
		return nil, errors.Wrap(err, "initialize session")
	}

	logrus.Infof("session ready, processing %d accounts...", len(users))

	sender := tiktok.NewSendAction(page, s.cfg)
	runner := batch.NewRunner(sender, s.cfg.MaxRetries, s.cfg.RetryDelay,
		s.cfg.AccountDelayMin, s.cfg.AccountDelayMax)
	summary := runner.Run(ctx, users)

	s.mu.Lock()
	s.lastSummary = summary
	s.mu.Unlock()

	logrus.Info("==================== DAILY RUN COMPLETED ==================")
	logrus.Infof("results: %d/%d successful, %d failed",
		summary.Success, summary.Total, summary.Failed)
	return summary, nil
}

// RunJob adapts RunOnce to the scheduler: errors are logged, never
// propagated, so a missing cookie file costs one day's run, not the daemon.
func (s *StreakService) RunJob(ctx context.Context) {
	if !s.tryStart() {
		logrus.Warn("a run is already in progress, skipping trigger")
		return
	}
	defer s.finish()

	if _, err := s.RunOnce(ctx); err != nil {
		logrus.Errorf("daily run aborted: %v", err)
	}
}

// Status reports whether a run is in flight and the last finished summary.
func (s *StreakService) Status() (bool, *batch.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running, s.lastSummary
}

func (s *StreakService) tryStart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return false
	}
	s.running = true
	return true
}

func (s *StreakService) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
}
