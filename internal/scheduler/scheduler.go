package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"SignalScout/internal/scanner"
)

// Scheduler triggers scans on a cron schedule.
type Scheduler struct {
	Cron    *cron.Cron
	Scanner *scanner.Scanner
	Ctx     context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, sc *scanner.Scanner) *Scheduler {
	return &Scheduler{
		Cron:    cron.New(cron.WithSeconds()),
		Scanner: sc,
		Ctx:     ctx,
	}
}

// Register registers the scan task.
func (s *Scheduler) Register(scanCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunScanNow executes a scan immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunScanNow() {
	s.scanTask()
}

func (s *Scheduler) scanTask() {
	log.Println("[INFO] running scheduled scan")
	result, err := s.Scanner.RunScan(s.Ctx, time.Now())
	if err != nil {
		if errors.Is(err, scanner.ErrScanInProgress) {
			log.Println("[WARN] scan already in progress, trigger skipped")
			return
		}
		log.Printf("[ERROR] scheduled scan: %v", err)
		return
	}
	log.Printf("[INFO] scheduled scan done: %d scanned, %d candidates",
		result.ScannedAssets, len(result.Candidates))
}
