// Package scheduler drives periodic rescans of the symbol universe.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the cron tasks.
type Scheduler struct {
	Cron *cron.Cron
	Ctx  context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context) *Scheduler {
	return &Scheduler{
		Cron: cron.New(cron.WithSeconds()),
		Ctx:  ctx,
	}
}

// RegisterRescan schedules a full batch rescan on the given cron spec.
func (s *Scheduler) RegisterRescan(spec string, rescan func(ctx context.Context)) error {
	if _, err := s.Cron.AddFunc(spec, func() {
		if s.Ctx.Err() != nil {
			return
		}
		log.Println("[INFO] running scheduled rescan")
		rescan(s.Ctx)
	}); err != nil {
		return fmt.Errorf("register rescan task: %w", err)
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
