package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/triptale-app/triptale-backend/internal/packages"
)

// Scheduler owns the background cron jobs.
type Scheduler struct {
	pkgRepo  *packages.Repo
	pkgCache *packages.Cache
	cron     *cron.Cron
}

func NewScheduler(pkgRepo *packages.Repo, pkgCache *packages.Cache) *Scheduler {
	return &Scheduler{pkgRepo: pkgRepo, pkgCache: pkgCache}
}

// Start registers the cron tasks and kicks off the runner.
func (s *Scheduler) Start() {
	c := cron.New(cron.WithSeconds())

	// Refresh the featured-packages snapshot nightly (12:00 AM)
	_, err := c.AddFunc("0 0 0 * * *", func() {
		s.refreshFeatured()
	})
	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Println("Cron scheduler started (featured refresh nightly at 12:00AM)")
	c.Start()
	s.cron = c
}

// Stop halts the runner. Jobs in flight finish on their own.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) refreshFeatured() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pkgs, err := s.pkgRepo.Random(ctx, 3)
	if err != nil {
		log.Printf("featured refresh: %v", err)
		return
	}

	if err := s.pkgCache.SetFeatured(ctx, pkgs); err != nil {
		log.Printf("featured refresh: %v", err)
		return
	}

	log.Println("Featured packages refreshed at:", time.Now().Format(time.RFC1123))
}
