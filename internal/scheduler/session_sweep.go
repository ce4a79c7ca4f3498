// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/openshelf/catalog/internal/database"
)

// SessionSweeper periodically removes expired rows from the sessions table.
// The session store's built-in cleanup goroutine is disabled in favour of
// this job so that sweeps run on one predictable schedule.
type SessionSweeper struct {
	db       *database.Database
	schedule string

	cron      *cron.Cron
	mu        sync.Mutex
	isRunning bool
}

// NewSessionSweeper creates a sweeper with a cron schedule like "0 * * * *".
func NewSessionSweeper(db *database.Database, schedule string) *SessionSweeper {
	return &SessionSweeper{
		db:       db,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start schedules the sweep job.
func (s *SessionSweeper) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.Sweep(); err != nil {
			log.Printf("Session sweep failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.isRunning = true
	log.Printf("Session sweeper started with schedule %q", s.schedule)
	return nil
}

// Stop halts the scheduler, waiting for a running sweep to finish.
func (s *SessionSweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	<-s.cron.Stop().Done()
	s.isRunning = false
	log.Printf("Session sweeper stopped")
}

// Sweep deletes all expired session rows and logs how many were removed.
// The store records expiry as a julian day number.
func (s *SessionSweeper) Sweep() error {
	result := s.db.DB.Exec("DELETE FROM sessions WHERE expiry < julianday('now')")
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		log.Printf("Session sweep removed %d expired sessions", result.RowsAffected)
	}
	return nil
}
