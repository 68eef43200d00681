package backup

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/headcount/internal/logger"
)

// Job performs one automatic backup and returns the file it wrote.
type Job func(ctx context.Context) (string, error)

// Scheduler runs a backup Job on a cron schedule. Runs never overlap: a
// tick that fires while the previous run is still going is skipped.
type Scheduler struct {
	cron *cron.Cron
	job  Job

	mu   sync.Mutex
	runs int
}

// NewScheduler validates spec (standard five-field cron or a descriptor
// such as "@daily") and prepares a scheduler for job.
func NewScheduler(spec string, job Job) (*Scheduler, error) {
	s := &Scheduler{job: job}
	s.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("invalid backup schedule %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) run() {
	log := logger.With("component", "backup-scheduler")

	path, err := s.job(context.Background())
	if err != nil {
		log.Error("Automatic backup failed", "error", err)
		return
	}

	s.mu.Lock()
	s.runs++
	s.mu.Unlock()
	log.Info("Automatic backup created", "path", path)
}

// RunNow executes the job once outside the schedule.
func (s *Scheduler) RunNow() {
	s.run()
}

// Runs returns the number of successful runs so far.
func (s *Scheduler) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

// Start begins the schedule in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running job to finish or ctx
// to end.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// ValidateSchedule reports whether spec is a usable backup schedule.
func ValidateSchedule(spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", spec, err)
	}
	return nil
}
