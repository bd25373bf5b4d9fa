package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/gowabot/gowabot/internal/config"
)

// TaskFunc is a scheduled maintenance job.
type TaskFunc func(ctx context.Context) error

// Scheduler runs the configured maintenance tasks on their cron schedules.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
	cfg       *config.SchedulerConfig
	taskMap   map[string]TaskFunc

	mu      sync.Mutex
	running bool
}

// NewScheduler creates a scheduler backed by gocron.
func NewScheduler(logger *slog.Logger, cfg *config.SchedulerConfig, taskMap map[string]TaskFunc) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &Scheduler{
		scheduler: s,
		logger:    logger.With("component", "scheduler"),
		cfg:       cfg,
		taskMap:   taskMap,
	}, nil
}

// Start registers all enabled tasks and starts the scheduler.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler is already running")
	}

	scheduled := 0
	for name, taskCfg := range s.cfg.Tasks {
		if !taskCfg.Enabled {
			s.logger.Info("Skipping disabled task", "task_name", name)
			continue
		}
		taskFunc, ok := s.taskMap[name]
		if !ok {
			s.logger.Warn("Task configured but not registered, skipping", "task_name", name)
			continue
		}
		if taskCfg.Schedule == "" {
			s.logger.Warn("Task enabled but has empty schedule, skipping", "task_name", name)
			continue
		}

		_, err := s.scheduler.NewJob(
			gocron.CronJob(taskCfg.Schedule, false),
			gocron.NewTask(
				func(ctx context.Context, taskName string) {
					s.logger.Info("Running scheduled task", "task_name", taskName)
					start := time.Now()
					if taskErr := taskFunc(ctx); taskErr != nil {
						s.logger.Error("Scheduled task failed", "task_name", taskName, "error", taskErr)
					}
					s.logger.Info("Finished scheduled task", "task_name", taskName, "duration", time.Since(start))
				},
				context.Background(),
				name,
			),
			gocron.WithName(name),
		)
		if err != nil {
			s.logger.Error("Failed to schedule task", "task_name", name, "schedule", taskCfg.Schedule, "error", err)
			continue
		}

		s.logger.Info("Scheduled task", "task_name", name, "schedule", taskCfg.Schedule)
		scheduled++
	}

	s.scheduler.Start()
	s.running = true
	s.logger.Info("Scheduler started", "tasks_scheduled", scheduled)
	return nil
}

// Stop shuts the scheduler down, waiting for running jobs.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	err := s.scheduler.Shutdown()
	if err != nil {
		s.logger.Error("Error during scheduler shutdown", "error", err)
	} else {
		s.logger.Info("Scheduler stopped")
	}
	s.running = false
	return err
}
