package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gowabot/gowabot/internal/config"
	"github.com/gowabot/gowabot/internal/database"
	"github.com/gowabot/gowabot/internal/media"
)

// TaskDeps holds everything the maintenance tasks need.
type TaskDeps struct {
	Logger *slog.Logger
	Config *config.Config
	Store  database.Store
}

// RegisterAllTasks returns the registry of named maintenance tasks.
func RegisterAllTasks(deps TaskDeps) map[string]TaskFunc {
	return map[string]TaskFunc{
		"scratch_sweep": newScratchSweepTask(deps),
		"stats_trim":    newStatsTrimTask(deps),
	}
}

// newScratchSweepTask removes leftover scratch directories older than the
// configured TTL. Normal operation deletes them on handler exit; the sweep
// catches directories orphaned by crashes.
func newScratchSweepTask(deps TaskDeps) TaskFunc {
	return func(_ context.Context) error {
		removed, err := media.Sweep(deps.Config.Media.ScratchDir, deps.Config.Scheduler.ScratchTTL)
		if err != nil {
			return fmt.Errorf("scratch sweep failed: %w", err)
		}
		if removed > 0 {
			deps.Logger.Info("Swept stale scratch directories", "removed", removed)
		}
		return nil
	}
}

// newStatsTrimTask deletes command events older than the retention window.
func newStatsTrimTask(deps TaskDeps) TaskFunc {
	return func(ctx context.Context) error {
		cutoff := time.Now().UTC().Add(-deps.Config.Scheduler.StatsRetention)
		trimmed, err := deps.Store.TrimBefore(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("stats trim failed: %w", err)
		}
		if trimmed > 0 {
			deps.Logger.Info("Trimmed old command events", "rows", trimmed)
		}
		return nil
	}
}
