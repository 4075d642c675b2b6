package services

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const DefaultBlackoutRefreshSchedule = "@daily"

// BlackoutRefresher re-expands the blackout table on a cron schedule so
// recurring closures keep pace with the moving booking horizon.
type BlackoutRefresher struct {
	refresh  func() error
	schedule string
	logger   zerolog.Logger
}

func NewBlackoutRefresher(refresh func() error, schedule string, logger zerolog.Logger) *BlackoutRefresher {
	if schedule == "" {
		schedule = DefaultBlackoutRefreshSchedule
	}
	return &BlackoutRefresher{refresh: refresh, schedule: schedule, logger: logger}
}

func (refresher *BlackoutRefresher) Start(ctx context.Context) error {
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(refresher.schedule, func() {
		refresher.RunOnce()
	}); err != nil {
		return fmt.Errorf("blackout refresh schedule %q: %w", refresher.schedule, err)
	}
	scheduler.Start()

	go func() {
		<-ctx.Done()
		<-scheduler.Stop().Done()
	}()
	return nil
}

// RunOnce rebuilds the table. A failed rebuild keeps the previous table.
func (refresher *BlackoutRefresher) RunOnce() error {
	if err := refresher.refresh(); err != nil {
		refresher.logger.Error().Err(err).Msg("blackout refresh failed, keeping previous table")
		return err
	}
	refresher.logger.Debug().Msg("blackout table refreshed")
	return nil
}
