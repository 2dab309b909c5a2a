package stats

import (
	"context"

	"github.com/verte-zerg/lumen/internal/model"
	"github.com/verte-zerg/lumen/internal/schedule"
)

// SessionSource supplies the session log snapshot.
type SessionSource interface {
	ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.PrayerSessionRecord, error)
}

// Report contains precomputed data for stats rendering.
type Report struct {
	Sessions   []model.PrayerSessionRecord
	Aggregator *Aggregator
	Streaks    model.StreakState
	ByCategory map[model.MysteryCategory]int
	Recent     []int
}

// BuildReport loads the session log and prepares data for stats rendering.
func BuildReport(ctx context.Context, src SessionSource, cfg model.StatsConfig, clock schedule.Clock) (Report, error) {
	sessions, err := src.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	agg := NewAggregator(sessions, clock)
	return Report{
		Sessions:   sessions,
		Aggregator: agg,
		Streaks:    agg.Streaks(),
		ByCategory: agg.CountByCategory(),
		Recent:     agg.RecentActivity(cfg.RecentDays),
	}, nil
}
