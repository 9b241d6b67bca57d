package dashboard

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mealbadge/mealbadge-go/internal/gateway"
	"github.com/mealbadge/mealbadge-go/internal/pkg/apperrors"
)

// StatsGateway is the backend surface for the admin activity-log dashboard
type StatsGateway interface {
	CountStudents(ctx context.Context) (int, error)
	CountCheckInsToday(ctx context.Context) (int, error)
	CountPhotosToday(ctx context.Context) (int, error)
	CountExchangesToday(ctx context.Context) (int, error)
	CountPointsAwardedToday(ctx context.Context) (int, error)
}

// Loader fetches the five dashboard counters in parallel with an
// all-or-nothing join: if any one call fails, every derived value resets to
// its default instead of leaving a partially updated dashboard.
type Loader struct {
	gateway StatsGateway
	logger  zerolog.Logger

	stats gateway.DashboardStats
}

// NewLoader creates a dashboard Loader
func NewLoader(gw StatsGateway, logger zerolog.Logger) *Loader {
	return &Loader{
		gateway: gw,
		logger:  logger,
	}
}

// Stats returns the last successfully loaded statistics
func (l *Loader) Stats() gateway.DashboardStats {
	return l.stats
}

// Load refreshes all five counters. On any failure the whole batch is
// treated as failed and the stats reset to zero values.
func (l *Loader) Load(ctx context.Context) error {
	var stats gateway.DashboardStats

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalStudents, err = l.gateway.CountStudents(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.CheckInsToday, err = l.gateway.CountCheckInsToday(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.PhotosToday, err = l.gateway.CountPhotosToday(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.ExchangesToday, err = l.gateway.CountExchangesToday(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.PointsAwardedToday, err = l.gateway.CountPointsAwardedToday(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		l.logger.Warn().Err(err).Msg("Dashboard batch fetch failed, resetting stats")
		l.stats = gateway.DashboardStats{}
		return fmt.Errorf("%w: %w", apperrors.ErrPartialBatch, err)
	}

	l.stats = stats
	return nil
}
