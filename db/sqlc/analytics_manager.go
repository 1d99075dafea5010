package sqlc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sqlc-dev/pqtype"
)

type AnalyticsManager struct {
	queries Querier
}

type AnalyticsCounts struct {
	GamesCreated  int64 `json:"games_created"`
	GamesFinished int64 `json:"games_finished"`
}

func NewAnalyticsManager(queries Querier) *AnalyticsManager {
	return &AnalyticsManager{queries: queries}
}

// Enabled is false when the server runs without a database.
func (a *AnalyticsManager) Enabled() bool {
	return a != nil && a.queries != nil
}

func (a *AnalyticsManager) IncrementGamesCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	if !a.Enabled() {
		return nil
	}
	return a.queries.IncrementGamesCreatedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) IncrementGamesFinishedCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	if !a.Enabled() {
		return nil
	}
	return a.queries.IncrementGamesFinishedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) GetGamesCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) (int64, error) {
	if !a.Enabled() {
		return 0, nil
	}
	count, err := a.queries.GetGamesCreatedCount(ctx, serverIpNet)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return count, err
}

func (a *AnalyticsManager) GetGamesFinishedCount(ctx context.Context, serverIpNet pqtype.Inet) (int64, error) {
	if !a.Enabled() {
		return 0, nil
	}
	count, err := a.queries.GetGamesFinishedCount(ctx, serverIpNet)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return count, err
}

func (a *AnalyticsManager) GetCounts(ctx context.Context, serverIpNet pqtype.Inet) (AnalyticsCounts, error) {
	created, err := a.GetGamesCreatedCount(ctx, serverIpNet)
	if err != nil {
		return AnalyticsCounts{}, err
	}
	finished, err := a.GetGamesFinishedCount(ctx, serverIpNet)
	if err != nil {
		return AnalyticsCounts{}, err
	}
	return AnalyticsCounts{GamesCreated: created, GamesFinished: finished}, nil
}
