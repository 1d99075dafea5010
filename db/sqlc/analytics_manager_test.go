package sqlc_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/saeidalz13/battleship-hotseat/db/sqlc"
	"github.com/sqlc-dev/pqtype"
)

var testServerIp = pqtype.Inet{
	IPNet: net.IPNet{IP: net.ParseIP("10.0.0.7"), Mask: net.CIDRMask(32, 32)},
	Valid: true,
}

func newTestDbManager(t *testing.T) (sqlc.DbManager, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	return sqlc.NewDbManager(db), mock
}

func TestIncrementCounts(t *testing.T) {
	dbManager, mock := newTestDbManager(t)

	mock.ExpectExec(`INSERT INTO game_server_analytics \(server_ip, games_created\)`).
		WithArgs(testServerIp).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO game_server_analytics \(server_ip, games_finished\)`).
		WithArgs(testServerIp).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := dbManager.Analytics.IncrementGamesCreatedCount(ctx, testServerIp); err != nil {
		t.Fatal(err)
	}
	if err := dbManager.Analytics.IncrementGamesFinishedCount(ctx, testServerIp); err != nil {
		t.Fatal(err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations were not met: %v", err)
	}
}

func TestGetCounts(t *testing.T) {
	tests := []struct {
		name     string
		created  *int64
		finished *int64
		expected sqlc.AnalyticsCounts
	}{
		{
			name:     "existing row",
			created:  ptr(int64(7)),
			finished: ptr(int64(3)),
			expected: sqlc.AnalyticsCounts{GamesCreated: 7, GamesFinished: 3},
		},
		{
			name:     "no row yet",
			expected: sqlc.AnalyticsCounts{},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dbManager, mock := newTestDbManager(t)

			createdRows := sqlmock.NewRows([]string{"games_created"})
			if test.created != nil {
				createdRows.AddRow(*test.created)
			}
			finishedRows := sqlmock.NewRows([]string{"games_finished"})
			if test.finished != nil {
				finishedRows.AddRow(*test.finished)
			}

			mock.ExpectQuery(`SELECT games_created FROM game_server_analytics WHERE server_ip = \$1`).
				WithArgs(testServerIp).
				WillReturnRows(createdRows)
			mock.ExpectQuery(`SELECT games_finished FROM game_server_analytics WHERE server_ip = \$1`).
				WithArgs(testServerIp).
				WillReturnRows(finishedRows)

			ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()

			counts, err := dbManager.Analytics.GetCounts(ctx, testServerIp)
			if err != nil {
				t.Fatalf("failed to fetch counts: %v", err)
			}
			if counts != test.expected {
				t.Fatalf("expected counts: %+v\tgot: %+v", test.expected, counts)
			}

			if err = mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("expectations were not met: %v", err)
			}
		})
	}
}

func TestAnalyticsDisabled(t *testing.T) {
	dbManager := sqlc.NewDbManager(nil)
	if dbManager.Analytics.Enabled() {
		t.Fatal("analytics must be disabled without a querier")
	}

	ctx := context.Background()
	if err := dbManager.Analytics.IncrementGamesCreatedCount(ctx, testServerIp); err != nil {
		t.Fatal(err)
	}
	counts, err := dbManager.Analytics.GetCounts(ctx, testServerIp)
	if err != nil {
		t.Fatal(err)
	}
	if counts != (sqlc.AnalyticsCounts{}) {
		t.Fatalf("expected zero counts\tgot: %+v", counts)
	}
}

func ptr[T any](v T) *T {
	return &v
}
