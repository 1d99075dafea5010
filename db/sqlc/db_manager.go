package sqlc

import "time"

// Every analytics call gets this long before its context is cancelled.
const QuerierCtxTimeout = time.Second * 10

// DbManager groups the managers backed by the analytics database.
type DbManager struct {
	Analytics *AnalyticsManager
}

// A nil database leaves analytics disabled; the game server runs
// without postgres.
func NewDbManager(database DBTX) DbManager {
	if database == nil {
		return DbManager{Analytics: NewAnalyticsManager(nil)}
	}
	return DbManager{Analytics: NewAnalyticsManager(New(database))}
}
