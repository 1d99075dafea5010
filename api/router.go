package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/saeidalz13/battleship-hotseat/db/sqlc"
)

type RespAnalytics struct {
	sqlc.AnalyticsCounts
	AnalyticsEnabled bool  `json:"analytics_enabled"`
	ActiveSessions   int64 `json:"active_sessions"`
	RunningGames     int   `json:"running_games"`
}

// NewRouter creates and configures a new router with all endpoints
func NewRouter(rp *RequestProcessor) *mux.Router {
	r := mux.NewRouter()

	r.Handle("/battleship", rp).Methods("GET")
	r.HandleFunc("/analytics", GetAnalytics(rp)).Methods("GET")

	return r
}

func GetAnalytics(rp *RequestProcessor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := RespAnalytics{
			AnalyticsEnabled: rp.analytics.Enabled(),
			ActiveSessions:   rp.sessionManager.ActiveSessions(),
			RunningGames:     rp.gameManager.CountGames(),
		}

		ctx, cancel := context.WithTimeout(r.Context(), sqlc.QuerierCtxTimeout)
		defer cancel()

		counts, err := rp.analytics.GetCounts(ctx, rp.serverInet())
		if err != nil {
			log.Println("analytics:", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "failed to fetch analytics"})
			return
		}
		resp.AnalyticsCounts = counts

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}
