// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/obaranni/staking/api/events"
	"github.com/obaranni/staking/api/middleware"
	"github.com/obaranni/staking/api/staking"
	"github.com/obaranni/staking/api/token"
	"github.com/obaranni/staking/eventdb"
	"github.com/obaranni/staking/log"
	"github.com/obaranni/staking/metrics"
	"github.com/obaranni/staking/state"
)

var logger = log.WithContext("pkg", "api")

// DefaultEventsLimit caps a page of /events when no limit is configured.
const DefaultEventsLimit = 1000

type Options struct {
	AllowedOrigins       string
	EnableReqLogger      bool
	SlowQueriesThreshold time.Duration
	EnableMetrics        bool
	EventsLimit          uint64
}

// New return api router
func New(stater *state.Stater, eventDB *eventdb.EventDB, opts Options) http.Handler {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}
	limit := opts.EventsLimit
	if limit == 0 {
		limit = DefaultEventsLimit
	}

	router := mux.NewRouter()

	staking.New(stater).
		Mount(router, "/staking")
	token.New(stater).
		Mount(router, "/token")
	events.New(eventDB, limit).
		Mount(router, "/events")

	if opts.EnableMetrics {
		router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
		router.Use(metricsMiddleware)
	}

	var handler http.Handler = handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	return middleware.RequestLogger(logger, opts.EnableReqLogger, opts.SlowQueriesThreshold)(handler)
}
