// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/obaranni/staking/log"
)

// RequestLogger logs every request when enabled, otherwise only those slower
// than slowThreshold. A zero threshold with logging disabled logs nothing.
func RequestLogger(logger log.Logger, enabled bool, slowThreshold time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled && slowThreshold == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body []byte
			if r.Body != nil {
				var err error
				body, err = io.ReadAll(r.Body)
				if err != nil {
					logger.Warn("unexpected body read error", "err", err)
					http.Error(w, "unreadable body", http.StatusBadRequest)
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))
			}

			start := time.Now()
			next.ServeHTTP(w, r)
			elapsed := time.Since(start)

			if enabled || (slowThreshold > 0 && elapsed > slowThreshold) {
				logger.Info("API request",
					"durationMs", elapsed.Milliseconds(),
					"uri", r.URL.String(),
					"method", r.Method,
					"body", string(body),
				)
			}
		})
	}
}
