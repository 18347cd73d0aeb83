// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/obaranni/staking/metrics"

var (
	metricStorageLoads   = metrics.LazyLoadCounterVec("state_storage_load_count", []string{"source"})
	metricStorageCommits = metrics.LazyLoadCounter("state_storage_commit_count")
	metricCacheHitRatio  = metrics.LazyLoadGauge("state_cache_hit_permille")
)

func reportCacheHitRatio(permille int32) {
	metricCacheHitRatio().Set(int64(permille))
}
