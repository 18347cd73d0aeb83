// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import "github.com/obaranni/staking/metrics"

var (
	metricCalls        = metrics.LazyLoadCounterVec("calls_count", []string{"op", "status"})
	metricCallDuration = metrics.LazyLoadHistogramVec("call_duration_us", []string{"op"}, metrics.BucketCallDuration)
	metricStakers      = metrics.LazyLoadGauge("stakers_count")
)
