// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import "sync/atomic"

// Stats counts lookups of GetOrLoad.
type Stats struct {
	hit, miss atomic.Int64
	reported  atomic.Int32 // hit ratio per mille at the last Report, -1 before any
}

func newStats() *Stats {
	s := &Stats{}
	s.reported.Store(-1)
	return s
}

func (s *Stats) record(hit bool) {
	if hit {
		s.hit.Add(1)
	} else {
		s.miss.Add(1)
	}
}

// Counts returns the number of hits and misses.
func (s *Stats) Counts() (hit, miss int64) {
	return s.hit.Load(), s.miss.Load()
}

// HitRatio returns hits per mille of all lookups, 0 before any lookup.
func (s *Stats) HitRatio() int32 {
	hit, miss := s.Counts()
	if hit+miss == 0 {
		return 0
	}
	return int32(hit * 1000 / (hit + miss))
}

// Report calls fn with the hit ratio when it moved since the previous Report.
func (s *Stats) Report(fn func(permille int32)) {
	ratio := s.HitRatio()
	if s.reported.Swap(ratio) != ratio {
		fn(ratio)
	}
}
