// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/obaranni/staking/cache"
	"github.com/obaranni/staking/kv"
)

const defaultCacheSize = 4096

// Stater is the state creator.
// States created by the same Stater share one read cache.
type Stater struct {
	db    kv.Store
	cache *cache.LRU
}

// NewStater create a new stater.
func NewStater(db kv.Store) *Stater {
	c, _ := cache.NewLRU(defaultCacheSize)
	return &Stater{db, c}
}

// NewState create a new state object.
func (s *Stater) NewState() *State {
	return newState(s.db, s.cache)
}
