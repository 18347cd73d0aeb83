// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/obaranni/staking/cache"
	"github.com/obaranni/staking/core"
	"github.com/obaranni/staking/kv"
	"github.com/obaranni/staking/stackedmap"
)

// StorageBucket is the kv bucket holding contract storage.
const StorageBucket = kv.Bucket("s")

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey struct {
	addr core.Address
	key  core.Bytes32
}

func (k storageKey) bytes() []byte {
	return append(k.addr.Bytes(), k.key.Bytes()...)
}

// State manages contract storage.
// It's not safe for concurrent use.
type State struct {
	store kv.Store
	cache *cache.LRU
	sm    *stackedmap.StackedMap[storageKey, rlp.RawValue]
}

// New create state object over db, with its own read cache.
func New(db kv.Store) *State {
	c, _ := cache.NewLRU(defaultCacheSize)
	return newState(db, c)
}

func newState(db kv.Store, c *cache.LRU) *State {
	s := &State{
		store: StorageBucket.NewStore(db),
		cache: c,
	}
	s.sm = stackedmap.New(s.load)
	return s
}

// load implements stackedmap.MapGetter.
func (s *State) load(key storageKey) (rlp.RawValue, bool, error) {
	v, err := s.cache.GetOrLoad(key, func(any) (any, error) {
		metricStorageLoads().AddWithLabel(1, map[string]string{"source": "db"})
		data, err := s.store.Get(key.bytes())
		if err != nil {
			if s.store.IsNotFound(err) {
				return rlp.RawValue(nil), nil
			}
			return nil, err
		}
		return rlp.RawValue(data), nil
	})
	s.cache.Stats().Report(reportCacheHitRatio)
	if err != nil {
		return nil, false, err
	}
	return v.(rlp.RawValue), true, nil
}

// GetStorage returns storage value for the given address and key.
func (s *State) GetStorage(addr core.Address, key core.Bytes32) (core.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return core.Bytes32{}, err
	}
	if len(raw) == 0 {
		return core.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return core.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// special case for rlp list, it should be customized storage value
		// return hash of raw data
		return core.Blake2b(raw), nil
	}
	return core.BytesToBytes32(content), nil
}

// SetStorage set storage value for the given address and key.
func (s *State) SetStorage(addr core.Address, key, value core.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr core.Address, key core.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data, nil
}

// SetRawStorage set storage value in rlp raw.
func (s *State) SetRawStorage(addr core.Address, key core.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
func (s *State) EncodeStorage(addr core.Address, key core.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
func (s *State) DecodeStorage(addr core.Address, key core.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Changes returns the number of slots touched since the last commit.
func (s *State) Changes() int {
	touched := make(map[storageKey]struct{})
	s.sm.Journal(func(k storageKey, _ rlp.RawValue) bool {
		touched[k] = struct{}{}
		return true
	})
	return len(touched)
}

// Commit writes all changes into the underlying store in one atomic bulk.
// Checkpoints taken before Commit are invalidated.
func (s *State) Commit() error {
	latest := make(map[storageKey]rlp.RawValue)
	s.sm.Journal(func(k storageKey, v rlp.RawValue) bool {
		latest[k] = v
		return true
	})
	if len(latest) == 0 {
		return nil
	}

	bulk := s.store.Bulk()
	for k, v := range latest {
		var err error
		if len(v) == 0 {
			err = bulk.Delete(k.bytes())
		} else {
			err = bulk.Put(k.bytes(), v)
		}
		if err != nil {
			return &Error{err}
		}
	}
	if err := bulk.Write(); err != nil {
		return &Error{err}
	}

	for k, v := range latest {
		s.cache.Add(k, v)
	}
	metricStorageCommits().Add(int64(len(latest)))
	s.sm = stackedmap.New(s.load)
	return nil
}
