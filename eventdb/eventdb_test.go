// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb_test

import (
	"math"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obaranni/staking/core"
	"github.com/obaranni/staking/eventdb"
)

var (
	alice = core.Address{0xa}
	bob   = core.Address{0xb}
)

func seed(t *testing.T, db *eventdb.EventDB) []*eventdb.Event {
	var events []*eventdb.Event
	for i := range 10 {
		account, name := alice, "Staked"
		if i%2 == 1 {
			account, name = bob, "Unstaked"
		}
		events = append(events, &eventdb.Event{
			Name:    name,
			Account: account,
			Amount:  new(big.Int).Lsh(big.NewInt(int64(i)), 200),
			Time:    uint64(1000 + i),
		})
	}
	require.NoError(t, db.Insert(events...))
	return events
}

func TestEventDB(t *testing.T) {
	db, err := eventdb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Insert())
	events := seed(t, db)
	for i, ev := range events {
		assert.Equal(t, uint64(i+1), ev.Seq)
	}

	all, err := db.Filter(nil)
	require.NoError(t, err)
	require.Len(t, all, 10)
	assert.Equal(t, events[9].Amount, all[9].Amount)
	assert.Equal(t, events[3], all[3])

	tests := []struct {
		name    string
		filter  *eventdb.Filter
		wantSeq []uint64
	}{
		{"by name", &eventdb.Filter{Name: "Unstaked"}, []uint64{2, 4, 6, 8, 10}},
		{"by account", &eventdb.Filter{Account: &alice}, []uint64{1, 3, 5, 7, 9}},
		{"both", &eventdb.Filter{Name: "Staked", Account: &bob}, nil},
		{"desc paged", &eventdb.Filter{
			Order:   eventdb.DESC,
			Options: &eventdb.Options{Offset: 1, Limit: 3},
		}, []uint64{9, 8, 7}},
		{"account paged", &eventdb.Filter{
			Account: &bob,
			Options: &eventdb.Options{Offset: 0, Limit: 2},
		}, []uint64{2, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.Filter(tt.filter)
			require.NoError(t, err)
			var seqs []uint64
			for _, ev := range got {
				seqs = append(seqs, ev.Seq)
			}
			assert.Equal(t, tt.wantSeq, seqs)
		})
	}

	_, err = db.Filter(&eventdb.Filter{Options: &eventdb.Options{Offset: math.MaxInt64 + 1, Limit: 1}})
	assert.ErrorContains(t, err, "out of range")
	_, err = db.Filter(&eventdb.Filter{Options: &eventdb.Options{Limit: math.MaxUint64}})
	assert.ErrorContains(t, err, "out of range")
}

func TestEventDBPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")
	db, err := eventdb.New(path)
	require.NoError(t, err)
	seed(t, db)
	require.NoError(t, db.Close())

	db, err = eventdb.New(path)
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, path, db.Path())

	require.NoError(t, db.Insert(&eventdb.Event{Name: "Distributed", Account: alice}))
	got, err := db.Filter(&eventdb.Filter{Name: "Distributed"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(11), got[0].Seq)
	assert.Equal(t, 0, got[0].Amount.Sign())
}
