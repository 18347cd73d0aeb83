// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obaranni/staking/kv"
)

func TestLevelDB(t *testing.T) {
	var (
		key        = []byte("123")
		value      = []byte("456")
		invalidKey = []byte("abc")
	)

	disk, err := New(filepath.Join(t.TempDir(), "db"), Options{16, 16, false})
	require.NoError(t, err)
	defer disk.Close()

	mem, err := NewMem()
	require.NoError(t, err)
	defer mem.Close()

	for _, db := range []*LevelDB{disk, mem} {
		require.NoError(t, db.Put(key, value))

		got, err := db.Get(key)
		assert.NoError(t, err)
		assert.Equal(t, value, got)

		has, err := db.Has(key)
		assert.NoError(t, err)
		assert.True(t, has)

		has, err = db.Has(invalidKey)
		assert.NoError(t, err)
		assert.False(t, has)

		require.NoError(t, db.Delete(key))
		_, err = db.Get(key)
		assert.True(t, db.IsNotFound(err))
	}
}

func TestBulkAndIterate(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	bulk := kv.Bucket("b").NewStore(db).Bulk()
	require.NoError(t, bulk.Put([]byte("1"), []byte("one")))
	require.NoError(t, bulk.Put([]byte("2"), []byte("two")))
	require.NoError(t, bulk.Delete([]byte("3")))
	assert.Equal(t, 3, bulk.Len())

	// nothing visible before write
	_, err = db.Get([]byte("b1"))
	assert.True(t, db.IsNotFound(err))

	require.NoError(t, bulk.Write())
	require.NoError(t, db.Put([]byte("c1"), []byte("other bucket")))

	it := kv.Bucket("b").NewStore(db).Iterate(kv.Range{})
	defer it.Release()

	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	assert.NoError(t, it.Error())
	assert.Equal(t, []string{"1", "2"}, keys)
}

func TestReopenAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db")

	db, err := New(path, Options{})
	require.NoError(t, err)
	require.NoError(t, db.Put([]byte("k"), []byte("v")))

	// the file lock is held while open
	_, err = New(path, Options{})
	require.Error(t, err)

	require.NoError(t, db.Close())

	db, err = New(path, Options{})
	require.NoError(t, err, "reopen after close")
	defer db.Close()

	got, err := db.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}
