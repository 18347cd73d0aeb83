// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accumulator

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obaranni/staking/builtin/reverts"
	"github.com/obaranni/staking/builtin/solidity"
	"github.com/obaranni/staking/builtin/staking/ledger"
	"github.com/obaranni/staking/core"
	"github.com/obaranni/staking/lvldb"
	"github.com/obaranni/staking/state"
)

var (
	e18     = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	stakers = []core.Address{{0x1}, {0x3}, {0x4}, {0x5}, {0x6}}
)

type fixture struct {
	t      *testing.T
	d      *Distributor
	ledger *ledger.Ledger
}

func setup(t *testing.T, precision *big.Int) *fixture {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sctx := solidity.NewContext(core.Address{0x5}, state.New(db))
	l := ledger.New(sctx)
	return &fixture{t: t, d: New(sctx, l, precision), ledger: l}
}

func (f *fixture) stake(addr core.Address, amount int64) {
	require.NoError(f.t, f.ledger.IncreaseStake(addr, big.NewInt(amount), f.d.Settle))
}

func (f *fixture) unstake(addr core.Address, amount int64) {
	require.NoError(f.t, f.ledger.DecreaseStake(addr, big.NewInt(amount), f.d.Settle))
}

func (f *fixture) distribute(pool int64) {
	res, err := f.d.Distribute(big.NewInt(pool))
	require.NoError(f.t, err)
	require.Equal(f.t, pool, res.Distributed.Int64())
	require.Empty(f.t, res.Payouts)
}

func (f *fixture) claim(addr core.Address) int64 {
	owed, err := f.d.Claim(addr)
	require.NoError(f.t, err)
	return owed.Int64()
}

func (f *fixture) pending(addr core.Address) int64 {
	owed, err := f.d.Pending(addr)
	require.NoError(f.t, err)
	return owed.Int64()
}

func TestReferenceScenario(t *testing.T) {
	tests := []struct {
		name      string
		precision *big.Int
		claims    []int64
		final     int64
	}{
		{"unit precision", big.NewInt(1), []int64{2700, 450, 9, 4041}, 140_000},
		{"1e18 precision", e18, []int64{2777, 462, 9, 4157}, 142_592},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t, tt.precision)
			stakes := []int64{300, 50, 1, 449, 10000}
			for i, s := range stakes {
				f.stake(stakers[i], s)
			}
			f.distribute(100_000)

			for i, want := range tt.claims {
				assert.Equal(t, want, f.claim(stakers[i]))
				f.unstake(stakers[i], stakes[i])
			}

			f.distribute(50_000)
			assert.Equal(t, tt.final, f.claim(stakers[4]))
			for i := range tt.claims {
				assert.Equal(t, int64(0), f.pending(stakers[i]))
			}
		})
	}
}

func TestClaimTwice(t *testing.T) {
	f := setup(t, e18)
	a := stakers[0]
	f.stake(a, 100)
	assert.Equal(t, int64(0), f.claim(a))

	f.distribute(1000)
	assert.Equal(t, int64(1000), f.pending(a))
	assert.Equal(t, int64(1000), f.claim(a))
	assert.Equal(t, int64(0), f.claim(a))
}

func TestUnstakeBeforeClaim(t *testing.T) {
	f := setup(t, e18)
	a, b := stakers[0], stakers[1]
	f.stake(a, 100)
	f.stake(b, 300)
	f.distribute(4000)

	f.unstake(a, 100)
	assert.Equal(t, int64(1000), f.pending(a))

	// distributions after the exit earn nothing
	f.distribute(3000)
	assert.Equal(t, int64(1000), f.pending(a))
	assert.Equal(t, int64(1000), f.claim(a))
	assert.Equal(t, int64(6000), f.claim(b))
}

func TestNoRetroactiveReward(t *testing.T) {
	f := setup(t, e18)
	a, b := stakers[0], stakers[1]
	f.stake(a, 100)
	f.distribute(1000)

	f.stake(b, 100)
	assert.Equal(t, int64(0), f.pending(b))

	// topping up keeps what was earned before
	f.stake(a, 100)
	assert.Equal(t, int64(1000), f.pending(a))

	f.distribute(300)
	assert.Equal(t, int64(1200), f.pending(a))
	assert.Equal(t, int64(100), f.pending(b))
}

func TestAccumulatorMonotonic(t *testing.T) {
	f := setup(t, e18)
	_, err := f.d.Distribute(big.NewInt(1))
	assert.ErrorIs(t, err, reverts.ErrNoStakers)
	_, err = f.d.Distribute(big.NewInt(0))
	assert.ErrorIs(t, err, reverts.ErrInvalidAmount)

	f.stake(stakers[0], 3)
	last := new(big.Int)
	for _, pool := range []int64{1, 2, 10, 7} {
		f.distribute(pool)
		rpsu, err := f.d.RewardPerStakedUnit()
		require.NoError(t, err)
		require.True(t, rpsu.Cmp(last) > 0)
		last = rpsu
	}
	p, err := f.ledger.Participant(stakers[0])
	require.NoError(t, err)
	assert.Equal(t, 0, p.Checkpoint.Sign())
}

func TestDistributeOverflow(t *testing.T) {
	f := setup(t, e18)
	f.stake(stakers[0], 1)
	f.distribute(100)

	// pool * 1e18 does not fit in 256 bits
	pool := new(big.Int).Lsh(big.NewInt(1), 250)
	_, err := f.d.Distribute(pool)
	require.Error(t, err)
	assert.ErrorIs(t, err, reverts.ErrInvalidAmount)
	assert.ErrorIs(t, err, solidity.ErrOverflow)
	assert.True(t, reverts.IsRevertErr(err))

	rpsu, err := f.d.RewardPerStakedUnit()
	require.NoError(t, err)
	assert.Equal(t, 0, new(big.Int).Mul(big.NewInt(100), e18).Cmp(rpsu))
}
