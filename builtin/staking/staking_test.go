// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obaranni/staking/builtin/reverts"
	"github.com/obaranni/staking/builtin/solidity"
	"github.com/obaranni/staking/builtin/token"
	"github.com/obaranni/staking/core"
	"github.com/obaranni/staking/lvldb"
	"github.com/obaranni/staking/state"
)

var (
	tokenAddr   = core.BytesToAddress([]byte("Token"))
	stakingAddr = core.BytesToAddress([]byte("Staking"))
	accounts    = func() []core.Address {
		out := make([]core.Address, 7)
		for i := range out {
			out[i] = core.Address{0xac, byte(i)}
		}
		return out
	}()
	owner = accounts[0]
)

// hookGateway intercepts outgoing transfers of a real token gateway.
type hookGateway struct {
	AssetGateway
	onMoveTo func(recipient core.Address, amount *big.Int) error
}

func (g *hookGateway) MoveTo(recipient core.Address, amount *big.Int) error {
	if g.onMoveTo != nil {
		if err := g.onMoveTo(recipient, amount); err != nil {
			return err
		}
	}
	return g.AssetGateway.MoveTo(recipient, amount)
}

type testEnv struct {
	t       *testing.T
	state   *state.State
	token   *token.Token
	gateway *hookGateway
	staking *Staking
}

func newTestEnv(t *testing.T, params Params) *testEnv {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := state.New(db)
	tok := token.New(tokenAddr, st)
	require.NoError(t, tok.Mint(owner, big.NewInt(1_000_000_000)))

	gw := &hookGateway{AssetGateway: tok.Gateway(stakingAddr)}
	s, err := New(stakingAddr, st, gw, params)
	require.NoError(t, err)
	return &testEnv{t: t, state: st, token: tok, gateway: gw, staking: s}
}

func (e *testEnv) fund(addr core.Address, amount int64) {
	require.NoError(e.t, e.token.Transfer(owner, addr, big.NewInt(amount)))
}

func (e *testEnv) approve(addr core.Address, amount int64) {
	require.NoError(e.t, e.token.Approve(addr, stakingAddr, big.NewInt(amount)))
}

func (e *testEnv) stake(addr core.Address, amount int64) *Event {
	ev, err := e.staking.Stake(addr, big.NewInt(amount))
	require.NoError(e.t, err)
	return ev
}

func (e *testEnv) fundAndStake(addr core.Address, amount int64) *Event {
	e.fund(addr, amount)
	e.approve(addr, amount)
	return e.stake(addr, amount)
}

func (e *testEnv) unstake(addr core.Address, amount int64) *Event {
	ev, err := e.staking.Unstake(addr, big.NewInt(amount))
	require.NoError(e.t, err)
	return ev
}

func (e *testEnv) distribute(amount int64) *Event {
	e.approve(owner, amount)
	ev, err := e.staking.DistributeReward(owner, big.NewInt(amount))
	require.NoError(e.t, err)
	return ev
}

func (e *testEnv) claim(addr core.Address) *Event {
	ev, err := e.staking.ClaimReward(addr)
	require.NoError(e.t, err)
	return ev
}

func (e *testEnv) balanceOf(addr core.Address) int64 {
	bal, err := e.token.BalanceOf(addr)
	require.NoError(e.t, err)
	return bal.Int64()
}

func (e *testEnv) totalStaked() int64 {
	v, err := e.staking.TotalStaked()
	require.NoError(e.t, err)
	return v.Int64()
}

func (e *testEnv) stakeOf(addr core.Address) int64 {
	v, err := e.staking.StakeOf(addr)
	require.NoError(e.t, err)
	return v.Int64()
}

func (e *testEnv) stakersCount() uint64 {
	v, err := e.staking.StakersCount()
	require.NoError(e.t, err)
	return v
}

func (e *testEnv) leftover() int64 {
	v, err := e.staking.Leftover()
	require.NoError(e.t, err)
	return v.Int64()
}

func (e *testEnv) assertTotals(total int64, count uint64) {
	assert.Equal(e.t, total, e.totalStaked())
	assert.Equal(e.t, count, e.stakersCount())
}

func assertEvent(t *testing.T, ev *Event, name string, account core.Address, amount int64) {
	require.NotNil(t, ev)
	assert.Equal(t, name, ev.Name)
	assert.Equal(t, account, ev.Account)
	assert.Equal(t, amount, ev.Amount.Int64())
}

// prelude runs the stake and unstake sequence shared by both strategies.
// It leaves accounts[1] with 300 staked and accounts[2] fully exited.
func prelude(t *testing.T, e *testEnv) {
	a1, a2, a3 := accounts[1], accounts[2], accounts[3]
	e.assertTotals(0, 0)
	assert.Equal(t, int64(0), e.balanceOf(stakingAddr))

	_, err := e.staking.Stake(a1, big.NewInt(0))
	assert.ErrorIs(t, err, reverts.ErrInvalidAmount)

	_, err = e.staking.Stake(a1, big.NewInt(100))
	assert.ErrorIs(t, err, reverts.ErrTransferFailed)
	assert.ErrorIs(t, err, token.ErrExceedsAllowance)

	// approving another token instance does not help
	other := token.New(core.BytesToAddress([]byte("Other")), e.state)
	require.NoError(t, other.Mint(a1, big.NewInt(100)))
	require.NoError(t, other.Approve(a1, stakingAddr, big.NewInt(100)))
	_, err = e.staking.Stake(a1, big.NewInt(100))
	assert.ErrorIs(t, err, reverts.ErrTransferFailed)

	assertEvent(t, e.fundAndStake(a1, 100), EventStaked, a1, 100)
	e.assertTotals(100, 1)
	assert.Equal(t, int64(100), e.balanceOf(stakingAddr))
	assert.Equal(t, int64(100), e.stakeOf(a1))

	_, err = e.staking.Stake(a1, big.NewInt(100))
	assert.ErrorIs(t, err, reverts.ErrTransferFailed)
	e.assertTotals(100, 1)
	assert.Equal(t, int64(100), e.balanceOf(stakingAddr))

	assertEvent(t, e.fundAndStake(a2, 5000), EventStaked, a2, 5000)
	e.assertTotals(5100, 2)

	assertEvent(t, e.fundAndStake(a1, 500), EventStaked, a1, 500)
	e.assertTotals(5600, 2)
	assert.Equal(t, int64(600), e.stakeOf(a1))

	assertEvent(t, e.unstake(a1, 300), EventUnstaked, a1, 300)
	e.assertTotals(5300, 2)
	assert.Equal(t, int64(300), e.balanceOf(a1))

	assertEvent(t, e.unstake(a2, 5000), EventUnstaked, a2, 5000)
	e.assertTotals(300, 1)
	assert.Equal(t, int64(5000), e.balanceOf(a2))
	assert.Equal(t, int64(0), e.stakeOf(a2))

	_, err = e.staking.Unstake(a3, big.NewInt(1000))
	assert.ErrorIs(t, err, reverts.ErrInsufficientBalance)
	_, err = e.staking.Unstake(a1, big.NewInt(0))
	assert.ErrorIs(t, err, reverts.ErrInvalidAmount)
	_, err = e.staking.Unstake(a1, big.NewInt(301))
	assert.ErrorIs(t, err, reverts.ErrInsufficientBalance)
	e.assertTotals(300, 1)
	assert.Equal(t, int64(300), e.balanceOf(stakingAddr))
	assert.Equal(t, int64(300), e.stakeOf(a1))

	for i, amount := range []int64{50, 1, 449, 10000} {
		e.fundAndStake(accounts[i+3], amount)
	}
	e.assertTotals(10800, 5)
}

func TestSnapshotStaking(t *testing.T) {
	e := newTestEnv(t, DefaultParams(StrategySnapshot))
	prelude(t, e)

	assertEvent(t, e.distribute(100_000), EventDistributed, owner, 99970)
	assert.Equal(t, int64(30), e.leftover())

	for i, want := range []int64{3070, 5000, 460, 0, 4150, 92590} {
		assert.Equal(t, want, e.balanceOf(accounts[i+1]), "account %d", i+1)
	}
	assert.Equal(t, e.totalStaked()+e.leftover(), e.balanceOf(stakingAddr))

	for i, amount := range []int64{300, 0, 50, 1, 449} {
		if amount > 0 {
			e.unstake(accounts[i+1], amount)
		}
	}
	e.assertTotals(10000, 1)

	assertEvent(t, e.distribute(1_080_000), EventDistributed, owner, 1_080_030)
	assert.Equal(t, int64(0), e.leftover())
	assert.Equal(t, int64(92590+1_080_030), e.balanceOf(accounts[6]))
	assert.Equal(t, int64(10000), e.balanceOf(stakingAddr))

	_, err := e.staking.ClaimReward(accounts[6])
	assert.ErrorIs(t, err, reverts.ErrClaimUnsupported)
}

func TestAccumulatorStaking(t *testing.T) {
	params := DefaultParams(StrategyAccumulator)
	params.Precision = big.NewInt(1)
	e := newTestEnv(t, params)
	prelude(t, e)

	assertEvent(t, e.distribute(100_000), EventDistributed, owner, 100_000)

	for i, want := range map[int]int64{1: 2700, 3: 450, 4: 9, 5: 4041} {
		assertEvent(t, e.claim(accounts[i]), EventRewardClaimed, accounts[i], want)
	}
	for i, amount := range map[int]int64{1: 300, 3: 50, 4: 1, 5: 449} {
		e.unstake(accounts[i], amount)
	}
	for i, want := range []int64{3300, 5000, 500, 10, 4490} {
		assert.Equal(t, want, e.balanceOf(accounts[i+1]), "account %d", i+1)
	}

	assertEvent(t, e.distribute(50_000), EventDistributed, owner, 50_000)
	assertEvent(t, e.claim(accounts[6]), EventRewardClaimed, accounts[6], 140_000)
	e.unstake(accounts[6], 10000)
	assert.Equal(t, int64(150_000), e.balanceOf(accounts[6]))
	e.assertTotals(0, 0)
}

func TestAccumulatorDefaultPrecision(t *testing.T) {
	e := newTestEnv(t, DefaultParams(StrategyAccumulator))
	prelude(t, e)
	e.distribute(100_000)

	for i, want := range map[int]int64{1: 2777, 3: 462, 4: 9, 5: 4157} {
		pending, err := e.staking.PendingReward(accounts[i])
		require.NoError(t, err)
		assert.Equal(t, want, pending.Int64())
		assertEvent(t, e.claim(accounts[i]), EventRewardClaimed, accounts[i], want)
	}
	for i, amount := range map[int]int64{1: 300, 3: 50, 4: 1, 5: 449} {
		e.unstake(accounts[i], amount)
	}
	e.distribute(50_000)
	assertEvent(t, e.claim(accounts[6]), EventRewardClaimed, accounts[6], 142_592)

	rpsu, err := e.staking.RewardPerStakedUnit()
	require.NoError(t, err)
	checkpoint, err := e.staking.CheckpointOf(accounts[6])
	require.NoError(t, err)
	assert.Equal(t, rpsu, checkpoint)
}

func TestClaimWithoutReward(t *testing.T) {
	e := newTestEnv(t, DefaultParams(StrategyAccumulator))
	a := accounts[1]

	// never staked
	assertEvent(t, e.claim(a), EventRewardClaimed, a, 0)

	e.fundAndStake(a, 100)
	e.distribute(1000)
	assertEvent(t, e.claim(a), EventRewardClaimed, a, 1000)
	assertEvent(t, e.claim(a), EventRewardClaimed, a, 0)
	assert.Equal(t, int64(1000), e.balanceOf(a))
}

func TestUnstakeKeepsReward(t *testing.T) {
	e := newTestEnv(t, DefaultParams(StrategyAccumulator))
	a, b := accounts[1], accounts[2]
	e.fundAndStake(a, 100)
	e.fundAndStake(b, 100)
	e.distribute(1000)

	e.unstake(a, 100)
	e.distribute(1000)

	assertEvent(t, e.claim(a), EventRewardClaimed, a, 500)
	assertEvent(t, e.claim(b), EventRewardClaimed, b, 1500)
	assert.Equal(t, int64(600), e.balanceOf(a))
}

func TestDistributeRejects(t *testing.T) {
	for _, strategy := range []Strategy{StrategySnapshot, StrategyAccumulator} {
		t.Run(string(strategy), func(t *testing.T) {
			e := newTestEnv(t, DefaultParams(strategy))
			before := e.balanceOf(owner)

			_, err := e.staking.DistributeReward(owner, big.NewInt(0))
			assert.ErrorIs(t, err, reverts.ErrInvalidAmount)

			e.approve(owner, 100)
			_, err = e.staking.DistributeReward(owner, big.NewInt(100))
			assert.ErrorIs(t, err, reverts.ErrNoStakers)
			assert.Equal(t, before, e.balanceOf(owner))
			allowance, err := e.token.Allowance(owner, stakingAddr)
			require.NoError(t, err)
			assert.Equal(t, int64(100), allowance.Int64())

			e.fundAndStake(accounts[1], 10)
			_, err = e.staking.DistributeReward(accounts[2], big.NewInt(100))
			assert.ErrorIs(t, err, reverts.ErrTransferFailed)
		})
	}
}

func TestRollbackOnFailedPush(t *testing.T) {
	e := newTestEnv(t, DefaultParams(StrategySnapshot))
	a, b := accounts[1], accounts[2]
	e.fundAndStake(a, 100)
	e.fundAndStake(b, 300)

	rejected := errors.New("recipient rejected")
	e.gateway.onMoveTo = func(recipient core.Address, _ *big.Int) error {
		if recipient == b {
			return rejected
		}
		return nil
	}

	_, err := e.staking.Unstake(b, big.NewInt(300))
	assert.ErrorIs(t, err, reverts.ErrTransferFailed)
	assert.ErrorIs(t, err, rejected)
	e.assertTotals(400, 2)
	assert.Equal(t, int64(300), e.stakeOf(b))

	// a is paid first, the failure on b must undo it and the pull
	ownerBefore := e.balanceOf(owner)
	e.approve(owner, 1000)
	_, err = e.staking.DistributeReward(owner, big.NewInt(1000))
	assert.ErrorIs(t, err, reverts.ErrTransferFailed)
	assert.Equal(t, ownerBefore, e.balanceOf(owner))
	assert.Equal(t, int64(0), e.balanceOf(a))
	assert.Equal(t, int64(0), e.leftover())
	assert.Equal(t, int64(400), e.balanceOf(stakingAddr))

	// the lock is released after a revert
	e.gateway.onMoveTo = nil
	assertEvent(t, e.distribute(1000), EventDistributed, owner, 1000)
	assert.Equal(t, int64(250), e.balanceOf(a))
}

func TestReentrancy(t *testing.T) {
	e := newTestEnv(t, DefaultParams(StrategyAccumulator))
	a := accounts[1]
	e.fundAndStake(a, 100)
	e.distribute(1000)

	var reentryErrs []error
	e.gateway.onMoveTo = func(recipient core.Address, _ *big.Int) error {
		_, err := e.staking.ClaimReward(recipient)
		reentryErrs = append(reentryErrs, err)
		_, err = e.staking.Unstake(recipient, big.NewInt(1))
		reentryErrs = append(reentryErrs, err)
		return nil
	}

	assertEvent(t, e.claim(a), EventRewardClaimed, a, 1000)
	assertEvent(t, e.unstake(a, 100), EventUnstaked, a, 100)

	require.Len(t, reentryErrs, 4)
	for _, err := range reentryErrs {
		assert.ErrorIs(t, err, reverts.ErrReentrantCall)
	}
	assert.Equal(t, int64(1100), e.balanceOf(a))
	e.assertTotals(0, 0)
}

func TestParams(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	sctx := solidity.NewContext(stakingAddr, state.New(db))

	_, err = LoadParams(sctx)
	assert.ErrorIs(t, err, reverts.ErrUnknownStrategy)

	assert.ErrorIs(t, SaveParams(sctx, Params{Strategy: "other"}), reverts.ErrUnknownStrategy)
	assert.Error(t, SaveParams(sctx, Params{Strategy: StrategyAccumulator}))

	want := Params{Strategy: StrategySnapshot, SharePrecision: 0, Precision: big.NewInt(0)}
	require.NoError(t, SaveParams(sctx, want))
	got, err := LoadParams(sctx)
	require.NoError(t, err)
	assert.Equal(t, want.Strategy, got.Strategy)
	assert.Equal(t, uint64(0), got.SharePrecision)

	want = DefaultParams(StrategyAccumulator)
	require.NoError(t, SaveParams(sctx, want))
	got, err = LoadParams(sctx)
	require.NoError(t, err)
	assert.Equal(t, StrategyAccumulator, got.Strategy)
	assert.Equal(t, DefaultSharePrecision, got.SharePrecision)
	assert.Equal(t, 0, got.Precision.Cmp(DefaultPrecision))

	_, err = New(stakingAddr, state.New(db), nil, Params{Strategy: "other"})
	assert.ErrorIs(t, err, reverts.ErrUnknownStrategy)
}
