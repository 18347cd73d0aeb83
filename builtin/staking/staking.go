// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"
	"time"

	"github.com/pkg/errors"

	"github.com/obaranni/staking/builtin/reverts"
	"github.com/obaranni/staking/builtin/solidity"
	"github.com/obaranni/staking/builtin/staking/accumulator"
	"github.com/obaranni/staking/builtin/staking/ledger"
	"github.com/obaranni/staking/builtin/staking/reward"
	"github.com/obaranni/staking/builtin/staking/snapshot"
	"github.com/obaranni/staking/core"
	"github.com/obaranni/staking/log"
	"github.com/obaranni/staking/state"
)

var (
	logger   = log.WithContext("pkg", "staking")
	slotLock = solidity.Slot("lock")
)

// AssetGateway moves the staked asset between holders and the contract.
type AssetGateway interface {
	// MoveFromApproved pulls amount from owner, who must have approved the contract.
	MoveFromApproved(owner core.Address, amount *big.Int) error
	// MoveTo pushes amount from the contract to recipient.
	MoveTo(recipient core.Address, amount *big.Int) error
	BalanceOf(holder core.Address) (*big.Int, error)
}

// Distributor is a reward strategy.
type Distributor interface {
	Distribute(pool *big.Int) (*reward.Result, error)
	Claim(addr core.Address) (*big.Int, error)
	Pending(addr core.Address) (*big.Int, error)
	// Settle runs before every stake change of addr.
	Settle(addr core.Address, p *ledger.Participant) error
}

// snapshotDistributor pays at distribution time, so there is nothing to claim.
type snapshotDistributor struct {
	*snapshot.Distributor
}

func (snapshotDistributor) Claim(core.Address) (*big.Int, error) {
	return nil, reverts.ErrClaimUnsupported
}

func (snapshotDistributor) Pending(core.Address) (*big.Int, error) {
	return new(big.Int), nil
}

func (snapshotDistributor) Settle(core.Address, *ledger.Participant) error {
	return nil
}

// Staking implements the staking contract. Every call is all-or-nothing:
// it runs inside a state checkpoint which is reverted on any error, and
// outgoing transfers happen only after the bookkeeping is final.
type Staking struct {
	state       *state.State
	params      Params
	gateway     AssetGateway
	ledger      *ledger.Ledger
	distributor Distributor
	snapshot    *snapshot.Distributor
	accumulator *accumulator.Distributor
	lock        *solidity.Bool
}

// New creates the contract bound to addr, moving assets through gateway.
func New(addr core.Address, state *state.State, gateway AssetGateway, params Params) (*Staking, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	sctx := solidity.NewContext(addr, state)
	s := &Staking{
		state:   state,
		params:  params,
		gateway: gateway,
		ledger:  ledger.New(sctx),
		lock:    solidity.NewBool(sctx, slotLock),
	}
	switch params.Strategy {
	case StrategySnapshot:
		s.snapshot = snapshot.New(sctx, s.ledger, params.SharePrecision)
		s.distributor = snapshotDistributor{s.snapshot}
	case StrategyAccumulator:
		s.accumulator = accumulator.New(sctx, s.ledger, params.Precision)
		s.distributor = s.accumulator
	}
	return s, nil
}

//
// Getters - no state change
//

func (s *Staking) Strategy() Strategy {
	return s.params.Strategy
}

func (s *Staking) Params() Params {
	return s.params
}

func (s *Staking) TotalStaked() (*big.Int, error) {
	return s.ledger.TotalStaked()
}

func (s *Staking) StakeOf(addr core.Address) (*big.Int, error) {
	return s.ledger.StakeOf(addr)
}

// StakersCount returns the number of addresses with positive stake.
func (s *Staking) StakersCount() (uint64, error) {
	return s.ledger.StakerCount()
}

// Leftover returns the undistributed remainder, always zero for the
// accumulator strategy.
func (s *Staking) Leftover() (*big.Int, error) {
	if s.snapshot == nil {
		return new(big.Int), nil
	}
	return s.snapshot.Leftover()
}

// RewardPerStakedUnit returns the scaled accumulator, always zero for the
// snapshot strategy.
func (s *Staking) RewardPerStakedUnit() (*big.Int, error) {
	if s.accumulator == nil {
		return new(big.Int), nil
	}
	return s.accumulator.RewardPerStakedUnit()
}

func (s *Staking) CheckpointOf(addr core.Address) (*big.Int, error) {
	p, err := s.ledger.Participant(addr)
	if err != nil {
		return nil, err
	}
	return p.Checkpoint, nil
}

// PendingReward returns what addr would receive by claiming now.
func (s *Staking) PendingReward(addr core.Address) (*big.Int, error) {
	return s.distributor.Pending(addr)
}

//
// Calls - state changes
//

// Stake pulls amount from caller and adds it to the caller's stake.
func (s *Staking) Stake(caller core.Address, amount *big.Int) (*Event, error) {
	return s.call("stake", func() (*Event, error) {
		if !core.IsPositive(amount) {
			return nil, reverts.ErrInvalidAmount
		}
		if err := s.pull(caller, amount); err != nil {
			return nil, err
		}
		if err := s.ledger.IncreaseStake(caller, amount, s.distributor.Settle); err != nil {
			return nil, err
		}
		return &Event{Name: EventStaked, Account: caller, Amount: amount}, nil
	})
}

// Unstake withdraws amount of the caller's stake. Unclaimed rewards are kept.
func (s *Staking) Unstake(caller core.Address, amount *big.Int) (*Event, error) {
	return s.call("unstake", func() (*Event, error) {
		if !core.IsPositive(amount) {
			return nil, reverts.ErrInvalidAmount
		}
		if err := s.ledger.DecreaseStake(caller, amount, s.distributor.Settle); err != nil {
			return nil, err
		}
		if err := s.push(caller, amount); err != nil {
			return nil, err
		}
		return &Event{Name: EventUnstaked, Account: caller, Amount: amount}, nil
	})
}

// DistributeReward pulls amount from caller and hands it to the strategy.
// The event carries the amount actually attributed to stakers.
func (s *Staking) DistributeReward(caller core.Address, amount *big.Int) (*Event, error) {
	return s.call("distribute", func() (*Event, error) {
		if !core.IsPositive(amount) {
			return nil, reverts.ErrInvalidAmount
		}
		total, err := s.ledger.TotalStaked()
		if err != nil {
			return nil, err
		}
		if total.Sign() == 0 {
			return nil, reverts.ErrNoStakers
		}
		if err := s.pull(caller, amount); err != nil {
			return nil, err
		}
		res, err := s.distributor.Distribute(amount)
		if err != nil {
			return nil, err
		}
		for _, p := range res.Payouts {
			if err := s.push(p.Recipient, p.Amount); err != nil {
				return nil, err
			}
		}
		return &Event{Name: EventDistributed, Account: caller, Amount: res.Distributed}, nil
	})
}

// ClaimReward pays out the caller's pending reward. A claim with nothing
// pending succeeds with a zero amount.
func (s *Staking) ClaimReward(caller core.Address) (*Event, error) {
	return s.call("claim", func() (*Event, error) {
		owed, err := s.distributor.Claim(caller)
		if err != nil {
			return nil, err
		}
		if owed.Sign() > 0 {
			if err := s.push(caller, owed); err != nil {
				return nil, err
			}
		}
		return &Event{Name: EventRewardClaimed, Account: caller, Amount: owed}, nil
	})
}

func (s *Staking) pull(owner core.Address, amount *big.Int) error {
	if err := s.gateway.MoveFromApproved(owner, amount); err != nil {
		return reverts.Wrap(reverts.ErrTransferFailed, err)
	}
	return nil
}

func (s *Staking) push(recipient core.Address, amount *big.Int) error {
	if err := s.gateway.MoveTo(recipient, amount); err != nil {
		return reverts.Wrap(reverts.ErrTransferFailed, err)
	}
	return nil
}

// call runs fn under the re-entrancy lock inside a state checkpoint.
func (s *Staking) call(op string, fn func() (*Event, error)) (ev *Event, err error) {
	start := time.Now()
	checkpoint := s.state.NewCheckpoint()

	defer func() {
		status := "ok"
		if err != nil {
			s.state.RevertTo(checkpoint)
			status = "revert"
			if !reverts.IsRevertErr(err) {
				status = "error"
				err = errors.WithMessage(err, op)
			}
			logger.Debug("call reverted", "op", op, "err", err)
		} else {
			logger.Debug("call", "op", op, "event", ev.Name, "account", ev.Account, "amount", ev.Amount)
			if n, cerr := s.ledger.StakerCount(); cerr == nil {
				metricStakers().Set(int64(n))
			}
		}
		metricCalls().AddWithLabel(1, map[string]string{"op": op, "status": status})
		metricCallDuration().ObserveWithLabels(time.Since(start).Microseconds(), map[string]string{"op": op})
	}()

	locked, err := s.lock.Get()
	if err != nil {
		return nil, err
	}
	if locked {
		return nil, reverts.ErrReentrantCall
	}
	s.lock.Set(true)

	if ev, err = fn(); err != nil {
		return nil, err
	}
	s.lock.Set(false)
	return ev, nil
}
