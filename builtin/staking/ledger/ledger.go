// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"

	"github.com/obaranni/staking/builtin/reverts"
	"github.com/obaranni/staking/builtin/solidity"
	"github.com/obaranni/staking/builtin/staking/linkedlist"
	"github.com/obaranni/staking/core"
)

var (
	slotTotalStaked  = solidity.Slot("total-staked")
	slotParticipants = solidity.Slot("participants")
	slotStakersHead  = solidity.Slot("stakers-head")
	slotStakersTail  = solidity.Slot("stakers-tail")
	slotStakersCount = solidity.Slot("stakers-count")
)

// Participant is the per address staking record. Records are never deleted,
// a zero stake keeps the reward bookkeeping.
type Participant struct {
	Staked     *big.Int
	Checkpoint *big.Int // reward per staked unit at the last settlement
	Accrued    *big.Int // settled but unclaimed reward
}

func (p *Participant) normalize() {
	if p.Staked == nil {
		p.Staked = new(big.Int)
	}
	if p.Checkpoint == nil {
		p.Checkpoint = new(big.Int)
	}
	if p.Accrued == nil {
		p.Accrued = new(big.Int)
	}
}

// Hook is called with the loaded record before a stake change is applied.
// Changes it makes to the record are persisted along with the new stake.
type Hook func(addr core.Address, p *Participant) error

// Ledger owns participant stakes and the aggregate total. It keeps the set
// of addresses with positive stake in a linked list so they can be iterated.
type Ledger struct {
	total        *solidity.Uint256
	participants *solidity.Mapping[core.Address, *Participant]
	stakers      *linkedlist.LinkedList
}

func New(sctx *solidity.Context) *Ledger {
	return &Ledger{
		total:        solidity.NewUint256(sctx, slotTotalStaked),
		participants: solidity.NewMapping[core.Address, *Participant](sctx, slotParticipants),
		stakers:      linkedlist.New(sctx, slotStakersHead, slotStakersTail, slotStakersCount),
	}
}

// Participant returns the record of addr, a zero record if it never staked.
func (l *Ledger) Participant(addr core.Address) (*Participant, error) {
	p, err := l.participants.Get(addr)
	if err != nil {
		return nil, err
	}
	p.normalize()
	return p, nil
}

func (l *Ledger) StakeOf(addr core.Address) (*big.Int, error) {
	p, err := l.Participant(addr)
	if err != nil {
		return nil, err
	}
	return p.Staked, nil
}

func (l *Ledger) TotalStaked() (*big.Int, error) {
	return l.total.Get()
}

// StakerCount returns the number of addresses with positive stake.
func (l *Ledger) StakerCount() (uint64, error) {
	return l.stakers.Len()
}

func (l *Ledger) IncreaseStake(addr core.Address, amount *big.Int, hook Hook) error {
	if !core.IsPositive(amount) {
		return reverts.ErrInvalidAmount
	}
	p, err := l.Participant(addr)
	if err != nil {
		return err
	}
	if hook != nil {
		if err := hook(addr, p); err != nil {
			return err
		}
	}

	wasZero := p.Staked.Sign() == 0
	p.Staked.Add(p.Staked, amount)
	if err := l.total.Add(amount); err != nil {
		return err
	}
	if err := l.participants.Set(addr, p); err != nil {
		return err
	}
	if wasZero {
		return l.stakers.Add(addr)
	}
	return nil
}

func (l *Ledger) DecreaseStake(addr core.Address, amount *big.Int, hook Hook) error {
	if !core.IsPositive(amount) {
		return reverts.ErrInvalidAmount
	}
	p, err := l.Participant(addr)
	if err != nil {
		return err
	}
	if p.Staked.Cmp(amount) < 0 {
		return reverts.ErrInsufficientBalance
	}
	if hook != nil {
		if err := hook(addr, p); err != nil {
			return err
		}
	}

	p.Staked.Sub(p.Staked, amount)
	if err := l.total.Sub(amount); err != nil {
		return err
	}
	if err := l.participants.Set(addr, p); err != nil {
		return err
	}
	if p.Staked.Sign() == 0 {
		return l.stakers.Remove(addr)
	}
	return nil
}

// SetRewardState updates the reward bookkeeping of addr, leaving its stake
// untouched.
func (l *Ledger) SetRewardState(addr core.Address, checkpoint, accrued *big.Int) error {
	p, err := l.Participant(addr)
	if err != nil {
		return err
	}
	p.Checkpoint = checkpoint
	p.Accrued = accrued
	return l.participants.Set(addr, p)
}

// IterStakers visits every address with positive stake, in the order they
// became stakers.
func (l *Ledger) IterStakers(fn func(addr core.Address, staked *big.Int) error) error {
	return l.stakers.Iter(func(addr core.Address) error {
		staked, err := l.StakeOf(addr)
		if err != nil {
			return err
		}
		return fn(addr, staked)
	})
}
