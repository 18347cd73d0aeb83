// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accumulator

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/obaranni/staking/builtin/reverts"
	"github.com/obaranni/staking/builtin/solidity"
	"github.com/obaranni/staking/builtin/staking/ledger"
	"github.com/obaranni/staking/builtin/staking/reward"
	"github.com/obaranni/staking/core"
)

var slotRewardPerStakedUnit = solidity.Slot("reward-per-staked-unit")

// Distributor folds every reward pool into a global reward per staked unit.
// Stakers claim lazily against the checkpoint of their last settlement.
type Distributor struct {
	ledger    *ledger.Ledger
	rpsu      *solidity.Uint256
	precision *big.Int
}

// New creates an accumulator distributor, the accumulator is scaled by
// precision.
func New(sctx *solidity.Context, ledger *ledger.Ledger, precision *big.Int) *Distributor {
	return &Distributor{
		ledger:    ledger,
		rpsu:      solidity.NewUint256(sctx, slotRewardPerStakedUnit),
		precision: new(big.Int).Set(precision),
	}
}

// RewardPerStakedUnit returns the scaled accumulator. It never decreases.
func (d *Distributor) RewardPerStakedUnit() (*big.Int, error) {
	return d.rpsu.Get()
}

// Distribute adds floor(pool * precision / total) to the accumulator. The
// whole pool is reported as distributed.
func (d *Distributor) Distribute(pool *big.Int) (*reward.Result, error) {
	if !core.IsPositive(pool) {
		return nil, reverts.ErrInvalidAmount
	}
	total, err := d.ledger.TotalStaked()
	if err != nil {
		return nil, err
	}
	if total.Sign() == 0 {
		return nil, reverts.ErrNoStakers
	}

	delta := new(big.Int).Mul(pool, d.precision)
	delta.Quo(delta, total)
	// a pool too large for the scaled accumulator is rejected, not an infra failure
	if err := d.rpsu.Add(delta); err != nil {
		if errors.Is(err, solidity.ErrOverflow) {
			return nil, reverts.Wrap(reverts.ErrInvalidAmount, err)
		}
		return nil, err
	}
	return &reward.Result{Distributed: new(big.Int).Set(pool)}, nil
}

// earned returns the reward accrued by p since its checkpoint, including the
// settled part.
func (d *Distributor) earned(p *ledger.Participant, rpsu *big.Int) *big.Int {
	earned := new(big.Int).Sub(rpsu, p.Checkpoint)
	earned.Mul(earned, p.Staked)
	earned.Quo(earned, d.precision)
	return earned.Add(earned, p.Accrued)
}

// Pending returns the reward addr could claim now.
func (d *Distributor) Pending(addr core.Address) (*big.Int, error) {
	p, err := d.ledger.Participant(addr)
	if err != nil {
		return nil, err
	}
	rpsu, err := d.rpsu.Get()
	if err != nil {
		return nil, err
	}
	return d.earned(p, rpsu), nil
}

// Settle moves the pending reward of p into its accrued balance and advances
// its checkpoint. It is run before every stake change so that new stake earns
// nothing retroactively and withdrawn stake keeps what it earned.
func (d *Distributor) Settle(_ core.Address, p *ledger.Participant) error {
	rpsu, err := d.rpsu.Get()
	if err != nil {
		return err
	}
	p.Accrued = d.earned(p, rpsu)
	p.Checkpoint = rpsu
	return nil
}

// Claim resets the reward of addr and returns the amount owed.
func (d *Distributor) Claim(addr core.Address) (*big.Int, error) {
	p, err := d.ledger.Participant(addr)
	if err != nil {
		return nil, err
	}
	rpsu, err := d.rpsu.Get()
	if err != nil {
		return nil, err
	}
	owed := d.earned(p, rpsu)
	if err := d.ledger.SetRewardState(addr, rpsu, new(big.Int)); err != nil {
		return nil, err
	}
	return owed, nil
}
