// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package snapshot

import (
	"math/big"

	"github.com/obaranni/staking/builtin/reverts"
	"github.com/obaranni/staking/builtin/solidity"
	"github.com/obaranni/staking/builtin/staking/ledger"
	"github.com/obaranni/staking/builtin/staking/reward"
	"github.com/obaranni/staking/core"
)

var slotLeftover = solidity.Slot("leftover")

// Distributor splits every reward pool among the current stakers at once.
// Truncated remainders are kept as leftover and added to the next pool.
type Distributor struct {
	ledger         *ledger.Ledger
	leftover       *solidity.Uint256
	sharePrecision *big.Int
}

// New creates a snapshot distributor. Stake ratios are truncated to
// sharePrecision parts before being applied to the pool, zero applies the
// exact ratio.
func New(sctx *solidity.Context, ledger *ledger.Ledger, sharePrecision uint64) *Distributor {
	return &Distributor{
		ledger:         ledger,
		leftover:       solidity.NewUint256(sctx, slotLeftover),
		sharePrecision: new(big.Int).SetUint64(sharePrecision),
	}
}

func (d *Distributor) Leftover() (*big.Int, error) {
	return d.leftover.Get()
}

// Distribute credits every staker its share of pool plus the carried
// leftover. The shares are returned as payouts.
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

	leftover, err := d.leftover.Get()
	if err != nil {
		return nil, err
	}
	effective := new(big.Int).Add(pool, leftover)

	result := &reward.Result{Distributed: new(big.Int)}
	err = d.ledger.IterStakers(func(addr core.Address, staked *big.Int) error {
		share := d.share(staked, total, effective)
		if share.Sign() == 0 {
			return nil
		}
		result.Distributed.Add(result.Distributed, share)
		result.Payouts = append(result.Payouts, reward.Payout{Recipient: addr, Amount: share})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := d.leftover.Set(effective.Sub(effective, result.Distributed)); err != nil {
		return nil, err
	}
	return result, nil
}

// share = floor(floor(staked * P / total) * pool / P), or
// floor(pool * staked / total) when P is zero.
func (d *Distributor) share(staked, total, pool *big.Int) *big.Int {
	if d.sharePrecision.Sign() == 0 {
		share := new(big.Int).Mul(pool, staked)
		return share.Quo(share, total)
	}
	ratio := new(big.Int).Mul(staked, d.sharePrecision)
	ratio.Quo(ratio, total)
	ratio.Mul(ratio, pool)
	return ratio.Quo(ratio, d.sharePrecision)
}
