// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/obaranni/staking/builtin/reverts"
	"github.com/obaranni/staking/builtin/solidity"
)

// Strategy selects how reward pools reach stakers.
type Strategy string

const (
	// StrategySnapshot pays every staker its share immediately on distribution.
	StrategySnapshot Strategy = "snapshot"
	// StrategyAccumulator accrues rewards per staked unit, claimed lazily.
	StrategyAccumulator Strategy = "accumulator"
)

var (
	DefaultSharePrecision = uint64(10_000)
	DefaultPrecision      = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

	slotStrategy       = solidity.Slot("params-strategy")
	slotSharePrecision = solidity.Slot("params-share-precision")
	slotPrecision      = solidity.Slot("params-precision")

	strategyCodes = map[Strategy]int64{StrategySnapshot: 1, StrategyAccumulator: 2}
)

// Params are fixed when the contract is initialized.
type Params struct {
	Strategy       Strategy
	SharePrecision uint64   // snapshot only, 0 for exact shares
	Precision      *big.Int // accumulator only, scale of the reward per staked unit
}

// DefaultParams returns the default parameters of the given strategy.
func DefaultParams(strategy Strategy) Params {
	return Params{
		Strategy:       strategy,
		SharePrecision: DefaultSharePrecision,
		Precision:      new(big.Int).Set(DefaultPrecision),
	}
}

func (p Params) Validate() error {
	if _, ok := strategyCodes[p.Strategy]; !ok {
		return reverts.ErrUnknownStrategy
	}
	if p.Strategy == StrategyAccumulator && (p.Precision == nil || p.Precision.Sign() <= 0) {
		return errors.New("accumulator precision must be positive")
	}
	return nil
}

// SaveParams stores p in the contract storage of sctx.
func SaveParams(sctx *solidity.Context, p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := solidity.NewUint256(sctx, slotStrategy).Set(big.NewInt(strategyCodes[p.Strategy])); err != nil {
		return err
	}
	if err := solidity.NewUint256(sctx, slotSharePrecision).Set(new(big.Int).SetUint64(p.SharePrecision)); err != nil {
		return err
	}
	precision := p.Precision
	if precision == nil {
		precision = new(big.Int)
	}
	return solidity.NewUint256(sctx, slotPrecision).Set(precision)
}

// LoadParams reads the params saved by SaveParams. It fails with
// ErrUnknownStrategy when the contract was never initialized.
func LoadParams(sctx *solidity.Context) (Params, error) {
	code, err := solidity.NewUint256(sctx, slotStrategy).Get()
	if err != nil {
		return Params{}, err
	}
	var p Params
	for s, c := range strategyCodes {
		if code.Cmp(big.NewInt(c)) == 0 {
			p.Strategy = s
		}
	}
	if p.Strategy == "" {
		return Params{}, reverts.ErrUnknownStrategy
	}
	sharePrecision, err := solidity.NewUint256(sctx, slotSharePrecision).Get()
	if err != nil {
		return Params{}, err
	}
	p.SharePrecision = sharePrecision.Uint64()
	if p.Precision, err = solidity.NewUint256(sctx, slotPrecision).Get(); err != nil {
		return Params{}, err
	}
	return p, nil
}
