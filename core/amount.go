// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package core

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
)

// MaxAmount is the largest amount a storage word can hold.
var MaxAmount = math.MaxBig256

// ParseAmount parses a non-negative decimal or 0x-prefixed hex amount.
func ParseAmount(s string) (*big.Int, error) {
	v, ok := math.ParseBig256(s)
	if !ok {
		return nil, errors.New("invalid amount")
	}
	if v.Sign() < 0 {
		return nil, errors.New("negative amount")
	}
	return v, nil
}

// IsPositive returns true if v is not nil and greater than zero.
func IsPositive(v *big.Int) bool {
	return v != nil && v.Sign() > 0
}
