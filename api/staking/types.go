// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/obaranni/staking/core"
)

// Summary for marshal the contract wide figures.
// Leftover is only set for the snapshot strategy, RewardPerStakedUnit and
// Precision only for the accumulator.
type Summary struct {
	Strategy            string                `json:"strategy"`
	TotalStaked         *math.HexOrDecimal256 `json:"totalStaked"`
	StakersCount        uint64                `json:"stakersCount"`
	SharePrecision      *uint64               `json:"sharePrecision,omitempty"`
	Leftover            *math.HexOrDecimal256 `json:"leftover,omitempty"`
	Precision           *math.HexOrDecimal256 `json:"precision,omitempty"`
	RewardPerStakedUnit *math.HexOrDecimal256 `json:"rewardPerStakedUnit,omitempty"`
}

// Staker for marshal a single participant.
type Staker struct {
	Address       core.Address          `json:"address"`
	Staked        *math.HexOrDecimal256 `json:"staked"`
	PendingReward *math.HexOrDecimal256 `json:"pendingReward"`
	Checkpoint    *math.HexOrDecimal256 `json:"checkpoint,omitempty"`
}
