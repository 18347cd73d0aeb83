// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/obaranni/staking/core"
)

// Event names.
const (
	EventStaked        = "Staked"
	EventUnstaked      = "Unstaked"
	EventDistributed   = "Distributed"
	EventRewardClaimed = "RewardClaimed"
)

// Event is emitted by every successful call. Account is the caller, for
// Distributed it is the reward source.
type Event struct {
	Name    string       `json:"name"`
	Account core.Address `json:"account"`
	Amount  *big.Int     `json:"amount"`
}
