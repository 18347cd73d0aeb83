// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import (
	"math/big"

	"github.com/obaranni/staking/core"
)

// Payout is an amount owed to a recipient, pushed out after state is final.
type Payout struct {
	Recipient core.Address
	Amount    *big.Int
}

// Result of a distribution.
type Result struct {
	Distributed *big.Int // amount attributed to stakers
	Payouts     []Payout // immediate payouts, empty for lazily claimed rewards
}
