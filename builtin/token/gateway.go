// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"

	"github.com/obaranni/staking/core"
)

// Gateway moves tokens in and out of a holding contract, typically the
// staking contract custody account.
type Gateway struct {
	token  *Token
	holder core.Address
}

func (t *Token) Gateway(holder core.Address) *Gateway {
	return &Gateway{token: t, holder: holder}
}

// MoveFromApproved pulls amount from owner into the holder. owner must have
// approved the holder for at least amount.
func (g *Gateway) MoveFromApproved(owner core.Address, amount *big.Int) error {
	return g.token.TransferFrom(g.holder, owner, g.holder, amount)
}

// MoveTo pushes amount from the holder to recipient.
func (g *Gateway) MoveTo(recipient core.Address, amount *big.Int) error {
	return g.token.Transfer(g.holder, recipient, amount)
}

func (g *Gateway) BalanceOf(holder core.Address) (*big.Int, error) {
	return g.token.BalanceOf(holder)
}
