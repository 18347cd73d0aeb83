// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"

	"github.com/obaranni/staking/builtin/reverts"
	"github.com/obaranni/staking/builtin/solidity"
	"github.com/obaranni/staking/core"
	"github.com/obaranni/staking/state"
)

var (
	ErrNegativeAmount          = reverts.New("negative amount")
	ErrExceedsBalance          = reverts.New("transfer amount exceeds balance")
	ErrExceedsAllowance        = reverts.New("transfer amount exceeds allowance")
	ErrZeroAddress             = reverts.New("zero address")
	slotTotalSupply            = solidity.Slot("total-supply")
	slotBalances               = solidity.Slot("balances")
	slotAllowances             = solidity.Slot("allowances")
	_                   Holder = (*Token)(nil)
)

// Holder reads token balances.
type Holder interface {
	BalanceOf(addr core.Address) (*big.Int, error)
}

// Token is a fungible token kept in contract storage. Every mutation goes
// through the state journal, so it is rolled back together with the call that
// made it.
type Token struct {
	sctx        *solidity.Context
	totalSupply *solidity.Uint256
	balances    *solidity.Mapping[core.Address, *big.Int]
	allowances  *solidity.Mapping[core.Bytes32, *big.Int]
}

func New(addr core.Address, state *state.State) *Token {
	sctx := solidity.NewContext(addr, state)
	return &Token{
		sctx:        sctx,
		totalSupply: solidity.NewUint256(sctx, slotTotalSupply),
		balances:    solidity.NewMapping[core.Address, *big.Int](sctx, slotBalances),
		allowances:  solidity.NewMapping[core.Bytes32, *big.Int](sctx, slotAllowances),
	}
}

func allowanceKey(owner, spender core.Address) core.Bytes32 {
	return core.Blake2b(owner.Bytes(), spender.Bytes())
}

func (t *Token) Address() core.Address {
	return t.sctx.Address()
}

func (t *Token) TotalSupply() (*big.Int, error) {
	return t.totalSupply.Get()
}

func (t *Token) BalanceOf(addr core.Address) (*big.Int, error) {
	return t.balances.Get(addr)
}

func (t *Token) Allowance(owner, spender core.Address) (*big.Int, error) {
	return t.allowances.Get(allowanceKey(owner, spender))
}

// Mint creates amount new tokens owned by to.
func (t *Token) Mint(to core.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	if to.IsZero() {
		return ErrZeroAddress
	}
	if err := t.totalSupply.Add(amount); err != nil {
		return err
	}
	bal, err := t.balances.Get(to)
	if err != nil {
		return err
	}
	return t.setBalance(to, bal.Add(bal, amount))
}

// Approve sets the amount spender may move out of owner's balance.
func (t *Token) Approve(owner, spender core.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	key := allowanceKey(owner, spender)
	if amount.Sign() == 0 {
		t.allowances.Delete(key)
		return nil
	}
	return t.allowances.Set(key, amount)
}

func (t *Token) Transfer(from, to core.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	if amount.Sign() == 0 {
		return nil
	}
	if to.IsZero() {
		return ErrZeroAddress
	}

	fromBal, err := t.balances.Get(from)
	if err != nil {
		return err
	}
	if fromBal.Cmp(amount) < 0 {
		return ErrExceedsBalance
	}
	if err := t.setBalance(from, fromBal.Sub(fromBal, amount)); err != nil {
		return err
	}

	toBal, err := t.balances.Get(to)
	if err != nil {
		return err
	}
	return t.setBalance(to, toBal.Add(toBal, amount))
}

// TransferFrom moves amount from from to to on behalf of spender, consuming
// spender's allowance.
func (t *Token) TransferFrom(spender, from, to core.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	if amount.Sign() == 0 {
		return nil
	}
	allowance, err := t.Allowance(from, spender)
	if err != nil {
		return err
	}
	if allowance.Cmp(amount) < 0 {
		return ErrExceedsAllowance
	}
	if err := t.Transfer(from, to, amount); err != nil {
		return err
	}
	return t.Approve(from, spender, allowance.Sub(allowance, amount))
}

func (t *Token) setBalance(addr core.Address, bal *big.Int) error {
	if bal.Sign() == 0 {
		t.balances.Delete(addr)
		return nil
	}
	return t.balances.Set(addr, bal)
}
