// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"errors"
	"math/big"

	"github.com/holiman/uint256"

	"github.com/obaranni/staking/core"
)

var (
	ErrOverflow  = errors.New("uint256 overflow")
	ErrUnderflow = errors.New("uint256 underflow")
)

// Uint256 is a single storage word holding an unsigned 256 bit integer.
// Arithmetic is checked, like solidity >= 0.8.
type Uint256 struct {
	context *Context
	pos     core.Bytes32
}

func NewUint256(context *Context, pos core.Bytes32) *Uint256 {
	return &Uint256{context: context, pos: pos}
}

func (u *Uint256) Get() (*big.Int, error) {
	storage, err := u.context.state.GetStorage(u.context.address, u.pos)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(storage.Bytes()), nil
}

func (u *Uint256) Set(value *big.Int) error {
	if value == nil {
		value = new(big.Int)
	}
	word, err := toWord(value)
	if err != nil {
		return err
	}
	u.context.state.SetStorage(u.context.address, u.pos, core.Bytes32(word.Bytes32()))
	return nil
}

func (u *Uint256) Add(value *big.Int) error {
	current, err := u.Get()
	if err != nil {
		return err
	}
	return u.Set(current.Add(current, value))
}

func (u *Uint256) Sub(value *big.Int) error {
	current, err := u.Get()
	if err != nil {
		return err
	}
	return u.Set(current.Sub(current, value))
}

func toWord(value *big.Int) (*uint256.Int, error) {
	if value.Sign() < 0 {
		return nil, ErrUnderflow
	}
	word, overflow := uint256.FromBig(value)
	if overflow {
		return nil, ErrOverflow
	}
	return word, nil
}
