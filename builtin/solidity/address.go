// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import "github.com/obaranni/staking/core"

// Address is a single storage word holding an address.
type Address struct {
	context *Context
	pos     core.Bytes32
}

func NewAddress(context *Context, pos core.Bytes32) *Address {
	return &Address{context: context, pos: pos}
}

func (a *Address) Get() (core.Address, error) {
	storage, err := a.context.state.GetStorage(a.context.address, a.pos)
	if err != nil {
		return core.Address{}, err
	}
	return core.BytesToAddress(storage.Bytes()), nil
}

// Set stores addr, nil clears the slot.
func (a *Address) Set(addr *core.Address) {
	var storage core.Bytes32
	if addr != nil {
		storage = core.BytesToBytes32(addr.Bytes())
	}
	a.context.state.SetStorage(a.context.address, a.pos, storage)
}
