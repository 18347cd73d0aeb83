// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/obaranni/staking/core"
	"github.com/obaranni/staking/state"
)

// Context binds storage accessors to a contract address within a state.
type Context struct {
	address core.Address
	state   *state.State
}

func NewContext(address core.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() core.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}

// Slot derives a fixed storage position from a name.
func Slot(name string) core.Bytes32 {
	return core.BytesToBytes32([]byte(name))
}
