// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/obaranni/staking/builtin/solidity"
	"github.com/obaranni/staking/builtin/staking"
	"github.com/obaranni/staking/builtin/token"
	"github.com/obaranni/staking/core"
	"github.com/obaranni/staking/state"
)

// Builtin contracts binding.
var (
	Token   = &tokenContract{newContract("Token")}
	Staking = &stakingContract{newContract("Staking")}
)

type contract struct {
	name    string
	Address core.Address
}

func newContract(name string) *contract {
	return &contract{
		name,
		core.BytesToAddress([]byte(name)),
	}
}

func (c *contract) Name() string {
	return c.name
}

type (
	tokenContract   struct{ *contract }
	stakingContract struct{ *contract }
)

func (t *tokenContract) Native(state *state.State) *token.Token {
	return token.New(t.Address, state)
}

// Initialize stores the staking params. It must run once, before Native.
func (s *stakingContract) Initialize(state *state.State, params staking.Params) error {
	return staking.SaveParams(solidity.NewContext(s.Address, state), params)
}

// Native loads the staking contract, custody of the staked token is held by
// the contract address.
func (s *stakingContract) Native(state *state.State) (*staking.Staking, error) {
	params, err := staking.LoadParams(solidity.NewContext(s.Address, state))
	if err != nil {
		return nil, err
	}
	return staking.New(s.Address, state, Token.Native(state).Gateway(s.Address), params)
}
