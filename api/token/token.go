// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"

	"github.com/obaranni/staking/api/utils"
	"github.com/obaranni/staking/builtin"
	"github.com/obaranni/staking/core"
	"github.com/obaranni/staking/state"
)

// Holder for marshal a token holder. Allowance is what the staking contract
// may still pull from the holder.
type Holder struct {
	Address   core.Address          `json:"address"`
	Balance   *math.HexOrDecimal256 `json:"balance"`
	Allowance *math.HexOrDecimal256 `json:"allowance"`
}

type Token struct {
	stater *state.Stater
}

func New(stater *state.Stater) *Token {
	return &Token{stater}
}

func (t *Token) handleGetSupply(w http.ResponseWriter, _ *http.Request) error {
	supply, err := builtin.Token.Native(t.stater.NewState()).TotalSupply()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.M{
		"address":     builtin.Token.Address,
		"totalSupply": (*math.HexOrDecimal256)(supply),
	})
}

func (t *Token) handleGetHolder(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.ParseAddress("address", mux.Vars(req)["address"])
	if err != nil {
		return err
	}
	native := builtin.Token.Native(t.stater.NewState())
	balance, err := native.BalanceOf(addr)
	if err != nil {
		return err
	}
	allowance, err := native.Allowance(addr, builtin.Staking.Address)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Holder{
		Address:   addr,
		Balance:   (*math.HexOrDecimal256)(balance),
		Allowance: (*math.HexOrDecimal256)(allowance),
	})
}

func (t *Token) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /token").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetSupply))
	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /token/{address}").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetHolder))
}
