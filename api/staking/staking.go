// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"

	"github.com/obaranni/staking/api/utils"
	"github.com/obaranni/staking/builtin"
	"github.com/obaranni/staking/builtin/staking"
	"github.com/obaranni/staking/state"
)

type Staking struct {
	stater *state.Stater
}

func New(stater *state.Stater) *Staking {
	return &Staking{stater}
}

func (s *Staking) native() (*staking.Staking, error) {
	return builtin.Staking.Native(s.stater.NewState())
}

func (s *Staking) handleGetSummary(w http.ResponseWriter, _ *http.Request) error {
	contract, err := s.native()
	if err != nil {
		return err
	}
	total, err := contract.TotalStaked()
	if err != nil {
		return err
	}
	count, err := contract.StakersCount()
	if err != nil {
		return err
	}

	params := contract.Params()
	summary := &Summary{
		Strategy:     string(params.Strategy),
		TotalStaked:  (*math.HexOrDecimal256)(total),
		StakersCount: count,
	}
	switch params.Strategy {
	case staking.StrategySnapshot:
		leftover, err := contract.Leftover()
		if err != nil {
			return err
		}
		summary.SharePrecision = &params.SharePrecision
		summary.Leftover = (*math.HexOrDecimal256)(leftover)
	case staking.StrategyAccumulator:
		rpsu, err := contract.RewardPerStakedUnit()
		if err != nil {
			return err
		}
		summary.Precision = (*math.HexOrDecimal256)(params.Precision)
		summary.RewardPerStakedUnit = (*math.HexOrDecimal256)(rpsu)
	}
	return utils.WriteJSON(w, summary)
}

func (s *Staking) handleGetStaker(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.ParseAddress("address", mux.Vars(req)["address"])
	if err != nil {
		return err
	}
	contract, err := s.native()
	if err != nil {
		return err
	}
	staked, err := contract.StakeOf(addr)
	if err != nil {
		return err
	}
	pending, err := contract.PendingReward(addr)
	if err != nil {
		return err
	}

	staker := &Staker{
		Address:       addr,
		Staked:        (*math.HexOrDecimal256)(staked),
		PendingReward: (*math.HexOrDecimal256)(pending),
	}
	if contract.Strategy() == staking.StrategyAccumulator {
		checkpoint, err := contract.CheckpointOf(addr)
		if err != nil {
			return err
		}
		staker.Checkpoint = (*math.HexOrDecimal256)(checkpoint)
	}
	return utils.WriteJSON(w, staker)
}

func (s *Staking) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /staking").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetSummary))
	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /staking/{address}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetStaker))
}
