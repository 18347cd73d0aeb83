// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/obaranni/staking/builtin"
	"github.com/obaranni/staking/builtin/staking"
	"github.com/obaranni/staking/eventdb"
	"github.com/obaranni/staking/lvldb"
	"github.com/obaranni/staking/state"
)

// instance bundles the databases living in one data dir.
type instance struct {
	stateDB *lvldb.LevelDB
	eventDB *eventdb.EventDB
	stater  *state.Stater
}

func openInstance(ctx *cli.Context) (*instance, error) {
	dataDir, err := makeDataDir(ctx)
	if err != nil {
		return nil, err
	}
	stateDB, err := openStateDB(ctx, dataDir)
	if err != nil {
		return nil, err
	}
	eventDB, err := openEventDB(dataDir)
	if err != nil {
		stateDB.Close()
		return nil, err
	}
	logger.Debug("instance opened", "dir", dataDir)
	return &instance{stateDB, eventDB, state.NewStater(stateDB)}, nil
}

func (in *instance) Close() {
	logger.Debug("closing event database...")
	if err := in.eventDB.Close(); err != nil {
		logger.Warn("failed to close event database", "err", err)
	}
	logger.Debug("closing state database...")
	if err := in.stateDB.Close(); err != nil {
		logger.Warn("failed to close state database", "err", err)
	}
}

// call runs a staking call on a fresh state. The state is committed and the
// event persisted only when the call succeeds.
func (in *instance) call(fn func(*staking.Staking) (*staking.Event, error)) (*eventdb.Event, error) {
	st := in.stater.NewState()
	contract, err := builtin.Staking.Native(st)
	if err != nil {
		return nil, errors.WithMessage(err, "load staking contract")
	}
	ev, err := fn(contract)
	if err != nil {
		return nil, err
	}
	if err := st.Commit(); err != nil {
		return nil, errors.WithMessage(err, "commit state")
	}
	stored := &eventdb.Event{
		Name:    ev.Name,
		Account: ev.Account,
		Amount:  ev.Amount,
		Time:    uint64(time.Now().Unix()),
	}
	if err := in.eventDB.Insert(stored); err != nil {
		// the state change is already durable, only the history lags
		logger.Error("failed to persist event", "event", ev.Name, "err", err)
		return nil, errors.WithMessage(err, "persist event")
	}
	return stored, nil
}

func printJSON(ctx *cli.Context, v any) error {
	return json.NewEncoder(ctx.App.Writer).Encode(v)
}
