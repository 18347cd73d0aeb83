// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/obaranni/staking/core"
	"github.com/obaranni/staking/eventdb"
	"github.com/obaranni/staking/log"
	"github.com/obaranni/staking/lvldb"
)

func initLogger(ctx *cli.Context) {
	log.Init(os.Stderr, ctx.GlobalInt(verbosityFlag.Name), ctx.GlobalBool(jsonLogsFlag.Name))
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".staking")
}

func makeDataDir(ctx *cli.Context) (string, error) {
	dataDir := ctx.GlobalString(dataDirFlag.Name)
	if dataDir == "" {
		return "", fmt.Errorf("unable to infer default data dir, use --%s to specify", dataDirFlag.Name)
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return "", errors.Wrapf(err, "create data dir [%v]", dataDir)
	}
	return dataDir, nil
}

func openStateDB(ctx *cli.Context, dataDir string) (*lvldb.LevelDB, error) {
	cacheMB := max(ctx.GlobalInt(cacheFlag.Name), 16)
	dir := filepath.Join(dataDir, "state.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              cacheMB,
		OpenFilesCacheCapacity: 64,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open state database [%v]", dir)
	}
	return db, nil
}

func openEventDB(dataDir string) (*eventdb.EventDB, error) {
	path := filepath.Join(dataDir, "events.db")
	db, err := eventdb.New(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open event database [%v]", path)
	}
	return db, nil
}

func addressFlag(ctx *cli.Context, flag cli.StringFlag) (core.Address, error) {
	s := ctx.String(flag.Name)
	if s == "" {
		return core.Address{}, fmt.Errorf("--%s is required", flag.Name)
	}
	addr, err := core.ParseAddress(s)
	if err != nil {
		return core.Address{}, errors.WithMessagef(err, "--%s", flag.Name)
	}
	return *addr, nil
}

func amountFlagValue(ctx *cli.Context) (*big.Int, error) {
	s := ctx.String(amountFlag.Name)
	if s == "" {
		return nil, fmt.Errorf("--%s is required", amountFlag.Name)
	}
	amount, err := core.ParseAmount(s)
	if err != nil {
		return nil, errors.WithMessagef(err, "--%s", amountFlag.Name)
	}
	return amount, nil
}
