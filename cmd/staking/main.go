// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/obaranni/staking/log"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "staking"
	app.Usage = "Token staking ledger with snapshot and accumulator rewards"
	app.Version = fullVersion()
	app.Flags = []cli.Flag{
		dataDirFlag,
		verbosityFlag,
		jsonLogsFlag,
		cacheFlag,
	}
	app.Before = func(ctx *cli.Context) error {
		initLogger(ctx)
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:   "init",
			Usage:  "initialize the data dir from a genesis file or the dev accounts",
			Flags:  []cli.Flag{genesisFlag, devFlag, strategyFlag},
			Action: initAction,
		},
		{
			Name:   "approve",
			Usage:  "allow the staking contract (or --spender) to pull tokens",
			Flags:  []cli.Flag{fromFlag, spenderFlag, amountFlag},
			Action: tokenAction(approveAction),
		},
		{
			Name:   "transfer",
			Usage:  "transfer tokens",
			Flags:  []cli.Flag{fromFlag, toFlag, amountFlag},
			Action: tokenAction(transferAction),
		},
		{
			Name:   "stake",
			Usage:  "stake approved tokens",
			Flags:  []cli.Flag{fromFlag, amountFlag},
			Action: stakeAction,
		},
		{
			Name:   "unstake",
			Usage:  "withdraw staked tokens",
			Flags:  []cli.Flag{fromFlag, amountFlag},
			Action: unstakeAction,
		},
		{
			Name:   "distribute",
			Usage:  "distribute a reward pool among stakers",
			Flags:  []cli.Flag{fromFlag, amountFlag},
			Action: distributeAction,
		},
		{
			Name:   "claim",
			Usage:  "claim the pending reward (accumulator strategy)",
			Flags:  []cli.Flag{fromFlag},
			Action: claimAction,
		},
		{
			Name:   "info",
			Usage:  "show the contract or an account",
			Flags:  []cli.Flag{accountFlag},
			Action: infoAction,
		},
		{
			Name:   "events",
			Usage:  "list persisted events",
			Flags:  []cli.Flag{nameFlag, accountFlag, offsetFlag, limitFlag, orderFlag},
			Action: eventsAction,
		},
		{
			Name:  "serve",
			Usage: "serve the read-only REST API",
			Flags: []cli.Flag{
				apiAddrFlag,
				apiCorsFlag,
				apiEventsLimitFlag,
				enableAPILogsFlag,
				apiSlowQueriesThresholdFlag,
				enableMetricsFlag,
			},
			Action: serveAction,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Fatal:", err)
		os.Exit(1)
	}
}
