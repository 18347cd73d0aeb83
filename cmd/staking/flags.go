// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/obaranni/staking/api"
	"github.com/obaranni/staking/builtin/staking"
	"github.com/obaranni/staking/log"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the state and event databases",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: log.VerbosityInfo,
		Usage: "log verbosity (0-5)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	cacheFlag = cli.IntFlag{
		Name:  "cache",
		Value: 64,
		Usage: "megabytes of ram allocated to the state database cache",
	}

	// init
	genesisFlag = cli.StringFlag{
		Name:  "genesis",
		Usage: "path to a genesis file (yaml or json)",
	}
	devFlag = cli.BoolFlag{
		Name:  "dev",
		Usage: "initialize with the built-in dev accounts",
	}
	strategyFlag = cli.StringFlag{
		Name:  "strategy",
		Value: string(staking.StrategySnapshot),
		Usage: "reward strategy for --dev (snapshot|accumulator)",
	}

	// calls
	fromFlag = cli.StringFlag{
		Name:  "from",
		Usage: "caller address",
	}
	toFlag = cli.StringFlag{
		Name:  "to",
		Usage: "recipient address",
	}
	spenderFlag = cli.StringFlag{
		Name:  "spender",
		Usage: "spender address, defaults to the staking contract",
	}
	amountFlag = cli.StringFlag{
		Name:  "amount",
		Usage: "token amount, decimal or 0x-prefixed hex",
	}

	// queries
	accountFlag = cli.StringFlag{
		Name:  "account",
		Usage: "restrict the output to an account",
	}
	nameFlag = cli.StringFlag{
		Name:  "name",
		Usage: "event name (Staked|Unstaked|Distributed|RewardClaimed)",
	}
	offsetFlag = cli.Uint64Flag{
		Name:  "offset",
		Usage: "skip the first n events",
	}
	limitFlag = cli.Uint64Flag{
		Name:  "limit",
		Value: 100,
		Usage: "maximum number of events",
	}
	orderFlag = cli.StringFlag{
		Name:  "order",
		Value: "asc",
		Usage: "event order (asc|desc)",
	}

	// serve
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8670",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiEventsLimitFlag = cli.Uint64Flag{
		Name:  "api-events-limit",
		Value: api.DefaultEventsLimit,
		Usage: "limit the number of events returned by /events API",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	apiSlowQueriesThresholdFlag = cli.DurationFlag{
		Name:  "api-slow-queries-threshold",
		Usage: "log API requests slower than this, 0 disables",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection and the /metrics endpoint",
	}
)
