// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/obaranni/staking/builtin"
	"github.com/obaranni/staking/builtin/reverts"
	"github.com/obaranni/staking/builtin/staking"
	"github.com/obaranni/staking/builtin/token"
	"github.com/obaranni/staking/core"
	"github.com/obaranni/staking/eventdb"
	"github.com/obaranni/staking/genesis"
	"github.com/obaranni/staking/state"
)

func selectGenesis(ctx *cli.Context) (*genesis.CustomGenesis, error) {
	switch {
	case ctx.IsSet(genesisFlag.Name) && ctx.Bool(devFlag.Name):
		return nil, fmt.Errorf("--%s and --%s are exclusive", genesisFlag.Name, devFlag.Name)
	case ctx.IsSet(genesisFlag.Name):
		return genesis.Load(ctx.String(genesisFlag.Name))
	case ctx.Bool(devFlag.Name):
		return genesis.NewDevnet(staking.Strategy(ctx.String(strategyFlag.Name))), nil
	default:
		return nil, fmt.Errorf("either --%s or --%s must be specified", genesisFlag.Name, devFlag.Name)
	}
}

func initAction(ctx *cli.Context) error {
	gen, err := selectGenesis(ctx)
	if err != nil {
		return err
	}
	in, err := openInstance(ctx)
	if err != nil {
		return err
	}
	defer in.Close()

	params, err := initGenesis(in.stater, gen)
	if err != nil {
		return err
	}
	logger.Info("initialized", "strategy", params.Strategy, "accounts", len(gen.Accounts))
	return printJSON(ctx, map[string]any{
		"token":    builtin.Token.Address,
		"staking":  builtin.Staking.Address,
		"strategy": params.Strategy,
		"accounts": gen.Accounts,
	})
}

// initGenesis builds and commits gen. Only a contract that was never
// initialized is overwritten, any other read failure aborts.
func initGenesis(stater *state.Stater, gen *genesis.CustomGenesis) (staking.Params, error) {
	params, err := gen.StakingParams()
	if err != nil {
		return staking.Params{}, errors.WithMessage(err, "genesis staking params")
	}

	st := stater.NewState()
	switch _, err := builtin.Staking.Native(st); {
	case err == nil:
		return staking.Params{}, errors.New("data dir already initialized")
	case !errors.Is(err, reverts.ErrUnknownStrategy):
		return staking.Params{}, errors.WithMessage(err, "check data dir")
	}
	if err := gen.Build(st); err != nil {
		return staking.Params{}, errors.WithMessage(err, "build genesis")
	}
	if err := st.Commit(); err != nil {
		return staking.Params{}, errors.WithMessage(err, "commit genesis")
	}
	return params, nil
}

// tokenAction commits fn's token changes.
func tokenAction(fn func(*cli.Context, *token.Token) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		in, err := openInstance(ctx)
		if err != nil {
			return err
		}
		defer in.Close()

		st := in.stater.NewState()
		if err := fn(ctx, builtin.Token.Native(st)); err != nil {
			return err
		}
		return st.Commit()
	}
}

func approveAction(ctx *cli.Context, tok *token.Token) error {
	owner, err := addressFlag(ctx, fromFlag)
	if err != nil {
		return err
	}
	spender := builtin.Staking.Address
	if ctx.IsSet(spenderFlag.Name) {
		if spender, err = addressFlag(ctx, spenderFlag); err != nil {
			return err
		}
	}
	amount, err := amountFlagValue(ctx)
	if err != nil {
		return err
	}
	if err := tok.Approve(owner, spender, amount); err != nil {
		return err
	}
	logger.Info("approved", "owner", owner, "spender", spender, "amount", amount)
	return printJSON(ctx, map[string]any{"owner": owner, "spender": spender, "allowance": amount})
}

func transferAction(ctx *cli.Context, tok *token.Token) error {
	from, err := addressFlag(ctx, fromFlag)
	if err != nil {
		return err
	}
	to, err := addressFlag(ctx, toFlag)
	if err != nil {
		return err
	}
	amount, err := amountFlagValue(ctx)
	if err != nil {
		return err
	}
	if err := tok.Transfer(from, to, amount); err != nil {
		return err
	}
	logger.Info("transferred", "from", from, "to", to, "amount", amount)
	return printJSON(ctx, map[string]any{"from": from, "to": to, "amount": amount})
}

// stakingAction runs a staking call on behalf of --from. withAmount adds
// the --amount flag value as argument.
func stakingAction(withAmount bool, fn func(s *staking.Staking, caller core.Address, amount *big.Int) (*staking.Event, error)) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		caller, err := addressFlag(ctx, fromFlag)
		if err != nil {
			return err
		}
		var amount *big.Int
		if withAmount {
			if amount, err = amountFlagValue(ctx); err != nil {
				return err
			}
		}
		in, err := openInstance(ctx)
		if err != nil {
			return err
		}
		defer in.Close()

		ev, err := in.call(func(s *staking.Staking) (*staking.Event, error) {
			return fn(s, caller, amount)
		})
		if err != nil {
			return err
		}
		return printJSON(ctx, ev)
	}
}

var (
	stakeAction      = stakingAction(true, (*staking.Staking).Stake)
	unstakeAction    = stakingAction(true, (*staking.Staking).Unstake)
	distributeAction = stakingAction(true, (*staking.Staking).DistributeReward)
	claimAction      = stakingAction(false, func(s *staking.Staking, caller core.Address, _ *big.Int) (*staking.Event, error) {
		return s.ClaimReward(caller)
	})
)

func infoAction(ctx *cli.Context) error {
	in, err := openInstance(ctx)
	if err != nil {
		return err
	}
	defer in.Close()

	st := in.stater.NewState()
	contract, err := builtin.Staking.Native(st)
	if err != nil {
		return err
	}
	if ctx.IsSet(accountFlag.Name) {
		addr, err := addressFlag(ctx, accountFlag)
		if err != nil {
			return err
		}
		return printAccount(ctx, contract, builtin.Token.Native(st), addr)
	}

	total, err := contract.TotalStaked()
	if err != nil {
		return err
	}
	count, err := contract.StakersCount()
	if err != nil {
		return err
	}
	leftover, err := contract.Leftover()
	if err != nil {
		return err
	}
	rpsu, err := contract.RewardPerStakedUnit()
	if err != nil {
		return err
	}
	params := contract.Params()
	return printJSON(ctx, map[string]any{
		"strategy":            params.Strategy,
		"sharePrecision":      params.SharePrecision,
		"precision":           params.Precision,
		"totalStaked":         total,
		"stakersCount":        count,
		"leftover":            leftover,
		"rewardPerStakedUnit": rpsu,
	})
}

func printAccount(ctx *cli.Context, contract *staking.Staking, tok *token.Token, addr core.Address) error {
	staked, err := contract.StakeOf(addr)
	if err != nil {
		return err
	}
	pending, err := contract.PendingReward(addr)
	if err != nil {
		return err
	}
	checkpoint, err := contract.CheckpointOf(addr)
	if err != nil {
		return err
	}
	balance, err := tok.BalanceOf(addr)
	if err != nil {
		return err
	}
	allowance, err := tok.Allowance(addr, builtin.Staking.Address)
	if err != nil {
		return err
	}
	return printJSON(ctx, map[string]any{
		"address":       addr,
		"staked":        staked,
		"pendingReward": pending,
		"checkpoint":    checkpoint,
		"balance":       balance,
		"allowance":     allowance,
	})
}

func eventsAction(ctx *cli.Context) error {
	filter := &eventdb.Filter{
		Name:  ctx.String(nameFlag.Name),
		Order: eventdb.OrderType(ctx.String(orderFlag.Name)),
		Options: &eventdb.Options{
			Offset: ctx.Uint64(offsetFlag.Name),
			Limit:  ctx.Uint64(limitFlag.Name),
		},
	}
	if filter.Order != eventdb.ASC && filter.Order != eventdb.DESC {
		return fmt.Errorf("--%s: unsupported %q", orderFlag.Name, filter.Order)
	}
	if ctx.IsSet(accountFlag.Name) {
		addr, err := addressFlag(ctx, accountFlag)
		if err != nil {
			return err
		}
		filter.Account = &addr
	}

	in, err := openInstance(ctx)
	if err != nil {
		return err
	}
	defer in.Close()

	events, err := in.eventDB.Filter(filter)
	if err != nil {
		return err
	}
	for _, ev := range events {
		if err := printJSON(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}
