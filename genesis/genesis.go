// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/obaranni/staking/builtin"
	"github.com/obaranni/staking/builtin/staking"
	"github.com/obaranni/staking/core"
	"github.com/obaranni/staking/state"
)

// CustomGenesis is user customized genesis
type CustomGenesis struct {
	Staking  Params    `json:"staking" yaml:"staking"`
	Accounts []Account `json:"accounts" yaml:"accounts"`
}

// Params are the staking contract params.
type Params struct {
	Strategy       string           `json:"strategy" yaml:"strategy"`
	SharePrecision *uint64          `json:"sharePrecision" yaml:"sharePrecision"`
	Precision      *HexOrDecimal256 `json:"precision" yaml:"precision"`
}

// Account is an initial token allocation.
type Account struct {
	Address core.Address     `json:"address" yaml:"address"`
	Balance *HexOrDecimal256 `json:"balance" yaml:"balance"`
}

// UnmarshalYAML reads the address from its raw scalar, yaml would otherwise
// resolve 0x prefixed values as integers.
func (a *Account) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Address string           `yaml:"address"`
		Balance *HexOrDecimal256 `yaml:"balance"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	addr, err := core.ParseAddress(raw.Address)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	a.Address = *addr
	a.Balance = raw.Balance
	return nil
}

// HexOrDecimal256 marshals big.Int as hex or decimal.
type HexOrDecimal256 math.HexOrDecimal256

func NewHexOrDecimal256(v *big.Int) *HexOrDecimal256 {
	return (*HexOrDecimal256)(new(big.Int).Set(v))
}

func (i *HexOrDecimal256) Int() *big.Int {
	return (*big.Int)(i)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (i *HexOrDecimal256) UnmarshalJSON(input []byte) error {
	var hex string
	if err := json.Unmarshal(input, &hex); err != nil {
		return (*big.Int)(i).UnmarshalJSON(input)
	}
	return i.parse(hex)
}

// MarshalJSON implements the json.Marshaler interface.
func (i HexOrDecimal256) MarshalJSON() ([]byte, error) {
	decimal256 := math.HexOrDecimal256(i)
	text, err := decimal256.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (i *HexOrDecimal256) UnmarshalYAML(node *yaml.Node) error {
	return i.parse(node.Value)
}

func (i *HexOrDecimal256) parse(s string) error {
	bigint, ok := math.ParseBig256(s)
	if !ok {
		return fmt.Errorf("invalid hex or decimal integer %q", s)
	}
	*i = HexOrDecimal256(*bigint)
	return nil
}

// Load reads a genesis file. Files ending in .json are decoded as JSON,
// anything else as YAML.
func Load(path string) (*CustomGenesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis")
	}
	var gen CustomGenesis
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &gen)
	} else {
		err = yaml.Unmarshal(data, &gen)
	}
	if err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	return &gen, nil
}

// StakingParams resolves the contract params, filling defaults.
func (g *CustomGenesis) StakingParams() (staking.Params, error) {
	strategy := staking.Strategy(strings.ToLower(g.Staking.Strategy))
	if strategy == "" {
		strategy = staking.StrategySnapshot
	}
	params := staking.DefaultParams(strategy)
	if g.Staking.SharePrecision != nil {
		params.SharePrecision = *g.Staking.SharePrecision
	}
	if g.Staking.Precision != nil {
		params.Precision = new(big.Int).Set(g.Staking.Precision.Int())
	}
	return params, params.Validate()
}

// Build initializes the builtin contracts in st. The state is not committed.
func (g *CustomGenesis) Build(st *state.State) error {
	params, err := g.StakingParams()
	if err != nil {
		return err
	}
	if err := builtin.Staking.Initialize(st, params); err != nil {
		return err
	}

	tok := builtin.Token.Native(st)
	for _, a := range g.Accounts {
		if a.Balance == nil {
			return fmt.Errorf("%s: balance must be set", a.Address)
		}
		if a.Balance.Int().Sign() < 1 {
			return fmt.Errorf("%s: balance must be a non-zero integer", a.Address)
		}
		if a.Address == builtin.Staking.Address {
			return fmt.Errorf("%s: allocation to the staking contract", a.Address)
		}
		if err := tok.Mint(a.Address, a.Balance.Int()); err != nil {
			return errors.WithMessagef(err, "%s: mint", a.Address)
		}
	}
	return nil
}
