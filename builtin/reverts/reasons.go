// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

// Revert reasons of the staking contract.
var (
	ErrInvalidAmount       = New("amount should be greater than 0")
	ErrInsufficientBalance = New("insufficient balance")
	ErrNoStakers           = New("no stakers")
	ErrTransferFailed      = New("transfer failed")
	ErrClaimUnsupported    = New("claim is not supported by this strategy")
	ErrReentrantCall       = New("reentrant call")
	ErrUnknownStrategy     = New("unknown strategy")
)
