// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
)

// ErrRevert is a failed requirement of a builtin contract call. The call's
// state changes are discarded when it is returned.
type ErrRevert struct {
	message string
	cause   error
}

func New(message string) *ErrRevert {
	return &ErrRevert{
		message: message,
	}
}

// Wrap returns a revert carrying base's reason caused by cause.
func Wrap(base *ErrRevert, cause error) *ErrRevert {
	return &ErrRevert{
		message: base.message,
		cause:   cause,
	}
}

func (e *ErrRevert) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

// Reason returns the revert message without its cause.
func (e *ErrRevert) Reason() string {
	return e.message
}

func (e *ErrRevert) Unwrap() error {
	return e.cause
}

// Is reports reverts with the same reason as equal.
func (e *ErrRevert) Is(target error) bool {
	var t *ErrRevert
	if !errors.As(target, &t) {
		return false
	}
	return t.message == e.message
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}
