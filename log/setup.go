// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"io"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
)

// Verbosity levels, 0 (crit) to 5 (trace).
const (
	VerbosityCrit = iota
	VerbosityError
	VerbosityWarn
	VerbosityInfo
	VerbosityDebug
	VerbosityTrace
)

// Init installs the root logger. Terminal output is colored when w is a tty.
// Must be called before any package logger is used.
func Init(w io.Writer, verbosity int, jsonLogs bool) {
	lvl := log.FromLegacyLevel(verbosity)
	if jsonLogs {
		log.SetDefault(log.NewLogger(log.JSONHandlerWithLevel(w, lvl)))
		return
	}
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(w, lvl, useColor)))
}
