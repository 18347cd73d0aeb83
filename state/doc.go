// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages contract storage.
// It follows the flow as below:
//
//	         o
//	         |
//	[ revertable state ]
//	         |
//	  [ stacked map ] -> [ journal ] -> [ commit (bulk write) ]
//	         |
//	    [ lru cache ]
//	         |
//	     [ kv store ]
//
// Every value is stored as rlp raw bytes under (contract address, slot).
// An empty raw value means the slot is cleared.
package state
