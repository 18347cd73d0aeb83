// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package linkedlist

import (
	"math/big"

	"github.com/obaranni/staking/builtin/solidity"
	"github.com/obaranni/staking/core"
)

var one = big.NewInt(1)

// LinkedList is a storage backed doubly linked list of addresses.
type LinkedList struct {
	head  *solidity.Address
	tail  *solidity.Address
	count *solidity.Uint256
	next  *solidity.Mapping[core.Address, core.Address]
	prev  *solidity.Mapping[core.Address, core.Address]
}

func New(sctx *solidity.Context, headPos, tailPos, countPos core.Bytes32) *LinkedList {
	return &LinkedList{
		head:  solidity.NewAddress(sctx, headPos),
		tail:  solidity.NewAddress(sctx, tailPos),
		count: solidity.NewUint256(sctx, countPos),
		next:  solidity.NewMapping[core.Address, core.Address](sctx, headPos),
		prev:  solidity.NewMapping[core.Address, core.Address](sctx, tailPos),
	}
}

// Add appends address to the tail. Adding a present address is a no-op.
func (l *LinkedList) Add(address core.Address) error {
	present, err := l.Contains(address)
	if err != nil || present {
		return err
	}

	oldTail, err := l.tail.Get()
	if err != nil {
		return err
	}

	if oldTail.IsZero() {
		l.head.Set(&address)
		l.tail.Set(&address)
		return l.count.Add(one)
	}

	if err := l.next.Set(oldTail, address); err != nil {
		return err
	}
	if err := l.prev.Set(address, oldTail); err != nil {
		return err
	}
	l.tail.Set(&address)

	return l.count.Add(one)
}

// Remove unlinks address, reconnecting its neighbours. Removing an absent
// address is a no-op.
func (l *LinkedList) Remove(address core.Address) error {
	present, err := l.Contains(address)
	if err != nil || !present {
		return err
	}

	prev, err := l.prev.Get(address)
	if err != nil {
		return err
	}
	next, err := l.next.Get(address)
	if err != nil {
		return err
	}

	if !prev.IsZero() {
		if err := l.next.Set(prev, next); err != nil {
			return err
		}
	} else {
		l.head.Set(&next)
	}

	if !next.IsZero() {
		if err := l.prev.Set(next, prev); err != nil {
			return err
		}
	} else {
		l.tail.Set(&prev)
	}

	l.next.Delete(address)
	l.prev.Delete(address)

	return l.count.Sub(one)
}

// Contains reports whether address is linked.
func (l *LinkedList) Contains(address core.Address) (bool, error) {
	if address.IsZero() {
		return false, nil
	}
	prev, err := l.prev.Get(address)
	if err != nil {
		return false, err
	}
	if !prev.IsZero() {
		return true, nil
	}
	head, err := l.head.Get()
	if err != nil {
		return false, err
	}
	return head == address, nil
}

func (l *LinkedList) Len() (uint64, error) {
	count, err := l.count.Get()
	if err != nil {
		return 0, err
	}
	return count.Uint64(), nil
}

func (l *LinkedList) Head() (core.Address, error) {
	return l.head.Get()
}

// Iter walks the list from head to tail. The callback must not mutate the list.
func (l *LinkedList) Iter(callback func(core.Address) error) error {
	ptr, err := l.head.Get()
	if err != nil {
		return err
	}

	for !ptr.IsZero() {
		if err := callback(ptr); err != nil {
			return err
		}
		if ptr, err = l.next.Get(ptr); err != nil {
			return err
		}
	}
	return nil
}
