// Copyright 2020 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package types

import "github.com/ethereum/go-ethereum/common"

// AccessTuple is the element type of an access list: one address plus the
// set of storage slots it pre-warms, per EIP-2930.
type AccessTuple struct {
	Address     common.Address `json:"address"`
	StorageKeys []common.Hash  `json:"storageKeys"`
}

// AccessList is an EIP-2930 access list.
type AccessList []AccessTuple

// StorageKeys returns the total number of storage keys across every tuple
// in the list, duplicates included: spec.md §4.2 "Duplicates in access
// list are charged, not deduplicated" applies at this counting layer.
func (al AccessList) StorageKeys() int {
	var n int
	for _, tuple := range al {
		n += len(tuple.StorageKeys)
	}
	return n
}

// addresses returns the number of address entries, duplicates included.
func (al AccessList) addresses() int {
	return len(al)
}

// Copy returns an independent deep copy of the access list.
func (al AccessList) Copy() AccessList {
	if al == nil {
		return nil
	}
	out := make(AccessList, len(al))
	for i, tuple := range al {
		out[i] = AccessTuple{
			Address:     tuple.Address,
			StorageKeys: append([]common.Hash(nil), tuple.StorageKeys...),
		}
	}
	return out
}
