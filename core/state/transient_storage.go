package state

import "github.com/ethereum/go-ethereum/common"

// transientStorage is the EIP-1153 TLOAD/TSTORE scratch space: cleared at
// the end of every transaction, never written back to the account trie.
// Its mutations are undone through the same journal as ordinary storage
// (see transientStorageChange in journal.go), not a separate stack — EIP-1153
// explicitly defines transient storage to revert exactly like normal storage
// within a transaction, so one journal does both jobs.
type transientStorage map[common.Address]map[common.Hash]common.Hash

func newTransientStorage() transientStorage {
	return make(transientStorage)
}

func (t transientStorage) get(addr common.Address, key common.Hash) common.Hash {
	slots, ok := t[addr]
	if !ok {
		return common.Hash{}
	}
	return slots[key]
}

func (t transientStorage) set(addr common.Address, key, value common.Hash) {
	slots, ok := t[addr]
	if !ok {
		slots = make(map[common.Hash]common.Hash)
		t[addr] = slots
	}
	slots[key] = value
}
