package state

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// stateObject is one account's in-memory representation: balance, nonce,
// code and storage. The MPT/KV store that would back this in a full node
// is out of scope (spec.md §1); StateDB keeps every account live in a
// plain map for the duration of a block build.
type stateObject struct {
	address common.Address

	balance *big.Int
	nonce   uint64
	code    []byte
	codeHash common.Hash

	storage map[common.Hash]common.Hash

	// originalStorage records each key's value as of the start of the
	// current transaction, the first time that key is touched. SSTORE gas
	// metering (EIP-2200/EIP-2929) is defined in terms of this "original"
	// value, not merely the value before this particular SSTORE.
	originalStorage map[common.Hash]common.Hash

	selfDestructed bool
	created        bool // created earlier in the current transaction
}

func newStateObject(addr common.Address) *stateObject {
	return &stateObject{
		address:         addr,
		balance:         new(big.Int),
		storage:         make(map[common.Hash]common.Hash),
		originalStorage: make(map[common.Hash]common.Hash),
	}
}

func (s *stateObject) deepCopy() *stateObject {
	cpy := &stateObject{
		address:         s.address,
		balance:         new(big.Int).Set(s.balance),
		nonce:           s.nonce,
		code:            common.CopyBytes(s.code),
		codeHash:        s.codeHash,
		storage:         make(map[common.Hash]common.Hash, len(s.storage)),
		originalStorage: make(map[common.Hash]common.Hash, len(s.originalStorage)),
		selfDestructed:  s.selfDestructed,
		created:         s.created,
	}
	for k, v := range s.storage {
		cpy.storage[k] = v
	}
	for k, v := range s.originalStorage {
		cpy.originalStorage[k] = v
	}
	return cpy
}

// committedValue returns key's original-at-transaction-start value,
// recording the current value as that baseline the first time key is seen.
func (s *stateObject) committedValue(key common.Hash) common.Hash {
	if v, ok := s.originalStorage[key]; ok {
		return v
	}
	v := s.storage[key]
	s.originalStorage[key] = v
	return v
}

func (s *stateObject) clearCommitted() {
	s.originalStorage = make(map[common.Hash]common.Hash)
}

func (s *stateObject) empty() bool {
	return s.nonce == 0 && s.balance.Sign() == 0 && len(s.code) == 0
}
