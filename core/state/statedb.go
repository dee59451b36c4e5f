// Package state implements the journaled account state the EVM core
// reads and mutates during message execution (spec.md §4.3/§4.4).
package state

import (
	"math/big"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/evmforge/execution-core/core/types"
)

// StateDB is the in-memory, journaled account store spec.md §6 calls the
// "State manager interface". The backing trie/KV layer a full node would
// use underneath it is out of scope (spec.md §1); StateDB here is the
// complete account and storage truth for one block build.
type StateDB struct {
	objects map[common.Address]*stateObject

	journal *journal

	refund uint64
	logs   []*types.Log

	warmAddresses mapset.Set[common.Address]
	warmSlots     mapset.Set[slotKey]

	transient transientStorage

	createdThisTx mapset.Set[common.Address]
}

// New constructs an empty StateDB. A real node would load objects lazily
// from a trie as they're touched; the in-scope surface here never sees a
// backing store, so every account starts absent until CreateAccount or
// the first write to it.
func New() *StateDB {
	return &StateDB{
		objects:       make(map[common.Address]*stateObject),
		journal:       newJournal(),
		warmAddresses: mapset.NewThreadUnsafeSet[common.Address](),
		warmSlots:     mapset.NewThreadUnsafeSet[slotKey](),
		transient:     newTransientStorage(),
		createdThisTx: mapset.NewThreadUnsafeSet[common.Address](),
	}
}

func (s *StateDB) getOrNewObject(addr common.Address) *stateObject {
	if obj, ok := s.objects[addr]; ok {
		return obj
	}
	return s.createObject(addr)
}

func (s *StateDB) createObject(addr common.Address) *stateObject {
	obj := newStateObject(addr)
	s.objects[addr] = obj
	s.journal.append(createObjectChange{account: addr})
	return obj
}

// CreateAccount instantiates a fresh account at addr, overwriting any
// stale object that may exist there (spec.md §4.5 "CREATE/CREATE2").
func (s *StateDB) CreateAccount(addr common.Address) {
	s.createObject(addr)
	s.createdThisTx.Add(addr)
}

// Exist reports whether addr has ever been touched in this StateDB.
func (s *StateDB) Exist(addr common.Address) bool {
	_, ok := s.objects[addr]
	return ok
}

// Empty reports the EIP-161 "empty account" condition: zero nonce, zero
// balance, no code.
func (s *StateDB) Empty(addr common.Address) bool {
	obj, ok := s.objects[addr]
	return !ok || obj.empty()
}

func (s *StateDB) GetBalance(addr common.Address) *big.Int {
	if obj, ok := s.objects[addr]; ok {
		return new(big.Int).Set(obj.balance)
	}
	return new(big.Int)
}

func (s *StateDB) AddBalance(addr common.Address, amount *big.Int) {
	if amount.Sign() == 0 {
		s.getOrNewObject(addr)
		return
	}
	obj := s.getOrNewObject(addr)
	s.journal.append(balanceChange{account: addr, prev: new(big.Int).Set(obj.balance)})
	obj.balance = new(big.Int).Add(obj.balance, amount)
}

func (s *StateDB) SubBalance(addr common.Address, amount *big.Int) {
	if amount.Sign() == 0 {
		s.getOrNewObject(addr)
		return
	}
	obj := s.getOrNewObject(addr)
	s.journal.append(balanceChange{account: addr, prev: new(big.Int).Set(obj.balance)})
	obj.balance = new(big.Int).Sub(obj.balance, amount)
}

func (s *StateDB) GetNonce(addr common.Address) uint64 {
	if obj, ok := s.objects[addr]; ok {
		return obj.nonce
	}
	return 0
}

func (s *StateDB) SetNonce(addr common.Address, nonce uint64) {
	obj := s.getOrNewObject(addr)
	s.journal.append(nonceChange{account: addr, prev: obj.nonce})
	obj.nonce = nonce
}

func (s *StateDB) GetCode(addr common.Address) []byte {
	if obj, ok := s.objects[addr]; ok {
		return obj.code
	}
	return nil
}

func (s *StateDB) GetCodeHash(addr common.Address) common.Hash {
	if obj, ok := s.objects[addr]; ok {
		return obj.codeHash
	}
	return common.Hash{}
}

func (s *StateDB) GetCodeSize(addr common.Address) int {
	return len(s.GetCode(addr))
}

func (s *StateDB) SetCode(addr common.Address, code []byte) {
	obj := s.getOrNewObject(addr)
	s.journal.append(codeChange{account: addr, prevCode: obj.code, prevCodeHash: obj.codeHash})
	obj.code = code
	obj.codeHash = crypto.Keccak256Hash(code)
}

func (s *StateDB) GetState(addr common.Address, key common.Hash) common.Hash {
	if obj, ok := s.objects[addr]; ok {
		return obj.storage[key]
	}
	return common.Hash{}
}

func (s *StateDB) SetState(addr common.Address, key, value common.Hash) {
	obj := s.getOrNewObject(addr)
	obj.committedValue(key)
	prev := obj.storage[key]
	if prev == value {
		return
	}
	s.journal.append(storageChange{account: addr, key: key, prev: prev})
	obj.storage[key] = value
}

// GetCommittedState returns addr's value for key as of the start of the
// current transaction, the baseline SSTORE gas metering charges against.
func (s *StateDB) GetCommittedState(addr common.Address, key common.Hash) common.Hash {
	obj, ok := s.objects[addr]
	if !ok {
		return common.Hash{}
	}
	return obj.committedValue(key)
}

// GetTransientState / SetTransientState implement EIP-1153 TLOAD/TSTORE.
func (s *StateDB) GetTransientState(addr common.Address, key common.Hash) common.Hash {
	return s.transient.get(addr, key)
}

func (s *StateDB) SetTransientState(addr common.Address, key, value common.Hash) {
	prev := s.transient.get(addr, key)
	if prev == value {
		return
	}
	s.journal.append(transientStorageChange{account: addr, key: key, prevalue: prev})
	s.transient.set(addr, key, value)
}

// SelfDestruct marks addr for removal at the end of the transaction
// (spec.md §4.5). Balance is left for the caller to zero explicitly,
// matching the EIP-6780 "only effective in the creating transaction"
// restriction which core/vm enforces before calling this.
func (s *StateDB) SelfDestruct(addr common.Address) {
	obj, ok := s.objects[addr]
	if !ok {
		return
	}
	s.journal.append(selfDestructChange{account: addr, prev: obj.selfDestructed})
	obj.selfDestructed = true
}

func (s *StateDB) HasSelfDestructed(addr common.Address) bool {
	obj, ok := s.objects[addr]
	return ok && obj.selfDestructed
}

// CreatedThisTx reports whether addr was created earlier in the current
// transaction, the condition EIP-6780 gates SELFDESTRUCT account deletion on.
func (s *StateDB) CreatedThisTx(addr common.Address) bool {
	return s.createdThisTx.Contains(addr)
}

// -- refund counter -----------------------------------------------------

func (s *StateDB) AddRefund(gas uint64) {
	s.journal.append(refundChange{prev: s.refund})
	s.refund += gas
}

func (s *StateDB) SubRefund(gas uint64) {
	s.journal.append(refundChange{prev: s.refund})
	if gas > s.refund {
		panic("refund counter below zero")
	}
	s.refund -= gas
}

func (s *StateDB) GetRefund() uint64 { return s.refund }

// -- logs -----------------------------------------------------------------

func (s *StateDB) AddLog(log *types.Log) {
	s.journal.append(addLogChange{})
	s.logs = append(s.logs, log)
}

func (s *StateDB) Logs() []*types.Log { return s.logs }

// -- EIP-2929 access list ---------------------------------------------------

func (s *StateDB) AddressInAccessList(addr common.Address) bool {
	return s.warmAddresses.Contains(addr)
}

func (s *StateDB) SlotInAccessList(addr common.Address, slot common.Hash) (addrOk, slotOk bool) {
	return s.warmAddresses.Contains(addr), s.warmSlots.Contains(slotKey{addr, slot})
}

// AddAddressToAccessList warms addr. Per spec.md's Open Question 3, a
// repeat Add on an already-warm address is a journal-free no-op: nothing
// reverts because nothing changed.
func (s *StateDB) AddAddressToAccessList(addr common.Address) {
	if s.warmAddresses.Contains(addr) {
		return
	}
	s.warmAddresses.Add(addr)
	s.journal.append(accessListAddAccountChange{address: addr})
}

func (s *StateDB) AddSlotToAccessList(addr common.Address, slot common.Hash) {
	if !s.warmAddresses.Contains(addr) {
		s.warmAddresses.Add(addr)
		s.journal.append(accessListAddAccountChange{address: addr})
	}
	key := slotKey{addr, slot}
	if s.warmSlots.Contains(key) {
		return
	}
	s.warmSlots.Add(key)
	s.journal.append(accessListAddSlotChange{address: addr, slot: slot})
}

// -- checkpoint/commit/revert ----------------------------------------------

// Snapshot opens a new revertible region (spec.md §4.3 "checkpoint").
func (s *StateDB) Snapshot() int {
	return s.journal.checkpoint()
}

// RevertToSnapshot undoes every mutation recorded since id was opened.
func (s *StateDB) RevertToSnapshot(id int) {
	if err := s.journal.revert(s, id); err != nil {
		panic(err)
	}
}

// Finalise commits the checkpoint at id, keeping its mutations.
func (s *StateDB) Finalise(id int) {
	if err := s.journal.commit(id); err != nil {
		panic(err)
	}
}

// Copy returns an independent deep copy of the whole state, used by the
// pending-block assembler to execute a candidate transaction against a
// scratch state without disturbing the block-in-progress state
// (spec.md §9 "shallow_copy/deep-copy").
func (s *StateDB) Copy() *StateDB {
	cpy := &StateDB{
		objects:       make(map[common.Address]*stateObject, len(s.objects)),
		journal:       newJournal(),
		warmAddresses: mapset.NewThreadUnsafeSet[common.Address](),
		warmSlots:     mapset.NewThreadUnsafeSet[slotKey](),
		transient:     newTransientStorage(),
		createdThisTx: mapset.NewThreadUnsafeSet[common.Address](),
	}
	for addr, obj := range s.objects {
		cpy.objects[addr] = obj.deepCopy()
	}
	cpy.refund = s.refund
	cpy.logs = append([]*types.Log(nil), s.logs...)
	return cpy
}

// StartTransaction clears transient storage and per-tx creation tracking;
// called by the caller between transactions within the same block build.
func (s *StateDB) StartTransaction() {
	s.transient = newTransientStorage()
	s.createdThisTx = mapset.NewThreadUnsafeSet[common.Address]()
	s.logs = nil
	s.refund = 0
	for _, obj := range s.objects {
		obj.clearCommitted()
	}
}
