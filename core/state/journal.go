package state

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// slotKey identifies one (address, storage-slot) pair in the warm-access
// set (spec.md §4.3 "EIP-2929 access tracking").
type slotKey struct {
	addr common.Address
	slot common.Hash
}

// journalEntry is one undoable mutation. revert restores s to the state
// it was in immediately before the mutation was applied.
type journalEntry interface {
	revert(s *StateDB)
}

// journal is the checkpoint-stack spec.md §4.3 describes: entries append
// in commit order, checkpoint marks a position, revert unwinds every
// entry back to that position in reverse order.
type journal struct {
	entries     []journalEntry
	checkpoints []int
}

func newJournal() *journal {
	return &journal{}
}

// checkpoint opens a new revertible region and returns its id.
func (j *journal) checkpoint() int {
	id := len(j.checkpoints)
	j.checkpoints = append(j.checkpoints, len(j.entries))
	return id
}

// commit discards the checkpoint at id, keeping every entry recorded
// since it was opened (they now belong to the enclosing checkpoint, if
// any). commit must be called on checkpoints in LIFO order.
func (j *journal) commit(id int) error {
	if id != len(j.checkpoints)-1 {
		return ErrJournalUnbalanced
	}
	j.checkpoints = j.checkpoints[:id]
	return nil
}

// revert unwinds every entry recorded since checkpoint id, in reverse
// order, then discards the checkpoint itself.
func (j *journal) revert(s *StateDB, id int) error {
	if id < 0 || id >= len(j.checkpoints) {
		return ErrJournalUnbalanced
	}
	mark := j.checkpoints[id]
	for i := len(j.entries) - 1; i >= mark; i-- {
		j.entries[i].revert(s)
	}
	j.entries = j.entries[:mark]
	j.checkpoints = j.checkpoints[:id]
	return nil
}

func (j *journal) append(entry journalEntry) {
	j.entries = append(j.entries, entry)
}

func (j *journal) length() int { return len(j.entries) }

// -- entry kinds ------------------------------------------------------------

type createObjectChange struct {
	account common.Address
}

func (ch createObjectChange) revert(s *StateDB) {
	delete(s.objects, ch.account)
}

type balanceChange struct {
	account common.Address
	prev    *big.Int
}

func (ch balanceChange) revert(s *StateDB) {
	s.objects[ch.account].balance = ch.prev
}

type nonceChange struct {
	account common.Address
	prev    uint64
}

func (ch nonceChange) revert(s *StateDB) {
	s.objects[ch.account].nonce = ch.prev
}

type codeChange struct {
	account      common.Address
	prevCode     []byte
	prevCodeHash common.Hash
}

func (ch codeChange) revert(s *StateDB) {
	obj := s.objects[ch.account]
	obj.code = ch.prevCode
	obj.codeHash = ch.prevCodeHash
}

type storageChange struct {
	account common.Address
	key     common.Hash
	prev    common.Hash
}

func (ch storageChange) revert(s *StateDB) {
	s.objects[ch.account].storage[ch.key] = ch.prev
}

type selfDestructChange struct {
	account common.Address
	prev    bool
}

func (ch selfDestructChange) revert(s *StateDB) {
	s.objects[ch.account].selfDestructed = ch.prev
}

type refundChange struct {
	prev uint64
}

func (ch refundChange) revert(s *StateDB) {
	s.refund = ch.prev
}

type addLogChange struct{}

func (ch addLogChange) revert(s *StateDB) {
	s.logs = s.logs[:len(s.logs)-1]
}

type accessListAddAccountChange struct {
	address common.Address
}

func (ch accessListAddAccountChange) revert(s *StateDB) {
	s.warmAddresses.Remove(ch.address)
}

type accessListAddSlotChange struct {
	address common.Address
	slot    common.Hash
}

func (ch accessListAddSlotChange) revert(s *StateDB) {
	s.warmSlots.Remove(slotKey{ch.address, ch.slot})
}

type transientStorageChange struct {
	account  common.Address
	key      common.Hash
	prevalue common.Hash
}

func (ch transientStorageChange) revert(s *StateDB) {
	s.transient.set(ch.account, ch.key, ch.prevalue)
}
