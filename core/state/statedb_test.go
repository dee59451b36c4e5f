package state

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

var addr1 = common.HexToAddress("0x01")

// TestRevertRestoresPreCheckpointState encodes spec.md §8's journal
// round-trip property: reverting a checkpoint restores every mutation
// made since it was opened, and nothing from before it.
func TestRevertRestoresPreCheckpointState(t *testing.T) {
	s := New()
	s.AddBalance(addr1, big.NewInt(100))
	s.SetNonce(addr1, 1)

	cp := s.Snapshot()
	s.AddBalance(addr1, big.NewInt(50))
	s.SetNonce(addr1, 2)
	s.SetState(addr1, common.Hash{1}, common.Hash{2})

	require.Equal(t, big.NewInt(150), s.GetBalance(addr1))

	s.RevertToSnapshot(cp)

	require.Equal(t, big.NewInt(100), s.GetBalance(addr1))
	require.Equal(t, uint64(1), s.GetNonce(addr1))
	require.Equal(t, common.Hash{}, s.GetState(addr1, common.Hash{1}))
}

func TestNestedCheckpointsRevertIndependently(t *testing.T) {
	s := New()
	s.AddBalance(addr1, big.NewInt(10))

	outer := s.Snapshot()
	s.AddBalance(addr1, big.NewInt(20))

	inner := s.Snapshot()
	s.AddBalance(addr1, big.NewInt(30))
	require.Equal(t, big.NewInt(60), s.GetBalance(addr1))

	s.RevertToSnapshot(inner)
	require.Equal(t, big.NewInt(30), s.GetBalance(addr1))

	s.RevertToSnapshot(outer)
	require.Equal(t, big.NewInt(10), s.GetBalance(addr1))
}

func TestWarmAddressAddIsIdempotent(t *testing.T) {
	s := New()
	s.AddAddressToAccessList(addr1)
	lenBefore := s.journal.length()
	s.AddAddressToAccessList(addr1)
	require.Equal(t, lenBefore, s.journal.length(), "re-adding a warm address must not grow the journal")
}

func TestTransientStorageClearedBetweenTransactions(t *testing.T) {
	s := New()
	s.SetTransientState(addr1, common.Hash{1}, common.Hash{9})
	require.Equal(t, common.Hash{9}, s.GetTransientState(addr1, common.Hash{1}))

	s.StartTransaction()
	require.Equal(t, common.Hash{}, s.GetTransientState(addr1, common.Hash{1}))
}

func TestCopyIsIndependent(t *testing.T) {
	s := New()
	s.AddBalance(addr1, big.NewInt(5))

	cpy := s.Copy()
	cpy.AddBalance(addr1, big.NewInt(100))

	require.Equal(t, big.NewInt(5), s.GetBalance(addr1))
	require.Equal(t, big.NewInt(105), cpy.GetBalance(addr1))
}
