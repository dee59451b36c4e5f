package types

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

// TestLegacySignAndRecover encodes spec.md §8 scenario 1: signing a
// legacy transaction and recovering the same sender address from it.
func TestLegacySignAndRecover(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	want := crypto.PubkeyToAddress(key.PublicKey)

	to := common.HexToAddress("0x00000000000000000000000000000000000001")
	tx := NewLegacyTx(0, &to, big.NewInt(100), 21000, big.NewInt(1_000_000_000), nil)

	signer := newEIP155Signer(big.NewInt(1))
	signed, err := SignTx(tx, signer, key)
	require.NoError(t, err)

	got, err := Sender(signer, signed)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

// TestSignerChainDelegation checks that a newer signer in the embedding
// chain still recovers senders for an older transaction type.
func TestSignerChainDelegation(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	want := crypto.PubkeyToAddress(key.PublicKey)

	to := common.HexToAddress("0x00000000000000000000000000000000000002")
	tx := NewLegacyTx(3, &to, big.NewInt(0), 21000, big.NewInt(2_000_000_000), nil)

	eip155 := newEIP155Signer(big.NewInt(5))
	signed, err := SignTx(tx, eip155, key)
	require.NoError(t, err)

	latest := LatestSigner(big.NewInt(5))
	got, err := latest.Sender(signed)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

// TestDynamicFeeTxRoundTrip checks serialize/deserialize symmetry for a
// typed transaction (spec.md §4.2's "serialize/from_serialized" pair).
func TestDynamicFeeTxRoundTrip(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	to := common.HexToAddress("0x00000000000000000000000000000000000003")
	tx := NewDynamicFeeTx(big.NewInt(1), 7, &to, big.NewInt(42), 100000,
		big.NewInt(2), big.NewInt(100), []byte("hello"), nil)

	signer := newLondonSigner(big.NewInt(1))
	signed, err := SignTx(tx, signer, key)
	require.NoError(t, err)

	enc, err := signed.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, byte(DynamicFeeTxType), enc[0])

	var decoded Transaction
	require.NoError(t, decoded.UnmarshalBinary(enc))
	require.Equal(t, signed.Hash(), decoded.Hash())
	require.Equal(t, uint64(7), decoded.Nonce())
}

// TestFromSerializedTxRejectsMismatchedType encodes spec.md §4.2's
// "wrong type byte" validation rule.
func TestFromSerializedTxRejectsMismatchedType(t *testing.T) {
	to := common.HexToAddress("0x00000000000000000000000000000000000004")
	tx := NewLegacyTx(0, &to, big.NewInt(0), 21000, big.NewInt(1), nil)
	enc, err := tx.MarshalBinary()
	require.NoError(t, err)

	_, err = FromSerializedTx(DynamicFeeTxType, enc)
	require.ErrorIs(t, err, ErrWrongTxType)
}

// TestIntrinsicGasAccessList encodes spec.md §8 scenario 4.
func TestIntrinsicGasAccessList(t *testing.T) {
	al := AccessList{
		{Address: common.HexToAddress("0x01"), StorageKeys: []common.Hash{{}, {}}},
	}
	gas, err := IntrinsicGas(nil, al, false, true, true, false)
	require.NoError(t, err)
	want := uint64(21000) + 2400 + 2*1900
	require.Equal(t, want, gas)
}

// TestIntrinsicGasChargesDuplicateAccessListEntries encodes Open Question
// decision 3: a duplicated (address, storage key) pair in an access list
// is charged at intrinsic-gas time every time it occurs, not deduplicated.
func TestIntrinsicGasChargesDuplicateAccessListEntries(t *testing.T) {
	addr := common.HexToAddress("0x01")
	key := common.HexToHash("0x02")
	al := AccessList{
		{Address: addr, StorageKeys: []common.Hash{key}},
		{Address: addr, StorageKeys: []common.Hash{key}},
	}
	gas, err := IntrinsicGas(nil, al, false, true, true, false)
	require.NoError(t, err)
	want := uint64(21000) + 2*2400 + 2*1900
	require.Equal(t, want, gas)
}
