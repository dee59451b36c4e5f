package core

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/evmforge/execution-core/core/types"
)

// Message is the flattened, signature-free view of a transaction that the
// EVM actually consumes: sender recovery and type-specific decoding have
// already happened by the time a Message exists.
type Message struct {
	To         *common.Address
	From       common.Address
	Nonce      uint64
	Value      *big.Int
	GasLimit   uint64
	GasPrice   *big.Int
	GasFeeCap  *big.Int
	GasTipCap  *big.Int
	Data       []byte
	AccessList types.AccessList

	BlobGasFeeCap *big.Int
	BlobHashes    []common.Hash

	// SkipNonceChecks and SkipFromEOACheck let eth_call-style simulation
	// messages bypass checks that only make sense for real, pool-admitted
	// transactions.
	SkipNonceChecks  bool
	SkipFromEOACheck bool
}

// TransactionToMessage flattens a signed transaction into a Message,
// recovering the sender with s, and uses the header's base fee to compute
// the effective gas price paid at BaseFee.
func TransactionToMessage(tx *types.Transaction, s types.Signer, baseFee *big.Int) (*Message, error) {
	msg := &Message{
		Nonce:         tx.Nonce(),
		GasLimit:      tx.Gas(),
		GasPrice:      new(big.Int).Set(tx.GasPrice()),
		GasFeeCap:     new(big.Int).Set(tx.GasFeeCap()),
		GasTipCap:     new(big.Int).Set(tx.GasTipCap()),
		To:            tx.To(),
		Value:         tx.Value(),
		Data:          tx.Data(),
		AccessList:    tx.AccessList(),
		BlobHashes:    tx.BlobHashes(),
		BlobGasFeeCap: tx.BlobGasFeeCap(),
	}
	if baseFee != nil {
		msg.GasPrice = bigMin(new(big.Int).Add(msg.GasTipCap, baseFee), msg.GasFeeCap)
	}
	var err error
	msg.From, err = types.Sender(s, tx)
	return msg, err
}

func bigMin(a, b *big.Int) *big.Int {
	if a.Cmp(b) < 0 {
		return a
	}
	return b
}
