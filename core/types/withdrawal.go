package types

import "github.com/ethereum/go-ethereum/common"

// Withdrawal is a validator withdrawal queued by the consensus layer
// (EIP-4895), carried in the block body since Shanghai. The pending-block
// assembler copies the consensus client's withdrawal list verbatim into
// the block it builds (SPEC_FULL.md §1 supplement).
type Withdrawal struct {
	Index     uint64
	Validator uint64
	Address   common.Address
	Amount    uint64 // in Gwei
}

// Withdrawals is the slice form a block body carries post-Shanghai.
type Withdrawals []*Withdrawal
