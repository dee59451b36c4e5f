package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Contract is one call frame's execution context: the running code, the
// addresses and value involved, and the gas meter for this frame
// (spec.md §4.5).
type Contract struct {
	CallerAddress common.Address
	caller        ContractRef
	self          ContractRef

	jumpdests map[common.Hash]bitvec // shared analysis cache across frames that run the same code

	Code     []byte
	CodeHash common.Hash
	CodeAddr *common.Address
	Input    []byte

	Gas   uint64
	value *uint256.Int

	IsEOF bool // running code under an EIP-3540 container header
}

// ContractRef is anything that can be the caller or callee of a frame.
type ContractRef interface {
	Address() common.Address
}

// AccountRef implements ContractRef for plain addresses (EOAs, or any
// address used as a call target before its code is resolved).
type AccountRef common.Address

func (ar AccountRef) Address() common.Address { return common.Address(ar) }

func NewContract(caller ContractRef, object ContractRef, value *uint256.Int, gas uint64) *Contract {
	c := &Contract{CallerAddress: caller.Address(), caller: caller, self: object}
	if value == nil {
		value = new(uint256.Int)
	}
	c.value = value
	c.Gas = gas
	c.jumpdests = make(map[common.Hash]bitvec)
	return c
}

func (c *Contract) SetCallCode(addr *common.Address, hash common.Hash, code []byte) {
	c.Code = code
	c.CodeHash = hash
	c.CodeAddr = addr
}

func (c *Contract) Address() common.Address { return c.self.Address() }

func (c *Contract) Value() *uint256.Int { return c.value }

// UseGas deducts amount from the frame's remaining gas and reports true;
// if too little gas is left it deducts nothing and reports false
// (spec.md §4.6 "gas accounting").
func (c *Contract) UseGas(amount uint64) bool {
	if c.Gas < amount {
		return false
	}
	c.Gas -= amount
	return true
}

// validJumpdest reports whether dest is a JUMPDEST in c.Code, consulting
// (and populating) the shared per-codehash analysis cache.
func (c *Contract) validJumpdest(dest *uint256.Int) bool {
	udest, overflow := dest.Uint64WithOverflow()
	if overflow || udest >= uint64(len(c.Code)) {
		return false
	}
	analysis, exists := c.jumpdests[c.CodeHash]
	if !exists {
		analysis = codeBitmap(c.Code)
		c.jumpdests[c.CodeHash] = analysis
	}
	return analysis.codeSegment(udest) && OpCode(c.Code[udest]) == JUMPDEST
}
