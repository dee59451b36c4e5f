package vm

import "github.com/ethereum/go-ethereum/common"

// PrecompileOverrides lets an embedder add or remove entries from the
// standard address table without forking this package, the way a
// custom precompile set would extend the base Ethereum rules for a
// network-specific op (spec.md §4.6 is Ethereum-mainnet precompiles only;
// this is the seam a derived chain would use to add more).
type PrecompileOverrides struct {
	Add    map[common.Address]PrecompiledContract
	Remove []common.Address
}

// WithPrecompileOverrides returns a copy of base with overrides applied,
// leaving the package-level tables (and any other EVM sharing them)
// untouched.
func WithPrecompileOverrides(base map[common.Address]PrecompiledContract, overrides PrecompileOverrides) map[common.Address]PrecompiledContract {
	out := make(map[common.Address]PrecompiledContract, len(base)+len(overrides.Add))
	for addr, pc := range base {
		out[addr] = pc
	}
	for _, addr := range overrides.Remove {
		delete(out, addr)
	}
	for addr, pc := range overrides.Add {
		out[addr] = pc
	}
	return out
}

// SetPrecompiles replaces evm's active precompile table, used by a
// caller that has already computed an overridden set via
// WithPrecompileOverrides.
func (evm *EVM) SetPrecompiles(table map[common.Address]PrecompiledContract) {
	evm.precompiles = table
}
