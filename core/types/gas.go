package types

import (
	"math"

	"github.com/evmforge/execution-core/params"
)

// IntrinsicGas computes the minimum gas a transaction must supply for its
// base cost: calldata, access list entries, and (post EIP-3860) the
// init-code word cost for contract creation (spec.md §4.2). From Homestead
// on, isContractCreation selects the higher TxGasContractCreation floor
// instead of TxGas.
func IntrinsicGas(data []byte, accessList AccessList, isContractCreation, isHomestead, isEIP2028, isEIP3860 bool) (uint64, error) {
	var gas uint64
	if isContractCreation && isHomestead {
		gas = params.TxGasContractCreation
	} else {
		gas = params.TxGas
	}
	dataLen := uint64(len(data))
	if dataLen > 0 {
		var nz uint64
		for _, b := range data {
			if b != 0 {
				nz++
			}
		}
		nonZeroGas := params.TxDataNonZeroGasFrontier
		if isEIP2028 {
			nonZeroGas = params.TxDataNonZeroGasEIP2028
		}
		if (math.MaxUint64-gas)/nonZeroGas < nz {
			return 0, ErrGasOverflow
		}
		gas += nz * nonZeroGas

		z := dataLen - nz
		if (math.MaxUint64-gas)/params.TxDataZeroGas < z {
			return 0, ErrGasOverflow
		}
		gas += z * params.TxDataZeroGas

		if isContractCreation && isEIP3860 {
			lenWords := toWordSize(dataLen)
			if (math.MaxUint64-gas)/params.InitCodeWordGas < lenWords {
				return 0, ErrGasOverflow
			}
			gas += lenWords * params.InitCodeWordGas
		}
	}
	if accessList != nil {
		addrCount := uint64(len(accessList))
		if (math.MaxUint64-gas)/params.TxAccessListAddressGas < addrCount {
			return 0, ErrGasOverflow
		}
		gas += addrCount * params.TxAccessListAddressGas

		slotCount := uint64(accessList.StorageKeys())
		if (math.MaxUint64-gas)/params.TxAccessListStorageKeyGas < slotCount {
			return 0, ErrGasOverflow
		}
		gas += slotCount * params.TxAccessListStorageKeyGas
	}
	return gas, nil
}

// toWordSize rounds a byte length up to the nearest 32-byte word count.
func toWordSize(size uint64) uint64 {
	if size > math.MaxUint64-31 {
		return math.MaxUint64/32 + 1
	}
	return (size + 31) / 32
}
