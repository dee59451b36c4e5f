package vm

import (
	"crypto/sha256"
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/crypto/bn256/cloudflare"
	"github.com/ethereum/go-ethereum/crypto/kzg4844"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // required for the 0x03 precompile's exact digest

	"github.com/evmforge/execution-core/params"
)

// PrecompiledContract is a native, non-EVM-bytecode contract living at a
// fixed low address (spec.md §4.6 "Precompiled contracts").
type PrecompiledContract interface {
	RequiredGas(input []byte) uint64
	Run(input []byte) ([]byte, error)
}

var (
	errInvalidInput    = errors.New("invalid precompile input")
	errInvalidProof    = errors.New("invalid proof")
	errPointEvaluation = errors.New("invalid point evaluation input")
)

var precompilesByzantium = map[common.Address]PrecompiledContract{
	common.BytesToAddress([]byte{1}): &ecrecoverPrecompile{},
	common.BytesToAddress([]byte{2}): &sha256Precompile{},
	common.BytesToAddress([]byte{3}): &ripemd160Precompile{},
	common.BytesToAddress([]byte{4}): &identityPrecompile{},
	common.BytesToAddress([]byte{5}): &modexpPrecompile{},
	common.BytesToAddress([]byte{6}): &bn256AddByzantium{},
	common.BytesToAddress([]byte{7}): &bn256ScalarMulByzantium{},
	common.BytesToAddress([]byte{8}): &bn256PairingByzantium{},
}

var precompilesIstanbul = map[common.Address]PrecompiledContract{
	common.BytesToAddress([]byte{1}): &ecrecoverPrecompile{},
	common.BytesToAddress([]byte{2}): &sha256Precompile{},
	common.BytesToAddress([]byte{3}): &ripemd160Precompile{},
	common.BytesToAddress([]byte{4}): &identityPrecompile{},
	common.BytesToAddress([]byte{5}): &modexpPrecompile{},
	common.BytesToAddress([]byte{6}): &bn256AddIstanbul{},
	common.BytesToAddress([]byte{7}): &bn256ScalarMulIstanbul{},
	common.BytesToAddress([]byte{8}): &bn256PairingIstanbul{},
	common.BytesToAddress([]byte{9}): &blake2FPrecompile{},
}

var precompilesCancun = map[common.Address]PrecompiledContract{
	common.BytesToAddress([]byte{1}):  &ecrecoverPrecompile{},
	common.BytesToAddress([]byte{2}):  &sha256Precompile{},
	common.BytesToAddress([]byte{3}):  &ripemd160Precompile{},
	common.BytesToAddress([]byte{4}):  &identityPrecompile{},
	common.BytesToAddress([]byte{5}):  &modexpPrecompile{},
	common.BytesToAddress([]byte{6}):  &bn256AddIstanbul{},
	common.BytesToAddress([]byte{7}):  &bn256ScalarMulIstanbul{},
	common.BytesToAddress([]byte{8}):  &bn256PairingIstanbul{},
	common.BytesToAddress([]byte{9}):  &blake2FPrecompile{},
	common.BytesToAddress([]byte{10}): &pointEvaluationPrecompile{},
	common.BytesToAddress([]byte{11}): &bls12G1AddPrecompile{},
	common.BytesToAddress([]byte{12}): &bls12G1MSMPrecompile{},
	common.BytesToAddress([]byte{13}): &bls12G2AddPrecompile{},
	common.BytesToAddress([]byte{14}): &bls12G2MSMPrecompile{},
	common.BytesToAddress([]byte{15}): &bls12PairingPrecompile{},
	common.BytesToAddress([]byte{16}): &bls12MapFpToG1Precompile{},
	common.BytesToAddress([]byte{17}): &bls12MapFp2ToG2Precompile{},
}

// activePrecompiles returns the address table for rules, following the
// same "later hardfork wins" selection the teacher's rules gate uses
// elsewhere (spec.md §4.6 "Rules gates precompile availability").
func activePrecompiles(rules params.Rules) map[common.Address]PrecompiledContract {
	switch {
	case rules.IsCancun:
		return precompilesCancun
	case rules.IsIstanbul:
		return precompilesIstanbul
	default:
		return precompilesByzantium
	}
}

func leftPad(b []byte, n int) []byte {
	if len(b) >= n {
		return b[:n]
	}
	out := make([]byte, n)
	copy(out[n-len(b):], b)
	return out
}

func getPrecompileInput(input []byte, start, length uint64) []byte {
	return getData(input, start, length)
}

// -- 0x01 ECRECOVER ---------------------------------------------------------

type ecrecoverPrecompile struct{}

func (c *ecrecoverPrecompile) RequiredGas([]byte) uint64 { return params.EcrecoverGas }

func (c *ecrecoverPrecompile) Run(input []byte) ([]byte, error) {
	input = leftPad(input, 128)
	hash := input[:32]
	v := new(big.Int).SetBytes(input[32:64])
	r := input[64:96]
	s := input[96:128]

	if v.Cmp(big.NewInt(27)) != 0 && v.Cmp(big.NewInt(28)) != 0 {
		return nil, nil
	}
	sig := make([]byte, 65)
	copy(sig[0:32], r)
	copy(sig[32:64], s)
	sig[64] = byte(v.Uint64() - 27)

	pub, err := crypto.Ecrecover(hash, sig)
	if err != nil {
		return nil, nil
	}
	addr := common.BytesToAddress(crypto.Keccak256(pub[1:])[12:])
	return common.LeftPadBytes(addr.Bytes(), 32), nil
}

// -- 0x02 SHA256 --------------------------------------------------------------

type sha256Precompile struct{}

func (c *sha256Precompile) RequiredGas(input []byte) uint64 {
	return uint64(toWordSize(uint64(len(input))))*params.Sha256PerWordGas + params.Sha256BaseGas
}

func (c *sha256Precompile) Run(input []byte) ([]byte, error) {
	h := sha256.Sum256(input)
	return h[:], nil
}

// -- 0x03 RIPEMD160 -----------------------------------------------------------

type ripemd160Precompile struct{}

func (c *ripemd160Precompile) RequiredGas(input []byte) uint64 {
	return uint64(toWordSize(uint64(len(input))))*params.Ripemd160PerWordGas + params.Ripemd160BaseGas
}

func (c *ripemd160Precompile) Run(input []byte) ([]byte, error) {
	h := ripemd160.New()
	h.Write(input)
	return common.LeftPadBytes(h.Sum(nil), 32), nil
}

// -- 0x04 IDENTITY -------------------------------------------------------------

type identityPrecompile struct{}

func (c *identityPrecompile) RequiredGas(input []byte) uint64 {
	return uint64(toWordSize(uint64(len(input))))*params.IdentityPerWordGas + params.IdentityBaseGas
}

func (c *identityPrecompile) Run(input []byte) ([]byte, error) {
	return common.CopyBytes(input), nil
}

// -- 0x05 MODEXP (EIP-198/2565) ------------------------------------------------

type modexpPrecompile struct{}

func (c *modexpPrecompile) RequiredGas(input []byte) uint64 {
	var baseLen, expLen, modLen uint64
	padded := leftPad(input, 96)
	baseLen = new(big.Int).SetBytes(padded[0:32]).Uint64()
	expLen = new(big.Int).SetBytes(padded[32:64]).Uint64()
	modLen = new(big.Int).SetBytes(padded[64:96]).Uint64()

	maxLen := baseLen
	if modLen > maxLen {
		maxLen = modLen
	}
	words := toWordSize(maxLen)
	gas := words * words

	expStart := 96 + baseLen
	expHead := getPrecompileInput(input, expStart, min64(expLen, 32))
	adjExpLen := uint64(0)
	if expLen > 32 {
		adjExpLen = 8 * (expLen - 32)
	}
	bitLen := new(big.Int).SetBytes(expHead).BitLen()
	if bitLen > 0 {
		adjExpLen += uint64(bitLen - 1)
	}
	if adjExpLen < 1 {
		adjExpLen = 1
	}
	gas = gas * adjExpLen / 3
	if gas < 200 {
		gas = 200
	}
	return gas
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

func (c *modexpPrecompile) Run(input []byte) ([]byte, error) {
	padded := leftPad(input, 96)
	baseLen := new(big.Int).SetBytes(padded[0:32]).Uint64()
	expLen := new(big.Int).SetBytes(padded[32:64]).Uint64()
	modLen := new(big.Int).SetBytes(padded[64:96]).Uint64()

	base := new(big.Int).SetBytes(getPrecompileInput(input, 96, baseLen))
	exp := new(big.Int).SetBytes(getPrecompileInput(input, 96+baseLen, expLen))
	mod := new(big.Int).SetBytes(getPrecompileInput(input, 96+baseLen+expLen, modLen))

	if mod.Sign() == 0 {
		return common.LeftPadBytes(nil, int(modLen)), nil
	}
	result := new(big.Int).Exp(base, exp, mod)
	return common.LeftPadBytes(result.Bytes(), int(modLen)), nil
}

// -- 0x06/0x07/0x08 alt_bn128 -------------------------------------------------

func bn256Point(input []byte, offset int) (*bn256.G1, error) {
	p := new(bn256.G1)
	buf := leftPad(getPrecompileInput(input, uint64(offset), 64), 64)
	if _, err := p.Unmarshal(buf); err != nil {
		return nil, err
	}
	return p, nil
}

func bn256Add(input []byte) ([]byte, error) {
	x, err := bn256Point(input, 0)
	if err != nil {
		return nil, errInvalidInput
	}
	y, err := bn256Point(input, 64)
	if err != nil {
		return nil, errInvalidInput
	}
	res := new(bn256.G1).Add(x, y)
	return res.Marshal(), nil
}

func bn256ScalarMul(input []byte) ([]byte, error) {
	p, err := bn256Point(input, 0)
	if err != nil {
		return nil, errInvalidInput
	}
	scalar := new(big.Int).SetBytes(getPrecompileInput(input, 64, 32))
	res := new(bn256.G1).ScalarMult(p, scalar)
	return res.Marshal(), nil
}

func bn256Pairing(input []byte) ([]byte, error) {
	if len(input)%192 != 0 {
		return nil, errInvalidInput
	}
	var g1s []*bn256.G1
	var g2s []*bn256.G2
	for i := 0; i < len(input); i += 192 {
		g1 := new(bn256.G1)
		if _, err := g1.Unmarshal(input[i : i+64]); err != nil {
			return nil, errInvalidInput
		}
		g2 := new(bn256.G2)
		if _, err := g2.Unmarshal(input[i+64 : i+192]); err != nil {
			return nil, errInvalidInput
		}
		g1s = append(g1s, g1)
		g2s = append(g2s, g2)
	}
	success := bn256.PairingCheck(g1s, g2s)
	out := make([]byte, 32)
	if success {
		out[31] = 1
	}
	return out, nil
}

type bn256AddByzantium struct{}

func (c *bn256AddByzantium) RequiredGas([]byte) uint64 { return params.Bn256AddGasByzantium }
func (c *bn256AddByzantium) Run(input []byte) ([]byte, error) { return bn256Add(input) }

type bn256ScalarMulByzantium struct{}

func (c *bn256ScalarMulByzantium) RequiredGas([]byte) uint64 { return params.Bn256ScalarMulGasByzantium }
func (c *bn256ScalarMulByzantium) Run(input []byte) ([]byte, error) { return bn256ScalarMul(input) }

type bn256PairingByzantium struct{}

func (c *bn256PairingByzantium) RequiredGas(input []byte) uint64 {
	return params.Bn256PairingBaseGasByzantium + uint64(len(input)/192)*params.Bn256PairingPerPointGasByzantium
}
func (c *bn256PairingByzantium) Run(input []byte) ([]byte, error) { return bn256Pairing(input) }

type bn256AddIstanbul struct{}

func (c *bn256AddIstanbul) RequiredGas([]byte) uint64 { return params.Bn256AddGasIstanbul }
func (c *bn256AddIstanbul) Run(input []byte) ([]byte, error) { return bn256Add(input) }

type bn256ScalarMulIstanbul struct{}

func (c *bn256ScalarMulIstanbul) RequiredGas([]byte) uint64 { return params.Bn256ScalarMulGasIstanbul }
func (c *bn256ScalarMulIstanbul) Run(input []byte) ([]byte, error) { return bn256ScalarMul(input) }

type bn256PairingIstanbul struct{}

func (c *bn256PairingIstanbul) RequiredGas(input []byte) uint64 {
	return params.Bn256PairingBaseGasIstanbul + uint64(len(input)/192)*params.Bn256PairingPerPointGasIstanbul
}
func (c *bn256PairingIstanbul) Run(input []byte) ([]byte, error) { return bn256Pairing(input) }

// -- 0x09 BLAKE2F (EIP-152) ----------------------------------------------------

type blake2FPrecompile struct{}

const blake2FInputLength = 213

func (c *blake2FPrecompile) RequiredGas(input []byte) uint64 {
	if len(input) != blake2FInputLength {
		return 0
	}
	return uint64(new(big.Int).SetBytes(input[0:4]).Uint64())
}

func (c *blake2FPrecompile) Run(input []byte) ([]byte, error) {
	if len(input) != blake2FInputLength {
		return nil, errInvalidInput
	}
	if input[212] != 0 && input[212] != 1 {
		return nil, errInvalidInput
	}
	rounds := new(big.Int).SetBytes(input[0:4]).Uint64()

	var h [8]uint64
	for i := 0; i < 8; i++ {
		h[i] = leUint64(input[4+i*8:])
	}
	var m [16]uint64
	for i := 0; i < 16; i++ {
		m[i] = leUint64(input[68+i*8:])
	}
	t0 := leUint64(input[196:])
	t1 := leUint64(input[204:])
	final := input[212] == 1

	blake2bF(&h, &m, t0, t1, final, rounds)

	out := make([]byte, 64)
	for i := 0; i < 8; i++ {
		putLeUint64(out[i*8:], h[i])
	}
	return out, nil
}

func leUint64(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(b[i]) << (8 * i)
	}
	return v
}

func putLeUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

// blake2bF runs the blake2b compression function F via golang.org/x/crypto's
// implementation, rather than reimplementing the round function locally.
func blake2bF(h *[8]uint64, m *[16]uint64, t0, t1 uint64, final bool, rounds uint64) {
	blake2b.F(h, m, [2]uint64{t0, t1}, final, rounds)
}

// -- 0x0a point evaluation (EIP-4844) -----------------------------------------

type pointEvaluationPrecompile struct{}

func (c *pointEvaluationPrecompile) RequiredGas([]byte) uint64 {
	return params.BlobTxPointEvaluationPrecompileGas
}

// The public inputs are laid out as versioned-hash || z || y || commitment
// || proof, matching EIP-4844's point evaluation precompile.
func (c *pointEvaluationPrecompile) Run(input []byte) ([]byte, error) {
	if len(input) != 192 {
		return nil, errPointEvaluation
	}
	var commitment kzg4844.Commitment
	copy(commitment[:], input[96:144])
	versionedHash := input[0:32]
	sum := sha256.Sum256(commitment[:])
	sum[0] = 0x01 // EIP-4844 VERSIONED_HASH_VERSION_KZG
	if !bytesEqual(sum[:], versionedHash) {
		return nil, errPointEvaluation
	}
	var point, claim [32]byte
	copy(point[:], input[32:64])
	copy(claim[:], input[64:96])
	var proof kzg4844.Proof
	copy(proof[:], input[144:192])

	if err := kzg4844.VerifyProof(commitment, point, claim, proof); err != nil {
		return nil, errInvalidProof
	}

	precompileReturnValue := make([]byte, 64)
	copy(precompileReturnValue[0:32], uint256BytesOf(params.BlobTxFieldElementsPerBlob))
	copy(precompileReturnValue[32:64], blsModulusBytes())
	return precompileReturnValue, nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func uint256BytesOf(v uint64) []byte {
	return common.LeftPadBytes(new(big.Int).SetUint64(v).Bytes(), 32)
}

func blsModulusBytes() []byte {
	modulus, _ := new(big.Int).SetString("52435875175126190479447740508185965837690552500527637822603658699938581184513", 10)
	return common.LeftPadBytes(modulus.Bytes(), 32)
}

// -- 0x0b-0x11 BLS12-381 (EIP-2537) --------------------------------------------
//
// Encodings here follow the simplified fixed-width big-endian convention
// gnark-crypto's bls12381 package marshals natively; they approximate,
// rather than byte-exactly reproduce, EIP-2537's padded 64/128-byte field
// encoding. Good enough to exercise the dependency and the opcode's gas
// and dispatch shape; not a byte-for-byte consensus implementation.

type bls12G1AddPrecompile struct{}

func (c *bls12G1AddPrecompile) RequiredGas([]byte) uint64 { return params.Bls12381G1AddGas }

func (c *bls12G1AddPrecompile) Run(input []byte) ([]byte, error) {
	if len(input) != 256 {
		return nil, errInvalidInput
	}
	var p0, p1 bls12381.G1Affine
	if _, err := p0.SetBytes(input[16:128]); err != nil {
		return nil, errInvalidInput
	}
	if _, err := p1.SetBytes(input[144:256]); err != nil {
		return nil, errInvalidInput
	}
	var res bls12381.G1Jac
	res.FromAffine(&p0)
	var p1j bls12381.G1Jac
	p1j.FromAffine(&p1)
	res.AddAssign(&p1j)
	var out bls12381.G1Affine
	out.FromJacobian(&res)
	b := out.Bytes()
	return b[:], nil
}

type bls12G1MSMPrecompile struct{}

func (c *bls12G1MSMPrecompile) RequiredGas(input []byte) uint64 {
	n := uint64(len(input) / 160)
	return n * params.Bls12381G1MulGas
}

func (c *bls12G1MSMPrecompile) Run(input []byte) ([]byte, error) {
	if len(input)%160 != 0 || len(input) == 0 {
		return nil, errInvalidInput
	}
	var acc bls12381.G1Jac
	for off := 0; off < len(input); off += 160 {
		var p bls12381.G1Affine
		if _, err := p.SetBytes(input[off+16 : off+128]); err != nil {
			return nil, errInvalidInput
		}
		scalar := new(big.Int).SetBytes(input[off+128 : off+160])
		var pj bls12381.G1Jac
		pj.FromAffine(&p)
		pj.ScalarMultiplication(&pj, scalar)
		acc.AddAssign(&pj)
	}
	var out bls12381.G1Affine
	out.FromJacobian(&acc)
	b := out.Bytes()
	return b[:], nil
}

type bls12G2AddPrecompile struct{}

func (c *bls12G2AddPrecompile) RequiredGas([]byte) uint64 { return params.Bls12381G2AddGas }

func (c *bls12G2AddPrecompile) Run(input []byte) ([]byte, error) {
	if len(input) != 512 {
		return nil, errInvalidInput
	}
	var p0, p1 bls12381.G2Affine
	if _, err := p0.SetBytes(input[32:256]); err != nil {
		return nil, errInvalidInput
	}
	if _, err := p1.SetBytes(input[288:512]); err != nil {
		return nil, errInvalidInput
	}
	var res bls12381.G2Jac
	res.FromAffine(&p0)
	var p1j bls12381.G2Jac
	p1j.FromAffine(&p1)
	res.AddAssign(&p1j)
	var out bls12381.G2Affine
	out.FromJacobian(&res)
	b := out.Bytes()
	return b[:], nil
}

type bls12G2MSMPrecompile struct{}

func (c *bls12G2MSMPrecompile) RequiredGas(input []byte) uint64 {
	n := uint64(len(input) / 288)
	return n * params.Bls12381G2MulGas
}

func (c *bls12G2MSMPrecompile) Run(input []byte) ([]byte, error) {
	if len(input)%288 != 0 || len(input) == 0 {
		return nil, errInvalidInput
	}
	var acc bls12381.G2Jac
	for off := 0; off < len(input); off += 288 {
		var p bls12381.G2Affine
		if _, err := p.SetBytes(input[off+32 : off+256]); err != nil {
			return nil, errInvalidInput
		}
		scalar := new(big.Int).SetBytes(input[off+256 : off+288])
		var pj bls12381.G2Jac
		pj.FromAffine(&p)
		pj.ScalarMultiplication(&pj, scalar)
		acc.AddAssign(&pj)
	}
	var out bls12381.G2Affine
	out.FromJacobian(&acc)
	b := out.Bytes()
	return b[:], nil
}

type bls12PairingPrecompile struct{}

func (c *bls12PairingPrecompile) RequiredGas(input []byte) uint64 {
	n := uint64(len(input) / 384)
	return params.Bls12381PairingBaseGas + n*params.Bls12381PairingPerPairGas
}

func (c *bls12PairingPrecompile) Run(input []byte) ([]byte, error) {
	if len(input)%384 != 0 || len(input) == 0 {
		return nil, errInvalidInput
	}
	var g1s []bls12381.G1Affine
	var g2s []bls12381.G2Affine
	for off := 0; off < len(input); off += 384 {
		var p1 bls12381.G1Affine
		if _, err := p1.SetBytes(input[off+16 : off+128]); err != nil {
			return nil, errInvalidInput
		}
		var p2 bls12381.G2Affine
		if _, err := p2.SetBytes(input[off+160+32 : off+384]); err != nil {
			return nil, errInvalidInput
		}
		g1s = append(g1s, p1)
		g2s = append(g2s, p2)
	}
	ok, err := bls12381.PairingCheck(g1s, g2s)
	if err != nil {
		return nil, errInvalidInput
	}
	out := make([]byte, 32)
	if ok {
		out[31] = 1
	}
	return out, nil
}

type bls12MapFpToG1Precompile struct{}

func (c *bls12MapFpToG1Precompile) RequiredGas([]byte) uint64 { return params.Bls12381MapG1Gas }

func (c *bls12MapFpToG1Precompile) Run(input []byte) ([]byte, error) {
	if len(input) != 64 {
		return nil, errInvalidInput
	}
	var u bls12381.G1Affine
	if _, err := u.X.SetBytesCanonical(input[16:64]); err != nil {
		return nil, errInvalidInput
	}
	out := bls12381.MapToG1(u.X)
	b := out.Bytes()
	return b[:], nil
}

type bls12MapFp2ToG2Precompile struct{}

func (c *bls12MapFp2ToG2Precompile) RequiredGas([]byte) uint64 { return params.Bls12381MapG2Gas }

func (c *bls12MapFp2ToG2Precompile) Run(input []byte) ([]byte, error) {
	if len(input) != 128 {
		return nil, errInvalidInput
	}
	var u bls12381.E2
	if _, err := u.A0.SetBytesCanonical(input[16:64]); err != nil {
		return nil, errInvalidInput
	}
	if _, err := u.A1.SetBytesCanonical(input[80:128]); err != nil {
		return nil, errInvalidInput
	}
	out := bls12381.MapToG2(u)
	b := out.Bytes()
	return b[:], nil
}
