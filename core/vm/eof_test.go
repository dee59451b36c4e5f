package vm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/evmforge/execution-core/params"
)

func testShanghaiRules() params.Rules {
	return params.Rules{
		IsHomestead: true, IsEIP150: true, IsEIP155: true, IsEIP158: true,
		IsByzantium: true, IsConstantinople: true, IsPetersburg: true, IsIstanbul: true,
		IsBerlin: true, IsLondon: true, IsShanghai: true,
		IsEIP2929: true, IsEIP2930: true, IsEIP3529: true, IsEIP3541: true,
		IsEIP3651: true, IsEIP3855: true, IsEIP3860: true,
	}
}

func TestHasEOFMagic(t *testing.T) {
	require.True(t, hasEOFMagic([]byte{0xEF, 0x00, 0x01}))
	require.False(t, hasEOFMagic([]byte{0x60, 0x00}))
	require.False(t, hasEOFMagic([]byte{0xEF}))
}

func buildEOFContainer(code, data []byte) []byte {
	out := []byte{eofMagicByte0, eofMagicByte1, eofVersion1}
	out = append(out, eofSectionKindCode, byte(len(code)>>8), byte(len(code)))
	if len(data) > 0 {
		out = append(out, eofSectionKindData, byte(len(data)>>8), byte(len(data)))
	}
	out = append(out, eofSectionKindTerminator)
	out = append(out, code...)
	out = append(out, data...)
	return out
}

func TestParseEOFHeaderRoundTrip(t *testing.T) {
	code := []byte{byte(PUSH1), 0x01, byte(STOP)}
	raw := buildEOFContainer(code, []byte{0xde, 0xad})

	container, err := parseEOFHeader(raw)
	require.NoError(t, err)
	require.Equal(t, byte(eofVersion1), container.version)
	require.Len(t, container.codeSections, 1)
	require.Equal(t, code, container.codeSections[0])
	require.Equal(t, []byte{0xde, 0xad}, container.dataSection)
}

func TestParseEOFHeaderRejectsBadMagicAndVersion(t *testing.T) {
	_, err := parseEOFHeader([]byte{0x60, 0x00})
	require.ErrorIs(t, err, ErrInvalidEOFMagic)

	_, err = parseEOFHeader([]byte{eofMagicByte0, eofMagicByte1, 0x02})
	require.ErrorIs(t, err, ErrInvalidEOFHeader)
}

func TestParseEOFHeaderRejectsTruncatedSection(t *testing.T) {
	raw := []byte{eofMagicByte0, eofMagicByte1, eofVersion1,
		eofSectionKindCode, 0x00, 0x10, // declares 16 bytes of code
		eofSectionKindTerminator,
		0x00, 0x01, // only 2 bytes actually present
	}
	_, err := parseEOFHeader(raw)
	require.ErrorIs(t, err, ErrInvalidEOFHeader)
}

func TestParseEOFHeaderRejectsNoCodeSection(t *testing.T) {
	raw := []byte{eofMagicByte0, eofMagicByte1, eofVersion1, eofSectionKindTerminator}
	_, err := parseEOFHeader(raw)
	require.ErrorIs(t, err, ErrInvalidEOFHeader)
}

func TestValidateEOFCodeSkipsPushImmediates(t *testing.T) {
	jt := newInstructionSet(testShanghaiRules())
	code := []byte{byte(PUSH2), 0xEF, 0x00, byte(STOP)}
	require.NoError(t, validateEOFCode(code, jt))
}

func TestValidateEOFCodeRejectsUndefinedOpcode(t *testing.T) {
	jt := newInstructionSet(testShanghaiRules())
	code := []byte{0x0c} // unassigned opcode in every hardfork
	require.ErrorIs(t, validateEOFCode(code, jt), ErrUndefinedInstruction)
}
