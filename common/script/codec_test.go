package script_test

import (
	"encoding/hex"
	"math"
	"math/big"
	"testing"

	"github.com/ark-network/scriptsim/common/script"
	"github.com/stretchr/testify/require"
)

func TestVarInt(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		for _, f := range fixtures.VarInt.Valid {
			encoded, err := script.EncodeVarInt(f.Value)
			require.NoError(t, err)
			require.Equal(t, f.Hex, hex.EncodeToString(encoded))
			require.Equal(t, len(encoded), script.VarIntSerializeSize(f.Value))

			value, n, err := script.DecodeVarInt(encoded)
			require.NoError(t, err)
			require.Equal(t, f.Value, value)
			require.Equal(t, len(encoded), n)
		}
	})

	t.Run("non canonical", func(t *testing.T) {
		for _, f := range fixtures.VarInt.NonCanonical {
			value, n, err := script.DecodeVarInt(mustDecodeHex(t, f.Hex))
			require.NoError(t, err)
			require.Equal(t, f.Value, value)
			require.Equal(t, f.BytesRead, n)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for _, f := range fixtures.VarInt.Invalid {
			_, _, err := script.DecodeVarInt(mustDecodeHex(t, f.Hex))
			requireErrorCode(t, err, f.ExpectedError)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		values := []uint64{0, 0xfc, 0xfd, 0xfe, 0xff, 0x100, 0xfffe, 0xffff,
			0x10000, 0xfffffffe, 0xffffffff, 0x100000000, math.MaxUint64 - 1,
			math.MaxUint64}
		for shift := uint(0); shift < 64; shift++ {
			values = append(values, 1<<shift, 1<<shift-1, 1<<shift+1)
		}

		for _, v := range values {
			encoded, err := script.EncodeVarInt(v)
			require.NoError(t, err)

			decoded, n, err := script.DecodeVarInt(encoded)
			require.NoError(t, err)
			require.Equal(t, v, decoded)
			require.Equal(t, len(encoded), n)
		}
	})

	t.Run("value too large", func(t *testing.T) {
		twoTo64 := new(big.Int).Lsh(big.NewInt(1), 64)
		_, err := script.EncodeVarIntBig(twoTo64)
		require.True(t, script.IsErrorCode(err, script.ErrValueTooLarge))

		_, err = script.EncodeVarIntBig(big.NewInt(-1))
		require.True(t, script.IsErrorCode(err, script.ErrValueTooLarge))

		maxValue := new(big.Int).Sub(twoTo64, big.NewInt(1))
		encoded, err := script.EncodeVarIntBig(maxValue)
		require.NoError(t, err)
		require.Equal(t, "ffffffffffffffffff", hex.EncodeToString(encoded))
	})
}

func TestScriptNum(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		for _, f := range fixtures.ScriptNum.Valid {
			encoded := script.EncodeScriptNum(f.Value)
			require.Equal(t, f.Hex, hex.EncodeToString(encoded),
				"encoding %d", f.Value)

			decoded, err := script.DecodeScriptNum(encoded)
			require.NoError(t, err)
			require.Equal(t, f.Value, decoded)
		}
	})

	t.Run("non minimal", func(t *testing.T) {
		for _, f := range fixtures.ScriptNum.NonMinimal {
			decoded, err := script.DecodeScriptNum(mustDecodeHex(t, f.Hex))
			require.NoError(t, err)
			require.Equal(t, f.Value, decoded)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for _, f := range fixtures.ScriptNum.Invalid {
			_, err := script.DecodeScriptNum(mustDecodeHex(t, f.Hex))
			requireErrorCode(t, err, f.ExpectedError)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		values := []int64{0, 1, -1, 255, -255, 256, -256, 65535, -65535,
			math.MaxInt64, math.MinInt64, math.MinInt64 + 1}
		for shift := uint(0); shift < 63; shift++ {
			v := int64(1) << shift
			values = append(values, v, -v, v-1, -(v - 1), v+1, -(v + 1))
		}

		for _, v := range values {
			encoded := script.EncodeScriptNum(v)
			decoded, err := script.DecodeScriptNum(encoded)
			require.NoError(t, err)
			require.Equal(t, v, decoded, "value %d encoded as %x", v, encoded)
		}
	})

	t.Run("zero is empty", func(t *testing.T) {
		require.Empty(t, script.EncodeScriptNum(0))
		decoded, err := script.DecodeScriptNum(nil)
		require.NoError(t, err)
		require.Zero(t, decoded)
	})
}

func TestIntegerCodec(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09}

	v16, err := script.ReadUint16LE(buf, 1)
	require.NoError(t, err)
	require.Equal(t, uint16(0x0302), v16)

	v32, err := script.ReadUint32LE(buf, 0)
	require.NoError(t, err)
	require.Equal(t, uint32(0x04030201), v32)

	v64, err := script.ReadUint64LE(buf, 1)
	require.NoError(t, err)
	require.Equal(t, uint64(0x0908070605040302), v64)

	_, err = script.ReadUint64LE(buf, 2)
	require.True(t, script.IsErrorCode(err, script.ErrTruncatedInput))
	_, err = script.ReadUint16LE(buf, -1)
	require.True(t, script.IsErrorCode(err, script.ErrTruncatedInput))

	require.Equal(t, []byte{0xaa, 0x34, 0x12}, script.AppendUint16LE([]byte{0xaa}, 0x1234))
	require.Equal(t, []byte{0x78, 0x56, 0x34, 0x12}, script.AppendUint32LE(nil, 0x12345678))
	require.Equal(t, buf[1:], script.AppendUint64LE(nil, v64))

	le, err := script.IntToLittleEndian(500, 2)
	require.NoError(t, err)
	require.Equal(t, []byte{0xf4, 0x01}, le)

	n, err := script.LittleEndianToInt(le)
	require.NoError(t, err)
	require.Equal(t, uint64(500), n)

	_, err = script.IntToLittleEndian(256, 1)
	require.True(t, script.IsErrorCode(err, script.ErrValueTooLarge))
	_, err = script.LittleEndianToInt(buf)
	require.True(t, script.IsErrorCode(err, script.ErrValueTooLarge))
}

func TestDecodeHex(t *testing.T) {
	tests := []struct {
		input    string
		expected []byte
		valid    bool
	}{
		{input: "", expected: []byte{}, valid: true},
		{input: "0x", expected: []byte{}, valid: true},
		{input: "0xDEADbeef", expected: []byte{0xde, 0xad, 0xbe, 0xef}, valid: true},
		{input: " 76a9 ", expected: []byte{0x76, 0xa9}, valid: true},
		{input: "0X01", expected: []byte{0x01}, valid: true},
		{input: "abc"},
		{input: "0xzz"},
		{input: "12 34"},
	}

	for _, tt := range tests {
		got, err := script.DecodeHex(tt.input)
		if !tt.valid {
			require.True(t, script.IsErrorCode(err, script.ErrInvalidHex),
				"input %q", tt.input)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, tt.expected, got)
	}
}

func TestOpcodeName(t *testing.T) {
	tests := map[byte]string{
		0x00: "OP_0",
		0x4c: "OP_PUSHDATA1",
		0x4f: "OP_1NEGATE",
		0x51: "OP_1",
		0x60: "OP_16",
		0x76: "OP_DUP",
		0x87: "OP_EQUAL",
		0x88: "OP_EQUALVERIFY",
		0x93: "OP_ADD",
		0xa9: "OP_HASH160",
		0xac: "OP_CHECKSIG",
		0xb1: "OP_CHECKLOCKTIMEVERIFY",
		0xba: "OP_CHECKSIGADD",
		0xbb: "OP_UNKNOWN_bb",
		0xf9: "OP_UNKNOWN_f9",
		0xfc: "OP_UNKNOWN_fc",
		0xff: "OP_INVALIDOPCODE",
		0x14: "OP_UNKNOWN_14",
	}
	for op, name := range tests {
		require.Equal(t, name, script.OpcodeName(op))
	}

	require.Equal(t, byte(0xac), script.OpcodeByName["OP_CHECKSIG"])
	require.Equal(t, byte(0x00), script.OpcodeByName["OP_FALSE"])
	require.Equal(t, byte(0x51), script.OpcodeByName["OP_TRUE"])
	require.Equal(t, byte(0xb1), script.OpcodeByName["OP_NOP2"])
	_, ok := script.OpcodeByName["OP_UNKNOWN_bb"]
	require.False(t, ok)
}

func TestDisassemble(t *testing.T) {
	hash := "89abcdefabbaabbaabbaabbaabbaabbaabbaabba"

	records := script.Disassemble("76a914" + hash + "88ac")
	require.Equal(t, []script.Record{
		{Type: script.RecordOpcode, Value: "OP_DUP"},
		{Type: script.RecordOpcode, Value: "OP_HASH160"},
		{Type: script.RecordData, Value: hash},
		{Type: script.RecordOpcode, Value: "OP_EQUALVERIFY"},
		{Type: script.RecordOpcode, Value: "OP_CHECKSIG"},
	}, records)

	records = script.Disassemble("76A914" + hash + "88AC")
	require.Len(t, records, 5)
	require.Equal(t, hash, records[2].Value)

	for _, input := range []string{"zz", "abc", "0302aa", "4c"} {
		records := script.Disassemble(input)
		require.Len(t, records, 1, "input %q", input)
		require.Equal(t, script.RecordError, records[0].Type)
		require.NotEmpty(t, records[0].Value)
	}

	require.Empty(t, script.Disassemble(""))
}
