package script

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/wire"
)

const (
	varIntMarker16 = 0xfd
	varIntMarker32 = 0xfe
	varIntMarker64 = 0xff
)

var maxVarInt = new(big.Int).Lsh(big.NewInt(1), 64)

// DecodeVarInt reads a compact-size integer from the start of buf and returns
// it along with the number of bytes consumed.  Non-minimal encodings are
// accepted.
func DecodeVarInt(buf []byte) (uint64, int, error) {
	if len(buf) == 0 {
		return 0, 0, scriptError(ErrTruncatedInput,
			"cannot read varint from empty buffer")
	}

	switch discriminant := buf[0]; discriminant {
	case varIntMarker16:
		v, err := ReadUint16LE(buf, 1)
		if err != nil {
			return 0, 0, err
		}
		return uint64(v), 3, nil

	case varIntMarker32:
		v, err := ReadUint32LE(buf, 1)
		if err != nil {
			return 0, 0, err
		}
		return uint64(v), 5, nil

	case varIntMarker64:
		v, err := ReadUint64LE(buf, 1)
		if err != nil {
			return 0, 0, err
		}
		return v, 9, nil

	default:
		return uint64(discriminant), 1, nil
	}
}

// EncodeVarInt returns the minimal compact-size encoding of v.
func EncodeVarInt(v uint64) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(wire.VarIntSerializeSize(v))
	if err := wire.WriteVarInt(&buf, 0, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeVarIntBig encodes an arbitrary precision integer as a compact-size
// integer.  Values outside [0, 2^64) fail with ErrValueTooLarge.
func EncodeVarIntBig(v *big.Int) ([]byte, error) {
	if v == nil || v.Sign() < 0 || v.Cmp(maxVarInt) >= 0 {
		str := fmt.Sprintf("integer too large: %v", v)
		return nil, scriptError(ErrValueTooLarge, str)
	}
	return EncodeVarInt(v.Uint64())
}

// VarIntSerializeSize returns the number of bytes it would take to encode v.
func VarIntSerializeSize(v uint64) int {
	return wire.VarIntSerializeSize(v)
}
