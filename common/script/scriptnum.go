package script

import (
	"fmt"
	"math"
)

// maxScriptNumLen is the longest encoding DecodeScriptNum accepts.  Eight
// magnitude bytes plus one sign byte covers every int64, including
// math.MinInt64 whose magnitude has the top bit set.
const maxScriptNumLen = 9

// EncodeScriptNum encodes n using the minimal sign-magnitude little-endian
// representation used for numeric stack items.  Zero encodes to an empty
// slice.
func EncodeScriptNum(n int64) []byte {
	if n == 0 {
		return []byte{}
	}

	negative := n < 0
	magnitude := uint64(n)
	if negative {
		magnitude = -magnitude
	}

	result := make([]byte, 0, maxScriptNumLen)
	for magnitude > 0 {
		result = append(result, byte(magnitude&0xff))
		magnitude >>= 8
	}

	// When the most significant byte already has the sign bit set, an extra
	// byte is needed to carry the sign.  Otherwise the sign bit is folded
	// into the most significant byte.
	if result[len(result)-1]&0x80 != 0 {
		extraByte := byte(0x00)
		if negative {
			extraByte = 0x80
		}
		result = append(result, extraByte)
	} else if negative {
		result[len(result)-1] |= 0x80
	}

	return result
}

// DecodeScriptNum interprets b as a sign-magnitude little-endian number.  An
// empty slice decodes to zero.  Non-minimal encodings are accepted as long as
// the value fits in an int64.
func DecodeScriptNum(b []byte) (int64, error) {
	if len(b) == 0 {
		return 0, nil
	}
	if len(b) > maxScriptNumLen {
		str := fmt.Sprintf("script number of %d bytes exceeds max length %d",
			len(b), maxScriptNumLen)
		return 0, scriptError(ErrNumberOverflow, str)
	}

	// Walk the bytes in big-endian order.  The sign lives in the top bit of
	// the most significant byte.
	msb := b[len(b)-1]
	negative := msb&0x80 != 0
	magnitude := uint64(msb & 0x7f)
	for i := len(b) - 2; i >= 0; i-- {
		if magnitude>>56 != 0 {
			str := fmt.Sprintf("script number 0x%x overflows 64 bits", b)
			return 0, scriptError(ErrNumberOverflow, str)
		}
		magnitude = magnitude<<8 | uint64(b[i])
	}

	if negative {
		if magnitude > 1<<63 {
			str := fmt.Sprintf("script number 0x%x underflows int64", b)
			return 0, scriptError(ErrNumberOverflow, str)
		}
		return -int64(magnitude), nil
	}

	if magnitude > math.MaxInt64 {
		str := fmt.Sprintf("script number 0x%x overflows int64", b)
		return 0, scriptError(ErrNumberOverflow, str)
	}
	return int64(magnitude), nil
}
