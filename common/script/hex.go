package script

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// DecodeHex decodes hexadecimal text, case-insensitively.  Surrounding
// whitespace and an optional 0x prefix are ignored.  Odd-length input and
// non-hex characters are rejected before decoding.
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}

	if len(s)%2 != 0 {
		str := fmt.Sprintf("hex string %q has odd length %d", s, len(s))
		return nil, scriptError(ErrInvalidHex, str)
	}
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			str := fmt.Sprintf("hex string %q has invalid character %q at "+
				"index %d", s, s[i], i)
			return nil, scriptError(ErrInvalidHex, str)
		}
	}

	return hex.DecodeString(s)
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') ||
		(c >= 'A' && c <= 'F')
}
