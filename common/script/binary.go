package script

import (
	"encoding/binary"
	"fmt"
)

// ReadUint16LE reads a little-endian uint16 starting at offset.
func ReadUint16LE(buf []byte, offset int) (uint16, error) {
	if err := checkAvailable(buf, offset, 2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[offset:]), nil
}

// ReadUint32LE reads a little-endian uint32 starting at offset.
func ReadUint32LE(buf []byte, offset int) (uint32, error) {
	if err := checkAvailable(buf, offset, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[offset:]), nil
}

// ReadUint64LE reads a little-endian uint64 starting at offset.
func ReadUint64LE(buf []byte, offset int) (uint64, error) {
	if err := checkAvailable(buf, offset, 8); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[offset:]), nil
}

// AppendUint16LE appends the little-endian encoding of v to dst.
func AppendUint16LE(dst []byte, v uint16) []byte {
	return binary.LittleEndian.AppendUint16(dst, v)
}

// AppendUint32LE appends the little-endian encoding of v to dst.
func AppendUint32LE(dst []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(dst, v)
}

// AppendUint64LE appends the little-endian encoding of v to dst.
func AppendUint64LE(dst []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(dst, v)
}

// LittleEndianToInt interprets b, at most 8 bytes long, as an unsigned
// little-endian integer.  An empty slice is zero.
func LittleEndianToInt(b []byte) (uint64, error) {
	if len(b) > 8 {
		str := fmt.Sprintf("little-endian integer of %d bytes exceeds 8 "+
			"bytes", len(b))
		return 0, scriptError(ErrValueTooLarge, str)
	}

	var v uint64
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v, nil
}

// IntToLittleEndian encodes n as a little-endian integer of exactly width
// bytes.  It fails if n does not fit in width bytes.
func IntToLittleEndian(n uint64, width int) ([]byte, error) {
	if width < 1 || width > 8 {
		str := fmt.Sprintf("invalid integer width %d", width)
		return nil, scriptError(ErrValueTooLarge, str)
	}
	if width < 8 && n>>(8*uint(width)) != 0 {
		str := fmt.Sprintf("value %d does not fit in %d bytes", n, width)
		return nil, scriptError(ErrValueTooLarge, str)
	}

	out := make([]byte, width)
	for i := range out {
		out[i] = byte(n >> (8 * uint(i)))
	}
	return out, nil
}

func checkAvailable(buf []byte, offset, size int) error {
	if offset < 0 || len(buf)-offset < size {
		str := fmt.Sprintf("reading %d bytes at offset %d exceeds buffer "+
			"of %d bytes", size, offset, len(buf))
		return scriptError(ErrTruncatedInput, str)
	}
	return nil
}
