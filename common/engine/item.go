package engine

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ark-network/scriptsim/common/script"
)

// ItemKind distinguishes the variants of a StackItem.
type ItemKind uint8

const (
	// ItemBytes is a raw byte sequence, possibly empty.  Numbers live on
	// the stack in this form.
	ItemBytes ItemKind = iota

	// ItemBool is a boolean produced by a comparison or signature check.
	ItemBool

	// ItemError is a sentinel pushed instead of a result when an opcode
	// cannot run, so the stack stays inspectable.
	ItemError
)

// String returns the ItemKind as a human-readable name.
func (k ItemKind) String() string {
	switch k {
	case ItemBytes:
		return "bytes"
	case ItemBool:
		return "bool"
	case ItemError:
		return "error"
	default:
		return fmt.Sprintf("ItemKind(%d)", uint8(k))
	}
}

// Sentinel messages carried by error items.
const (
	MsgInsufficientItems = "Insufficient items"
	MsgInvalidHash160    = "Invalid input for OP_HASH160"
	MsgInvalidAdd        = "Invalid input for OP_ADD"
	MsgIntegerOverflow   = "Integer overflow"
)

// StackItem is a value on the execution stack.  The zero value is an empty
// byte sequence.
type StackItem struct {
	kind ItemKind
	data []byte
	b    bool
	msg  string
}

// BytesItem returns a byte sequence item holding a copy of data.
func BytesItem(data []byte) StackItem {
	c := make([]byte, len(data))
	copy(c, data)
	return StackItem{kind: ItemBytes, data: c}
}

// BoolItem returns a boolean item.
func BoolItem(v bool) StackItem {
	return StackItem{kind: ItemBool, b: v}
}

// ErrorItem returns a sentinel error item carrying msg.
func ErrorItem(msg string) StackItem {
	return StackItem{kind: ItemError, msg: msg}
}

// Kind returns the variant of the item.
func (i StackItem) Kind() ItemKind {
	return i.kind
}

// Bytes returns a copy of the byte sequence and true for byte items.
func (i StackItem) Bytes() ([]byte, bool) {
	if i.kind != ItemBytes {
		return nil, false
	}
	c := make([]byte, len(i.data))
	copy(c, i.data)
	return c, true
}

// Bool returns the boolean value and true for boolean items.
func (i StackItem) Bool() (bool, bool) {
	return i.b, i.kind == ItemBool
}

// IsError returns whether the item is a sentinel error.
func (i StackItem) IsError() bool {
	return i.kind == ItemError
}

// ErrorMessage returns the sentinel message of an error item, or an empty
// string for other kinds.
func (i StackItem) ErrorMessage() string {
	if i.kind != ItemError {
		return ""
	}
	return i.msg
}

// Equal returns whether both items have the same kind and value.
func (i StackItem) Equal(other StackItem) bool {
	if i.kind != other.kind {
		return false
	}
	switch i.kind {
	case ItemBytes:
		return bytes.Equal(i.data, other.data)
	case ItemBool:
		return i.b == other.b
	default:
		return i.msg == other.msg
	}
}

// Clone returns a deep copy of the item.
func (i StackItem) Clone() StackItem {
	if i.kind == ItemBytes {
		return BytesItem(i.data)
	}
	return i
}

// Number interprets the item as a script number.  Booleans coerce to 1 and
// 0.  Error items and undecodable byte sequences fail.
func (i StackItem) Number() (int64, error) {
	switch i.kind {
	case ItemBytes:
		return script.DecodeScriptNum(i.data)
	case ItemBool:
		if i.b {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("error item %q is not a number", i.msg)
	}
}

// String returns 0x<hex> for byte items, true or false for booleans, and
// "Error: <message>" for sentinels.
func (i StackItem) String() string {
	switch i.kind {
	case ItemBool:
		if i.b {
			return "true"
		}
		return "false"
	case ItemError:
		return "Error: " + i.msg
	default:
		return "0x" + hex.EncodeToString(i.data)
	}
}

// formatItems renders items bottom to top, one per line, for trace logs.
func formatItems(items []StackItem) string {
	var buf strings.Builder
	for idx, item := range items {
		buf.WriteString(fmt.Sprintf("%04d: %v\n", idx, item))
	}
	return buf.String()
}
