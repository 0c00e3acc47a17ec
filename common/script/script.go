package script

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/txscript"
)

// CommandKind distinguishes the two kinds of script commands.
type CommandKind uint8

const (
	// CommandOpcode is a bare opcode with no associated data.
	CommandOpcode CommandKind = iota

	// CommandPushData is a data push.
	CommandPushData
)

// String returns the CommandKind as a human-readable name.
func (k CommandKind) String() string {
	switch k {
	case CommandOpcode:
		return "opcode"
	case CommandPushData:
		return "data"
	default:
		return fmt.Sprintf("CommandKind(%d)", uint8(k))
	}
}

// Command is one element of a parsed script: either a bare opcode or a data
// push.  Commands are immutable once constructed.
type Command struct {
	kind CommandKind
	op   byte
	data []byte
}

// NewOpcode returns a bare opcode command.
func NewOpcode(op byte) Command {
	return Command{kind: CommandOpcode, op: op}
}

// NewPushData returns a data push command holding a copy of data.
func NewPushData(data []byte) (Command, error) {
	if len(data) > MaxScriptElementSize {
		str := fmt.Sprintf("push of %d bytes exceeds max allowed size %d",
			len(data), MaxScriptElementSize)
		return Command{}, scriptError(ErrPushTooLarge, str)
	}
	return Command{kind: CommandPushData, data: cloneBytes(data)}, nil
}

// Kind returns whether the command is an opcode or a data push.
func (c Command) Kind() CommandKind {
	return c.kind
}

// IsOpcode returns whether the command is a bare opcode.
func (c Command) IsOpcode() bool {
	return c.kind == CommandOpcode
}

// Opcode returns the opcode byte and true for opcode commands.
func (c Command) Opcode() (byte, bool) {
	return c.op, c.kind == CommandOpcode
}

// Data returns a copy of the pushed bytes and true for data push commands.
func (c Command) Data() ([]byte, bool) {
	if c.kind != CommandPushData {
		return nil, false
	}
	return cloneBytes(c.data), true
}

// Equal returns whether both commands are of the same kind and carry the
// same opcode or data.
func (c Command) Equal(other Command) bool {
	if c.kind != other.kind {
		return false
	}
	if c.kind == CommandOpcode {
		return c.op == other.op
	}
	return bytes.Equal(c.data, other.data)
}

// String returns the opcode name or the hex of the pushed data.
func (c Command) String() string {
	if c.kind == CommandOpcode {
		return OpcodeName(c.op)
	}
	return hex.EncodeToString(c.data)
}

// Script is an ordered sequence of commands.
type Script struct {
	cmds []Command
}

// NewScript returns a script made of the given commands, in order.
func NewScript(cmds ...Command) *Script {
	s := &Script{cmds: make([]Command, len(cmds))}
	copy(s.cmds, cmds)
	return s
}

// Commands returns a copy of the script commands.
func (s *Script) Commands() []Command {
	cmds := make([]Command, len(s.cmds))
	copy(cmds, s.cmds)
	return cmds
}

// Len returns the number of commands in the script.
func (s *Script) Len() int {
	return len(s.cmds)
}

// Equal returns whether both scripts hold the same commands in the same order.
func (s *Script) Equal(other *Script) bool {
	if s == nil || other == nil {
		return s == other
	}
	if len(s.cmds) != len(other.cmds) {
		return false
	}
	for i := range s.cmds {
		if !s.cmds[i].Equal(other.cmds[i]) {
			return false
		}
	}
	return true
}

// String returns a one-line disassembly of the script.
func (s *Script) String() string {
	parts := make([]string, 0, len(s.cmds))
	for _, cmd := range s.cmds {
		parts = append(parts, cmd.String())
	}
	return strings.Join(parts, " ")
}

// SerializeBody returns the raw command stream of the script, without the
// length prefix.  Data pushes use the smallest push form able to carry them.
func (s *Script) SerializeBody() ([]byte, error) {
	var buf bytes.Buffer
	for _, cmd := range s.cmds {
		if cmd.kind == CommandOpcode {
			buf.WriteByte(cmd.op)
			continue
		}

		dataLen := len(cmd.data)
		switch {
		case dataLen <= MaxDirectPushLen:
			buf.WriteByte(byte(dataLen))

		case dataLen <= MaxPushData1Len:
			buf.WriteByte(txscript.OP_PUSHDATA1)
			buf.WriteByte(byte(dataLen))

		case dataLen <= MaxScriptElementSize:
			buf.WriteByte(txscript.OP_PUSHDATA2)
			buf.Write(AppendUint16LE(nil, uint16(dataLen)))

		default:
			str := fmt.Sprintf("push of %d bytes exceeds max allowed size "+
				"%d", dataLen, MaxScriptElementSize)
			return nil, scriptError(ErrPushTooLarge, str)
		}
		buf.Write(cmd.data)
	}
	return buf.Bytes(), nil
}

// Serialize returns the wire form of the script: a varint holding the body
// length followed by the body.
func (s *Script) Serialize() ([]byte, error) {
	body, err := s.SerializeBody()
	if err != nil {
		return nil, err
	}
	prefix, err := EncodeVarInt(uint64(len(body)))
	if err != nil {
		return nil, err
	}
	return append(prefix, body...), nil
}

// Parse decodes a length-prefixed script from the start of buf.  Bytes after
// the declared body are ignored.
func Parse(buf []byte) (*Script, error) {
	s, _, err := ReadScript(buf)
	return s, err
}

// ReadScript decodes a length-prefixed script from the start of buf and
// returns it along with the total number of bytes read.
func ReadScript(buf []byte) (*Script, int, error) {
	declaredLen, n, err := DecodeVarInt(buf)
	if err != nil {
		return nil, 0, err
	}

	cmds, consumed, err := parseCommands(buf[n:], declaredLen)
	if err != nil {
		return nil, 0, err
	}
	if consumed != declaredLen {
		str := fmt.Sprintf("parsing script failed: consumed %d bytes, "+
			"declared %d", consumed, declaredLen)
		return nil, 0, scriptError(ErrScriptParse, str)
	}

	return &Script{cmds: cmds}, n + int(consumed), nil
}

// ParseBody decodes a raw command stream with no length prefix.  The whole
// buffer must be consumed by the commands.
func ParseBody(buf []byte) (*Script, error) {
	cmds, _, err := parseCommands(buf, uint64(len(buf)))
	if err != nil {
		return nil, err
	}
	return &Script{cmds: cmds}, nil
}

// parseCommands walks the command grammar over buf until declaredLen bytes
// have been consumed.  It fails when a command extends past the buffer or
// past the declared length.
func parseCommands(buf []byte, declaredLen uint64) ([]Command, uint64, error) {
	var (
		cmds     []Command
		offset   int
		consumed uint64
	)
	for consumed < declaredLen {
		if offset >= len(buf) {
			str := fmt.Sprintf("parsing script failed: buffer ended after "+
				"%d of %d declared bytes", consumed, declaredLen)
			return nil, 0, scriptError(ErrScriptParse, str)
		}

		opcode := buf[offset]
		offset++
		consumed++

		var dataLen int
		switch {
		case opcode >= txscript.OP_DATA_1 && opcode <= txscript.OP_DATA_75:
			dataLen = int(opcode)

		case opcode == txscript.OP_PUSHDATA1:
			if offset >= len(buf) {
				return nil, 0, truncatedPush(opcode, offset)
			}
			dataLen = int(buf[offset])
			offset++
			consumed++

		case opcode == txscript.OP_PUSHDATA2:
			v, err := ReadUint16LE(buf, offset)
			if err != nil {
				return nil, 0, truncatedPush(opcode, offset)
			}
			dataLen = int(v)
			offset += 2
			consumed += 2

		default:
			cmds = append(cmds, NewOpcode(opcode))
			continue
		}

		if len(buf)-offset < dataLen {
			str := fmt.Sprintf("parsing script failed: push of %d bytes "+
				"at offset %d exceeds buffer of %d bytes", dataLen, offset,
				len(buf))
			return nil, 0, scriptError(ErrScriptParse, str)
		}
		if dataLen > MaxScriptElementSize {
			str := fmt.Sprintf("parsing script failed: push of %d bytes "+
				"exceeds max allowed size %d", dataLen,
				MaxScriptElementSize)
			return nil, 0, scriptError(ErrScriptParse, str)
		}
		cmds = append(cmds, Command{
			kind: CommandPushData,
			data: cloneBytes(buf[offset : offset+dataLen]),
		})
		offset += dataLen
		consumed += uint64(dataLen)
	}

	if consumed != declaredLen {
		str := fmt.Sprintf("parsing script failed: consumed %d bytes, "+
			"declared %d", consumed, declaredLen)
		return nil, 0, scriptError(ErrScriptParse, str)
	}
	return cmds, consumed, nil
}

func truncatedPush(opcode byte, offset int) error {
	str := fmt.Sprintf("parsing script failed: %s at offset %d is missing "+
		"its length", OpcodeName(opcode), offset-1)
	return scriptError(ErrScriptParse, str)
}

func cloneBytes(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
