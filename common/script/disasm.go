package script

import (
	"encoding/hex"
)

// RecordType is the kind of a parsed-script record.
type RecordType string

const (
	RecordOpcode RecordType = "opcode"
	RecordData   RecordType = "data"
	RecordError  RecordType = "error"
)

// Record is the display form of one parsed script command.  Opcodes carry
// their symbolic name, data pushes the lowercase hex of the pushed bytes, and
// error records the reason parsing failed.
type Record struct {
	Type  RecordType `json:"type"`
	Value string     `json:"value"`
}

// Disassemble parses scriptHex as a raw command stream with no length prefix
// and returns one record per command.  Any failure is reported as a single
// error record instead of an error value.
func Disassemble(scriptHex string) []Record {
	buf, err := DecodeHex(scriptHex)
	if err != nil {
		return errorRecords(err)
	}
	s, err := ParseBody(buf)
	if err != nil {
		return errorRecords(err)
	}
	return DisassembleScript(s)
}

// DisassembleSerialized is like Disassemble but expects the length-prefixed
// wire form of the script.
func DisassembleSerialized(scriptHex string) []Record {
	buf, err := DecodeHex(scriptHex)
	if err != nil {
		return errorRecords(err)
	}
	s, err := Parse(buf)
	if err != nil {
		return errorRecords(err)
	}
	return DisassembleScript(s)
}

// DisassembleScript returns one record per command of s.
func DisassembleScript(s *Script) []Record {
	records := make([]Record, 0, len(s.cmds))
	for _, cmd := range s.cmds {
		if cmd.kind == CommandOpcode {
			records = append(records, Record{
				Type:  RecordOpcode,
				Value: OpcodeName(cmd.op),
			})
			continue
		}
		records = append(records, Record{
			Type:  RecordData,
			Value: hex.EncodeToString(cmd.data),
		})
	}
	return records
}

func errorRecords(err error) []Record {
	return []Record{{Type: RecordError, Value: err.Error()}}
}
