// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2015-2019 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	"crypto/sha256"
	"hash"

	"github.com/ark-network/scriptsim/common/script"
	"github.com/btcsuite/btcd/txscript"
	"golang.org/x/crypto/ripemd160"
)

// An opcode defines the information related to a supported opcode such as
// its value, its human-readable name, and the handler that executes it.
//
// A handler that needs input from outside the stack returns a pending check
// and leaves the stack untouched; every other handler returns nil.  Missing
// operands are reported on the stack, so a returned error means the stack
// itself is inconsistent.
type opcode struct {
	value  byte
	name   string
	opfunc func(*opcode, *Machine) (*PendingCheckSig, error)
}

// opcodeArray holds details about every opcode the machine implements.
var opcodeArray = []opcode{
	{txscript.OP_DUP, "OP_DUP", opcodeDup},
	{txscript.OP_EQUAL, "OP_EQUAL", opcodeEqual},
	{txscript.OP_ADD, "OP_ADD", opcodeAdd},
	{txscript.OP_HASH160, "OP_HASH160", opcodeHash160},
	{txscript.OP_CHECKSIG, "OP_CHECKSIG", opcodeCheckSig},
}

var (
	opcodeByName  = make(map[string]*opcode, len(opcodeArray))
	opcodeByValue = make(map[byte]*opcode, len(opcodeArray))
)

func init() {
	for i := range opcodeArray {
		op := &opcodeArray[i]
		opcodeByName[op.name] = op
		opcodeByValue[op.value] = op
	}
}

// lookupOpcode finds a supported opcode by its name.
func lookupOpcode(name string) (*opcode, bool) {
	op, ok := opcodeByName[normalizeOpcodeName(name)]
	return op, ok
}

// SupportedOpcodes returns the names of the opcodes the machine implements.
func SupportedOpcodes() []string {
	names := make([]string, 0, len(opcodeArray))
	for _, op := range opcodeArray {
		names = append(names, op.name)
	}
	return names
}

// requireItems pushes the insufficient items sentinel and returns false when
// fewer than n items are on the stack.  The existing items are left in place.
func requireItems(m *Machine, n int) bool {
	if m.dstack.Depth() >= n {
		return true
	}
	m.dstack.Push(ErrorItem(MsgInsufficientItems))
	return false
}

// popPair pops the top two items, returning them as a (second to top) and b
// (top).
func popPair(m *Machine) (StackItem, StackItem, error) {
	b, err := m.dstack.Pop()
	if err != nil {
		return StackItem{}, StackItem{}, err
	}
	a, err := m.dstack.Pop()
	if err != nil {
		return StackItem{}, StackItem{}, err
	}
	return a, b, nil
}

// opcodeDup duplicates the top item on the data stack.
//
// Stack transformation: [... x1 x2] -> [... x1 x2 x2]
func opcodeDup(op *opcode, m *Machine) (*PendingCheckSig, error) {
	if !requireItems(m, 1) {
		return nil, nil
	}
	return nil, m.dstack.DupN(1)
}

// opcodeEqual removes the top two items of the data stack, compares them, and
// pushes the result as a boolean.  Byte sequences compare byte for byte,
// every other pairing compares kind and value.
//
// Stack transformation: [... x1 x2] -> [... bool]
func opcodeEqual(op *opcode, m *Machine) (*PendingCheckSig, error) {
	if !requireItems(m, 2) {
		return nil, nil
	}
	a, b, err := popPair(m)
	if err != nil {
		return nil, err
	}
	m.dstack.Push(BoolItem(a.Equal(b)))
	return nil, nil
}

// opcodeAdd treats the top two items on the data stack as integers, and
// replaces them with their sum.  Booleans count as 1 and 0.
//
// Stack transformation: [... x1 x2] -> [... x1+x2]
func opcodeAdd(op *opcode, m *Machine) (*PendingCheckSig, error) {
	if !requireItems(m, 2) {
		return nil, nil
	}
	a, b, err := popPair(m)
	if err != nil {
		return nil, err
	}

	v0, err := a.Number()
	if err != nil {
		m.dstack.Push(ErrorItem(MsgInvalidAdd))
		return nil, nil
	}
	v1, err := b.Number()
	if err != nil {
		m.dstack.Push(ErrorItem(MsgInvalidAdd))
		return nil, nil
	}

	sum := v0 + v1
	if (v1 > 0 && sum < v0) || (v1 < 0 && sum > v0) {
		m.dstack.Push(ErrorItem(MsgIntegerOverflow))
		return nil, nil
	}

	m.dstack.Push(BytesItem(script.EncodeScriptNum(sum)))
	return nil, nil
}

// calcHash calculates the hash of hasher over buf.
func calcHash(buf []byte, hasher hash.Hash) []byte {
	hasher.Write(buf)
	return hasher.Sum(nil)
}

// opcodeHash160 treats the top item of the data stack as raw bytes and
// replaces it with ripemd160(sha256(data)).
//
// Stack transformation: [... x1] -> [... ripemd160(sha256(x1))]
func opcodeHash160(op *opcode, m *Machine) (*PendingCheckSig, error) {
	if !requireItems(m, 1) {
		return nil, nil
	}
	item, err := m.dstack.Pop()
	if err != nil {
		return nil, err
	}

	data, ok := item.Bytes()
	if !ok {
		m.dstack.Push(ErrorItem(MsgInvalidHash160))
		return nil, nil
	}

	h := sha256.Sum256(data)
	m.dstack.Push(BytesItem(calcHash(h[:], ripemd160.New())))
	return nil, nil
}

// opcodeCheckSig starts a signature check over the public key on top of the
// stack and the signature below it.  The stack is left as is until the
// message digest arrives through ResumeCheckSig.
//
// Stack transformation once resumed: [... signature pubkey] -> [... bool]
func opcodeCheckSig(op *opcode, m *Machine) (*PendingCheckSig, error) {
	if !requireItems(m, 2) {
		return nil, nil
	}
	return m.beginCheckSig(), nil
}
