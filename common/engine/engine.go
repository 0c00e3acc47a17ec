// Copyright (c) 2013-2018 The btcsuite developers
// Copyright (c) 2015-2018 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	"fmt"
	"strings"

	"github.com/ark-network/scriptsim/common/script"
	"github.com/btcsuite/btcd/txscript"
	"github.com/sirupsen/logrus"
)

// Machine is an interactive stack machine.  Items are pushed and popped by
// the caller and opcodes are executed one at a time by name.  Opcodes never
// abort on missing operands: they push a sentinel error item instead so the
// stack can still be inspected and the session continued.
//
// A Machine owns its stack and is not safe for concurrent use.
type Machine struct {
	// verifier checks signatures for OP_CHECKSIG.
	//
	// stepCallback is an optional function that will be called every time
	// an operation has mutated the stack.
	//
	// NOTE: stepCallback is only meant to be used in debugging.
	verifier     Verifier
	stepCallback func(*StepInfo) error

	// dstack is the data stack the various opcodes push and pop data to and
	// from during execution.
	//
	// generation is bumped on every stack mutation and lets a pending
	// signature check detect that the stack moved under it.
	//
	// pending is the outstanding OP_CHECKSIG awaiting its digest, if any.
	// staleID remembers the last one invalidated by a stack mutation.
	//
	// lastOp is the name of the last performed operation.
	dstack     stack
	generation uint64
	pending    *PendingCheckSig
	staleID    string
	lastOp     string
}

// StepInfo houses the machine state passed back to the step callback after
// every operation.
type StepInfo struct {
	// Operation is the name of the operation just performed.
	Operation string

	// Stack is a copy of the machine stack, bottom first.
	Stack []StackItem
}

// Option configures a Machine.
type Option func(*Machine)

// WithVerifier sets the signature verifier used by OP_CHECKSIG.
func WithVerifier(v Verifier) Option {
	return func(m *Machine) {
		m.verifier = v
	}
}

// WithStepCallback sets a function called after every operation.  An error
// returned by the callback is returned by the operation that triggered it,
// except for pushes which cannot fail.
func WithStepCallback(cb func(*StepInfo) error) Option {
	return func(m *Machine) {
		m.stepCallback = cb
	}
}

// NewMachine returns a machine with an empty stack.  Without WithVerifier,
// signatures are checked with DefaultVerifier.
func NewMachine(opts ...Option) *Machine {
	m := &Machine{}
	for _, opt := range opts {
		opt(m)
	}
	if m.verifier == nil {
		m.verifier = DefaultVerifier()
	}
	return m
}

// Push appends a byte sequence to the top of the stack.
func (m *Machine) Push(data []byte) {
	m.PushItem(BytesItem(data))
}

// PushItem appends an arbitrary item to the top of the stack.
func (m *Machine) PushItem(item StackItem) {
	m.dstack.Push(item.Clone())
	m.touch()
	m.lastOp = "push"
	m.step()
}

// Pop removes and returns the top item of the stack.
func (m *Machine) Pop() (StackItem, error) {
	item, err := m.dstack.Pop()
	if err != nil {
		return StackItem{}, err
	}
	m.touch()
	m.lastOp = "pop"
	return item, m.step()
}

// Execute runs the named opcode against the stack.  Names are matched
// case-insensitively and the OP_ prefix is optional.
//
// For OP_CHECKSIG the stack is left untouched and a PendingCheckSig is
// returned; the caller completes the check with ResumeCheckSig once the
// message digest is known.  For every other opcode the returned pending
// check is nil.
func (m *Machine) Execute(name string) (*PendingCheckSig, error) {
	op, ok := lookupOpcode(name)
	if !ok {
		str := fmt.Sprintf("opcode %q is not supported", name)
		return nil, scriptError(ErrUnknownOpcode, str)
	}

	logrus.Tracef("%v", newLogClosure(func() string {
		return fmt.Sprintf("executing %s on stack of depth %d", op.name,
			m.dstack.Depth())
	}))

	pending, err := op.opfunc(op, m)
	if err != nil {
		m.touch()
		return nil, err
	}
	m.lastOp = op.name
	if pending == nil {
		m.touch()
	}
	m.traceStack()

	if err := m.step(); err != nil {
		return pending, err
	}
	return pending, nil
}

// ExecuteScript runs every command of s in order: data pushes go on the
// stack and opcodes are executed by value.  A script reaching OP_CHECKSIG
// fails with ErrDigestRequired; use ExecuteScriptWithDigest instead.
func (m *Machine) ExecuteScript(s *script.Script) error {
	return m.executeScript(s, nil)
}

// ExecuteScriptWithDigest is like ExecuteScript but completes every
// OP_CHECKSIG against digest.
func (m *Machine) ExecuteScriptWithDigest(s *script.Script, digest []byte) error {
	if len(digest) != DigestSize {
		str := fmt.Sprintf("digest must be %d bytes, got %d", DigestSize,
			len(digest))
		return scriptError(ErrInvalidDigest, str)
	}
	return m.executeScript(s, digest)
}

func (m *Machine) executeScript(s *script.Script, digest []byte) error {
	for idx, cmd := range s.Commands() {
		if data, ok := cmd.Data(); ok {
			m.Push(data)
			continue
		}

		opValue, _ := cmd.Opcode()
		op, ok := opcodeByValue[opValue]
		if !ok {
			str := fmt.Sprintf("opcode %s at index %d is not supported",
				script.OpcodeName(opValue), idx)
			return scriptError(ErrUnknownOpcode, str)
		}

		if op.value == txscript.OP_CHECKSIG && digest == nil {
			str := fmt.Sprintf("OP_CHECKSIG at index %d requires a message "+
				"digest", idx)
			return scriptError(ErrDigestRequired, str)
		}

		pending, err := m.Execute(op.name)
		if err != nil {
			return err
		}
		if pending != nil {
			if err := m.ResumeCheckSig(pending, digest); err != nil {
				return err
			}
		}
	}
	return nil
}

// Stack returns a copy of the stack contents, bottom first.
func (m *Machine) Stack() []StackItem {
	return m.dstack.Items()
}

// Depth returns the number of items on the stack.
func (m *Machine) Depth() int {
	return m.dstack.Depth()
}

// LastOperation returns the name of the last performed operation, or an empty
// string if nothing ran yet.
func (m *Machine) LastOperation() string {
	return m.lastOp
}

// Reset empties the stack and drops any pending signature check.
func (m *Machine) Reset() {
	m.dstack.Reset()
	m.pending = nil
	m.staleID = ""
	m.lastOp = ""
	m.generation++
}

// touch records a stack mutation, which invalidates any pending signature
// check.
func (m *Machine) touch() {
	m.generation++
	if m.pending != nil {
		m.staleID = m.pending.ID
		m.pending = nil
	}
}

func (m *Machine) step() error {
	if m.stepCallback == nil {
		return nil
	}
	return m.stepCallback(&StepInfo{
		Operation: m.lastOp,
		Stack:     m.dstack.Items(),
	})
}

func (m *Machine) traceStack() {
	logrus.Tracef("%v", newLogClosure(func() string {
		if m.dstack.Depth() == 0 {
			return m.lastOp + ": stack is empty"
		}
		return m.lastOp + ": Stack:\n" + m.dstack.String()
	}))
}

// normalizeOpcodeName upper-cases name and adds the OP_ prefix if missing.
func normalizeOpcodeName(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	if !strings.HasPrefix(name, "OP_") {
		name = "OP_" + name
	}
	return name
}

// LogClosure is a closure that can be printed with %v to be used to
// generate expensive-to-create data for a detailed log level and avoid doing
// the work if the data isn't printed.
type logClosure func() string

func (c logClosure) String() string {
	return c()
}

func newLogClosure(c func() string) logClosure {
	return logClosure(c)
}
