package engine

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// opCheckSigFailed is recorded as the last operation when the verifier blew
// up instead of answering.
const opCheckSigFailed = "OP_CHECKSIG (failed)"

// PendingCheckSig is handed out by the first phase of OP_CHECKSIG.  It stays
// valid until the stack is mutated, the machine is reset, or the check is
// resumed or cancelled.
type PendingCheckSig struct {
	// ID uniquely identifies the pending check.
	ID string

	generation uint64
}

// Pending returns the outstanding signature check, or nil.
func (m *Machine) Pending() *PendingCheckSig {
	return m.pending
}

// beginCheckSig registers a new pending check bound to the current stack.
// Any previous pending check is replaced.
func (m *Machine) beginCheckSig() *PendingCheckSig {
	m.pending = &PendingCheckSig{
		ID:         uuid.New().String(),
		generation: m.generation,
	}
	logrus.Tracef("OP_CHECKSIG %s waiting for message digest", m.pending.ID)
	return m.pending
}

// ResumeCheckSig completes the signature check identified by token against
// the 32-byte message digest.  The public key and the signature are popped
// and the verification result is pushed as a boolean.
//
// A digest of the wrong size fails with ErrInvalidDigest and keeps the check
// pending so the caller can retry.
func (m *Machine) ResumeCheckSig(token *PendingCheckSig, digest []byte) error {
	if token == nil || m.pending == nil || token.ID != m.pending.ID {
		if token != nil && token.ID == m.staleID {
			str := fmt.Sprintf("stack changed since OP_CHECKSIG %s was "+
				"requested", token.ID)
			return scriptError(ErrStaleCheckSig, str)
		}
		return scriptError(ErrNoPendingCheckSig,
			"no signature check is waiting for a digest")
	}
	if token.generation != m.generation {
		m.touch()
		str := fmt.Sprintf("stack changed since OP_CHECKSIG %s was requested",
			token.ID)
		return scriptError(ErrStaleCheckSig, str)
	}
	if len(digest) != DigestSize {
		str := fmt.Sprintf("digest must be %d bytes, got %d", DigestSize,
			len(digest))
		return scriptError(ErrInvalidDigest, str)
	}

	var msg [DigestSize]byte
	copy(msg[:], digest)

	pubKeyItem, sigItem, err := popPair(m)
	if err != nil {
		m.pending = nil
		m.touch()
		return err
	}

	valid, failed := m.verify(pubKeyItem, sigItem, msg)
	m.dstack.Push(BoolItem(valid))
	m.pending = nil
	m.touch()

	m.lastOp = "OP_CHECKSIG"
	if failed {
		m.lastOp = opCheckSigFailed
	}

	logrus.Tracef("%v", newLogClosure(func() string {
		return fmt.Sprintf("OP_CHECKSIG %s resumed: valid=%v", token.ID, valid)
	}))
	m.traceStack()

	return m.step()
}

// CancelCheckSig drops the outstanding signature check, if any.  The stack is
// left as is.
func (m *Machine) CancelCheckSig() {
	if m.pending == nil {
		return
	}
	logrus.Tracef("OP_CHECKSIG %s cancelled", m.pending.ID)
	m.pending = nil
}

// verify runs the verifier over the two popped items.  Non byte operands do
// not verify.  A panicking verifier yields false with failed set.
func (m *Machine) verify(
	pubKeyItem, sigItem StackItem, digest [DigestSize]byte,
) (valid, failed bool) {
	pubKey, ok := pubKeyItem.Bytes()
	if !ok {
		return false, false
	}
	sig, ok := sigItem.Bytes()
	if !ok {
		return false, false
	}

	defer func() {
		if r := recover(); r != nil {
			logrus.Debugf("signature verifier panicked: %v", r)
			valid, failed = false, true
		}
	}()

	return m.verifier.Verify(pubKey, sig, digest), false
}
