package application

import (
	"fmt"

	"github.com/ark-network/scriptsim/common/engine"
	"github.com/ark-network/scriptsim/common/script"
	log "github.com/sirupsen/logrus"
)

// Test vector loaded by LoadCheckSigExample: an uncompressed public key, a
// DER signature and the digest it signs.
const (
	ExamplePubKey = "04887387e452b8eacc4acfde10d9aaf7f6d9a0f975aabb10d006e4da" +
		"568744d06c61de6d95231cd89026e286df3b6ae4a894a3378e393e93a0f45b66632" +
		"9a0ae34"
	ExampleSignature = "3045022000eff69ef2b1bd93a66ed5219add4fb51e11a840f40487" +
		"6325a1e8ffe0529a2c022100c7207fee197d27c618aea621406f6bf5ef6fca38681d" +
		"82b2f06fddbdce6feab6"
	ExampleDigest = "7c076ff316692a3d7eb3c3bb0f8b1488cf72e1afcd929e29307032997" +
		"a838a3d"
)

type service struct {
	showDecimal bool
	verifier    engine.Verifier
	sessions    *sessionsMap
}

// NewService returns a service holding at most maxSessions machines at once.
// A nil verifier selects the secp256k1 ECDSA one.
func NewService(
	maxSessions int, showDecimal bool, verifier engine.Verifier,
) (Service, error) {
	if maxSessions <= 0 {
		return nil, fmt.Errorf("max sessions must be positive, got %d", maxSessions)
	}
	if verifier == nil {
		verifier = engine.DefaultVerifier()
	}
	return &service{showDecimal, verifier, newSessionsMap(maxSessions)}, nil
}

func (s *service) NewSession() (string, error) {
	sess, err := s.sessions.create(s.verifier)
	if err != nil {
		return "", err
	}
	log.WithFields(log.Fields{
		"session": sess.id,
		"open":    s.sessions.len(),
	}).Debug("session created")
	return sess.id, nil
}

func (s *service) CloseSession(id string) error {
	if err := s.sessions.delete(id); err != nil {
		return err
	}
	log.WithField("session", id).Debug("session closed")
	return nil
}

func (s *service) Sessions() []string {
	return s.sessions.ids()
}

func (s *service) Push(id, dataHex string) (StackView, error) {
	data, err := script.DecodeHex(dataHex)
	if err != nil {
		return StackView{}, fmt.Errorf("invalid push data: %w", err)
	}

	var view StackView
	err = s.withSession(id, func(m *engine.Machine) error {
		m.Push(data)
		view = s.view(m)
		return nil
	})
	return view, err
}

func (s *service) Pop(id string) (ItemView, error) {
	var view ItemView
	err := s.withSession(id, func(m *engine.Machine) error {
		item, err := m.Pop()
		if err != nil {
			return err
		}
		view = itemView(item, false)
		return nil
	})
	return view, err
}

func (s *service) Execute(id, opcode string) (ExecResult, error) {
	var result ExecResult
	err := s.withSession(id, func(m *engine.Machine) error {
		pending, err := m.Execute(opcode)
		if err != nil {
			return err
		}

		result.Stack = s.view(m)
		if pending != nil {
			result.DigestRequired = true
			result.RequestID = pending.ID
			log.WithFields(log.Fields{
				"session": id,
				"request": pending.ID,
			}).Debug("signature check waiting for digest")
		}
		return nil
	})
	return result, err
}

func (s *service) SupplyDigest(id, digestHex string) (StackView, error) {
	digest, err := script.DecodeHex(digestHex)
	if err != nil {
		return StackView{}, fmt.Errorf("invalid digest: %w", err)
	}

	var view StackView
	err = s.withSession(id, func(m *engine.Machine) error {
		if err := m.ResumeCheckSig(m.Pending(), digest); err != nil {
			return err
		}
		view = s.view(m)

		top, _ := view.Top()
		log.WithFields(log.Fields{
			"session": id,
			"result":  top.Value,
		}).Debug("signature check completed")
		return nil
	})
	return view, err
}

func (s *service) Cancel(id string) (StackView, error) {
	var view StackView
	err := s.withSession(id, func(m *engine.Machine) error {
		m.CancelCheckSig()
		view = s.view(m)
		return nil
	})
	return view, err
}

func (s *service) Reset(id string) (StackView, error) {
	var view StackView
	err := s.withSession(id, func(m *engine.Machine) error {
		m.Reset()
		view = s.view(m)
		return nil
	})
	return view, err
}

// LoadCheckSigExample replaces the stack with the example signature and
// public key, then starts OP_CHECKSIG.  The returned result suggests the
// matching digest.
func (s *service) LoadCheckSigExample(id string) (ExecResult, error) {
	sig, err := script.DecodeHex(ExampleSignature)
	if err != nil {
		return ExecResult{}, err
	}
	pubKey, err := script.DecodeHex(ExamplePubKey)
	if err != nil {
		return ExecResult{}, err
	}

	var result ExecResult
	err = s.withSession(id, func(m *engine.Machine) error {
		m.Reset()
		m.Push(sig)
		m.Push(pubKey)

		pending, err := m.Execute("OP_CHECKSIG")
		if err != nil {
			return err
		}
		result = ExecResult{
			DigestRequired:  true,
			RequestID:       pending.ID,
			SuggestedDigest: ExampleDigest,
			Stack:           s.view(m),
		}
		return nil
	})
	return result, err
}

func (s *service) Stack(id string) (StackView, error) {
	var view StackView
	err := s.withSession(id, func(m *engine.Machine) error {
		view = s.view(m)
		return nil
	})
	return view, err
}

func (s *service) Parse(scriptHex string) []script.Record {
	return script.Disassemble(scriptHex)
}

// withSession runs fn holding the lock of the given session.
func (s *service) withSession(id string, fn func(*engine.Machine) error) error {
	sess, err := s.sessions.get(id)
	if err != nil {
		return err
	}

	sess.lock.Lock()
	defer sess.lock.Unlock()

	return fn(sess.machine)
}

func (s *service) view(m *engine.Machine) StackView {
	return stackView(m, s.showDecimal)
}
