package engine_test

import (
	"testing"

	"github.com/ark-network/scriptsim/common/engine"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/stretchr/testify/require"
)

type panicVerifier struct{}

func (panicVerifier) Verify(_, _ []byte, _ [engine.DigestSize]byte) bool {
	panic("verifier exploded")
}

type recordingVerifier struct {
	pubKey, sig []byte
	digest      [engine.DigestSize]byte
}

func (v *recordingVerifier) Verify(
	pubKey, sig []byte, digest [engine.DigestSize]byte,
) bool {
	v.pubKey, v.sig, v.digest = pubKey, sig, digest
	return true
}

func toDigest(t *testing.T, b []byte) [engine.DigestSize]byte {
	t.Helper()
	require.Len(t, b, engine.DigestSize)
	var d [engine.DigestSize]byte
	copy(d[:], b)
	return d
}

func TestVerifier(t *testing.T) {
	verifier := engine.DefaultVerifier()

	t.Run("valid", func(t *testing.T) {
		for _, f := range fixtures.CheckSig.Valid {
			ok := verifier.Verify(
				mustDecodeHex(t, f.PubKey), mustDecodeHex(t, f.Sig),
				toDigest(t, mustDecodeHex(t, f.Digest)),
			)
			require.True(t, ok, f.Name)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for _, f := range fixtures.CheckSig.Invalid {
			ok := verifier.Verify(
				mustDecodeHex(t, f.PubKey), mustDecodeHex(t, f.Sig),
				toDigest(t, mustDecodeHex(t, f.Digest)),
			)
			require.False(t, ok, f.Name)
		}
	})

	t.Run("flipped signature bytes", func(t *testing.T) {
		f := fixtures.CheckSig.Valid[0]
		pubKey := mustDecodeHex(t, f.PubKey)
		sig := mustDecodeHex(t, f.Sig)
		digest := toDigest(t, mustDecodeHex(t, f.Digest))

		for i := range sig {
			flipped := make([]byte, len(sig))
			copy(flipped, sig)
			flipped[i] ^= 0x01
			require.False(t, verifier.Verify(pubKey, flipped, digest),
				"flipped byte %d", i)
		}
	})

	t.Run("generated key", func(t *testing.T) {
		privKey, err := secp256k1.GeneratePrivateKey()
		require.NoError(t, err)

		digest := engine.DigestFromMessage([]byte("scriptsim"))
		sig := secpecdsa.Sign(privKey, digest[:]).Serialize()

		pubKey := privKey.PubKey()
		require.True(t, verifier.Verify(pubKey.SerializeCompressed(), sig, digest))
		require.True(t, verifier.Verify(pubKey.SerializeUncompressed(), sig, digest))

		other := engine.DigestFromMessage([]byte("scriptsim!"))
		require.False(t, verifier.Verify(pubKey.SerializeCompressed(), sig, other))
	})

	t.Run("no curve", func(t *testing.T) {
		f := fixtures.CheckSig.Valid[0]
		pubKey := mustDecodeHex(t, f.PubKey)
		sig := mustDecodeHex(t, f.Sig)
		digest := toDigest(t, mustDecodeHex(t, f.Digest))

		require.False(t, engine.NewECDSAVerifier(nil).Verify(pubKey, sig, digest))

		var nilVerifier *engine.ECDSAVerifier
		require.False(t, nilVerifier.Verify(pubKey, sig, digest))
	})

	t.Run("explicit curve", func(t *testing.T) {
		f := fixtures.CheckSig.Valid[0]
		pubKey := mustDecodeHex(t, f.PubKey)
		sig := mustDecodeHex(t, f.Sig)
		digest := toDigest(t, mustDecodeHex(t, f.Digest))

		v := engine.NewECDSAVerifier(btcec.S256())
		require.True(t, v.Verify(pubKey, sig, digest))

		// Uncompressed point (1, 1) is not on secp256k1.
		offCurve := make([]byte, 65)
		offCurve[0] = 0x04
		offCurve[32] = 0x01
		offCurve[64] = 0x01
		require.False(t, v.Verify(offCurve, sig, digest))
	})
}

func TestDigestFromMessage(t *testing.T) {
	msg := []byte("hello")
	digest := engine.DigestFromMessage(msg)
	require.Equal(t, chainhash.DoubleHashB(msg), digest[:])
}

func TestCheckSig(t *testing.T) {
	vector := fixtures.CheckSig.Valid[0]
	pubKey := mustDecodeHex(t, vector.PubKey)
	sig := mustDecodeHex(t, vector.Sig)
	digest := mustDecodeHex(t, vector.Digest)

	newMachine := func(opts ...engine.Option) *engine.Machine {
		m := engine.NewMachine(opts...)
		m.Push(sig)
		m.Push(pubKey)
		return m
	}

	t.Run("valid", func(t *testing.T) {
		m := newMachine()

		pending, err := m.Execute("OP_CHECKSIG")
		require.NoError(t, err)
		require.NotNil(t, pending)
		require.NotEmpty(t, pending.ID)
		require.Equal(t, pending, m.Pending())
		require.Equal(t, 2, m.Depth())
		requireTop(t, m, engine.BytesItem(pubKey))

		require.NoError(t, m.ResumeCheckSig(pending, digest))
		require.Equal(t, 1, m.Depth())
		requireTop(t, m, engine.BoolItem(true))
		require.Equal(t, "OP_CHECKSIG", m.LastOperation())
		require.Nil(t, m.Pending())

		err = m.ResumeCheckSig(pending, digest)
		requireErrorCode(t, err, engine.ErrNoPendingCheckSig)
	})

	t.Run("wrong digest", func(t *testing.T) {
		m := newMachine()
		pending, err := m.Execute("checksig")
		require.NoError(t, err)

		require.NoError(t, m.ResumeCheckSig(pending, make([]byte, engine.DigestSize)))
		require.Equal(t, 1, m.Depth())
		requireTop(t, m, engine.BoolItem(false))
		require.Equal(t, "OP_CHECKSIG", m.LastOperation())
	})

	t.Run("invalid digest size", func(t *testing.T) {
		m := newMachine()
		pending, err := m.Execute("OP_CHECKSIG")
		require.NoError(t, err)

		long := append(append([]byte{}, digest...), 0x00)
		for _, d := range [][]byte{nil, digest[:31], long} {
			err = m.ResumeCheckSig(pending, d)
			requireErrorCode(t, err, engine.ErrInvalidDigest)
			require.Equal(t, pending, m.Pending())
			require.Equal(t, 2, m.Depth())
		}

		require.NoError(t, m.ResumeCheckSig(pending, digest))
		requireTop(t, m, engine.BoolItem(true))
	})

	t.Run("stale", func(t *testing.T) {
		mutations := map[string]func(t *testing.T, m *engine.Machine){
			"push": func(_ *testing.T, m *engine.Machine) {
				m.Push([]byte{0x01})
			},
			"pop": func(t *testing.T, m *engine.Machine) {
				_, err := m.Pop()
				require.NoError(t, err)
			},
			"opcode": func(t *testing.T, m *engine.Machine) {
				_, err := m.Execute("OP_DUP")
				require.NoError(t, err)
			},
		}

		for name, mutate := range mutations {
			t.Run(name, func(t *testing.T) {
				m := newMachine()
				pending, err := m.Execute("OP_CHECKSIG")
				require.NoError(t, err)

				mutate(t, m)
				require.Nil(t, m.Pending())

				depth := m.Depth()
				err = m.ResumeCheckSig(pending, digest)
				requireErrorCode(t, err, engine.ErrStaleCheckSig)
				require.Equal(t, depth, m.Depth())
			})
		}
	})

	t.Run("replaced token", func(t *testing.T) {
		m := newMachine()
		first, err := m.Execute("OP_CHECKSIG")
		require.NoError(t, err)
		second, err := m.Execute("OP_CHECKSIG")
		require.NoError(t, err)
		require.NotEqual(t, first.ID, second.ID)

		err = m.ResumeCheckSig(first, digest)
		requireErrorCode(t, err, engine.ErrNoPendingCheckSig)

		require.NoError(t, m.ResumeCheckSig(second, digest))
		requireTop(t, m, engine.BoolItem(true))
	})

	t.Run("cancel", func(t *testing.T) {
		m := newMachine()
		pending, err := m.Execute("OP_CHECKSIG")
		require.NoError(t, err)

		m.CancelCheckSig()
		require.Nil(t, m.Pending())
		require.Equal(t, 2, m.Depth())

		err = m.ResumeCheckSig(pending, digest)
		requireErrorCode(t, err, engine.ErrNoPendingCheckSig)

		err = m.ResumeCheckSig(nil, digest)
		requireErrorCode(t, err, engine.ErrNoPendingCheckSig)
	})

	t.Run("insufficient items", func(t *testing.T) {
		m := engine.NewMachine()
		m.Push(pubKey)
		pending, err := m.Execute("OP_CHECKSIG")
		require.NoError(t, err)
		require.Nil(t, pending)
		require.Nil(t, m.Pending())
		require.Equal(t, 2, m.Depth())
		requireTop(t, m, engine.ErrorItem(engine.MsgInsufficientItems))
	})

	t.Run("operand order", func(t *testing.T) {
		verifier := &recordingVerifier{}
		m := newMachine(engine.WithVerifier(verifier))
		pending, err := m.Execute("OP_CHECKSIG")
		require.NoError(t, err)
		require.NoError(t, m.ResumeCheckSig(pending, digest))

		require.Equal(t, pubKey, verifier.pubKey)
		require.Equal(t, sig, verifier.sig)
		require.Equal(t, digest, verifier.digest[:])
	})

	t.Run("non byte operands", func(t *testing.T) {
		m := engine.NewMachine(engine.WithVerifier(&recordingVerifier{}))
		m.Push(sig)
		m.PushItem(engine.BoolItem(true))
		pending, err := m.Execute("OP_CHECKSIG")
		require.NoError(t, err)
		require.NoError(t, m.ResumeCheckSig(pending, digest))
		require.Equal(t, 1, m.Depth())
		requireTop(t, m, engine.BoolItem(false))
	})

	t.Run("verifier panic", func(t *testing.T) {
		m := newMachine(engine.WithVerifier(panicVerifier{}))
		pending, err := m.Execute("OP_CHECKSIG")
		require.NoError(t, err)

		require.NotPanics(t, func() {
			err = m.ResumeCheckSig(pending, digest)
		})
		require.NoError(t, err)
		require.Equal(t, 1, m.Depth())
		requireTop(t, m, engine.BoolItem(false))
		require.Equal(t, "OP_CHECKSIG (failed)", m.LastOperation())
	})
}
