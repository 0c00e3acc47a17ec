package engine

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// DigestSize is the size of the message digest a signature is checked
// against.
const DigestSize = chainhash.HashSize

// Verifier checks a signature over a message digest against a public key.
// Implementations must never panic on malformed input and must return false
// for anything that does not verify.
type Verifier interface {
	Verify(pubKey, sig []byte, digest [DigestSize]byte) bool
}

// ECDSAVerifier verifies DER-encoded ECDSA signatures against serialized
// secp256k1 public keys.  A verifier created without curve parameters
// rejects every signature.  It holds no mutable state and is safe for
// concurrent use.
type ECDSAVerifier struct {
	curve *btcec.KoblitzCurve
}

// NewECDSAVerifier returns a verifier bound to the given curve parameters.
// Point validation is done by btcec.ParsePubKey, so curve only gates whether
// the verifier accepts anything at all.
func NewECDSAVerifier(curve *btcec.KoblitzCurve) *ECDSAVerifier {
	return &ECDSAVerifier{curve: curve}
}

// DefaultVerifier returns a verifier bound to secp256k1.
func DefaultVerifier() *ECDSAVerifier {
	return NewECDSAVerifier(btcec.S256())
}

// Verify parses pubKey as a compressed, uncompressed or hybrid secp256k1
// point and sig as a strict DER signature, then checks sig over digest.  The
// digest is used as is, without further hashing.  Any parse failure yields
// false.
func (v *ECDSAVerifier) Verify(
	pubKey, sig []byte, digest [DigestSize]byte,
) bool {
	if v == nil || v.curve == nil {
		return false
	}

	key, err := btcec.ParsePubKey(pubKey)
	if err != nil {
		return false
	}

	signature, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false
	}

	return signature.Verify(digest[:], key)
}

// DigestFromMessage returns the double SHA-256 of msg, the digest form used
// by legacy Bitcoin signature hashes.
func DigestFromMessage(msg []byte) [DigestSize]byte {
	return chainhash.DoubleHashH(msg)
}
