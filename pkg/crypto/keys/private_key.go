// Package keys implements Neo N3 key material: secp256r1 (and optional
// secp256k1) private/public keys, WIF and NEP-2 encoding, and RFC6979
// deterministic signing.
package keys

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/nspcc-dev/rfc6979"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/crypto/hash"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/util"
)

// PrivateKeySize is the byte length of a serialized private key scalar.
const PrivateKeySize = 32

// PrivateKey is an ECDSA private key, secp256r1 by default.
type PrivateKey struct {
	ecdsa.PrivateKey
}

// NewPrivateKey generates a new secp256r1 private key.
func NewPrivateKey() (*PrivateKey, error) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{PrivateKey: *priv}, nil
}

// NewSecp256k1PrivateKey generates a new secp256k1 private key, for hosts
// bridging to contracts that verify against that curve.
func NewSecp256k1PrivateKey() (*PrivateKey, error) {
	priv, err := ecdsa.GenerateKey(secp256k1.S256(), rand.Reader)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{PrivateKey: *priv}, nil
}

// NewPrivateKeyFromBytes constructs a secp256r1 private key from its raw
// 32-byte scalar.
func NewPrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	return newPrivateKeyOnCurve(b, elliptic.P256())
}

// NewSecp256k1PrivateKeyFromBytes constructs a secp256k1 private key from
// its raw 32-byte scalar.
func NewSecp256k1PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	return newPrivateKeyOnCurve(b, secp256k1.S256())
}

func newPrivateKeyOnCurve(b []byte, curve elliptic.Curve) (*PrivateKey, error) {
	if len(b) != PrivateKeySize {
		return nil, ErrInvalidKeyLength
	}
	d := new(big.Int).SetBytes(b)
	x, y := curve.ScalarBaseMult(b)
	return &PrivateKey{PrivateKey: ecdsa.PrivateKey{
		PublicKey: ecdsa.PublicKey{Curve: curve, X: x, Y: y},
		D:         d,
	}}, nil
}

// NewPrivateKeyFromHex constructs a private key from its hex-encoded
// 32-byte scalar.
func NewPrivateKeyFromHex(s string) (*PrivateKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return NewPrivateKeyFromBytes(b)
}

// NewPrivateKeyFromWIF recovers a private key from its WIF encoding.
func NewPrivateKeyFromWIF(s string) (*PrivateKey, error) {
	w, err := WIFDecode(s, WIFVersion)
	if err != nil {
		return nil, err
	}
	return w.PrivateKey, nil
}

// Bytes returns the raw 32-byte scalar, left-padded with zeroes.
func (p *PrivateKey) Bytes() []byte {
	b := p.D.Bytes()
	if len(b) == PrivateKeySize {
		return b
	}
	padded := make([]byte, PrivateKeySize)
	copy(padded[PrivateKeySize-len(b):], b)
	return padded
}

// String returns the hex-encoded scalar.
func (p *PrivateKey) String() string {
	return hex.EncodeToString(p.Bytes())
}

// PublicKey derives the corresponding public key.
func (p *PrivateKey) PublicKey() *PublicKey {
	pub := PublicKey(p.PrivateKey.PublicKey)
	return &pub
}

// Address returns the Neo N3 address of the key's corresponding
// single-signature verification script.
func (p *PrivateKey) Address() string {
	return p.PublicKey().Address()
}

// GetScriptHash returns the Hash160 of the key's single-signature
// verification script.
func (p *PrivateKey) GetScriptHash() util.Uint160 {
	return p.PublicKey().GetScriptHash()
}

// SignHashable signs h's network-bound signing hash (see
// hash.NetSha256), as used for transaction and block witnesses.
func (p *PrivateKey) SignHashable(net uint32, h hash.Hashable) []byte {
	return p.SignHash(hash.NetSha256(net, h))
}

// WIF returns the key's WIF (compressed) encoding.
func (p *PrivateKey) WIF() string {
	s, _ := WIFEncode(p.Bytes(), WIFVersion, true)
	return s
}

// Sign hashes data with SHA-256 and signs it deterministically (RFC 6979),
// returning the concatenated 64-byte r||s signature.
func (p *PrivateKey) Sign(data []byte) []byte {
	digest := sha256.Sum256(data)
	return p.SignHash(util.Uint256(digest))
}

// SignHash deterministically signs a pre-computed 32-byte hash, returning
// the concatenated 64-byte r||s signature. s is normalized to its low-s
// form (s <= n/2), as every Neo/Bitcoin-style signer must, so the
// signature is canonical and a verifier rejecting high-s malleable
// signatures will still accept it.
func (p *PrivateKey) SignHash(digest util.Uint256) []byte {
	r, s, err := rfc6979.SignECDSA(&p.PrivateKey, digest[:], sha256.New)
	if err != nil {
		panic(err)
	}
	s = toLowS(p.Curve, s)
	return toSignature(p.Curve, r, s)
}

// toLowS returns s normalized to the curve's lower half: if s is
// greater than n/2, it is replaced with n - s.
func toLowS(curve elliptic.Curve, s *big.Int) *big.Int {
	n := curve.Params().N
	halfN := new(big.Int).Rsh(n, 1)
	if s.Cmp(halfN) > 0 {
		s = new(big.Int).Sub(n, s)
	}
	return s
}

func toSignature(curve elliptic.Curve, r, s *big.Int) []byte {
	params := curve.Params()
	size := (params.BitSize + 7) / 8
	sig := make([]byte, 2*size)
	rb := r.Bytes()
	sb := s.Bytes()
	copy(sig[size-len(rb):size], rb)
	copy(sig[2*size-len(sb):], sb)
	return sig
}

// Destroy overwrites the private scalar, rendering the key unusable. It
// does not guarantee the underlying memory is scrubbed (Go offers no
// portable way to do that), only that the in-struct value is replaced.
func (p *PrivateKey) Destroy() {
	p.D = new(big.Int)
}
