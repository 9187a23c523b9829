package keys

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/crypto/hash"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/io"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/util"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/vm/opcode"
)

// PublicKeySize is the byte length of a compressed public key.
const PublicKeySize = 33

// PublicKey represents an elliptic curve public key, compatible with
// ecdsa.PublicKey so existing stdlib verification helpers work on it
// directly.
type PublicKey ecdsa.PublicKey

// PublicKeys is a list of public keys, sorted so multisig scripts built
// from it are deterministic across peers.
type PublicKeys []*PublicKey

func (keys PublicKeys) Len() int      { return len(keys) }
func (keys PublicKeys) Swap(i, j int) { keys[i], keys[j] = keys[j], keys[i] }
func (keys PublicKeys) Less(i, j int) bool {
	if c := keys[i].X.Cmp(keys[j].X); c != 0 {
		return c < 0
	}
	return keys[i].Y.Cmp(keys[j].Y) < 0
}

// Copy returns a shallow copy of keys backed by a new slice.
func (keys PublicKeys) Copy() PublicKeys {
	if keys == nil {
		return nil
	}
	out := make(PublicKeys, len(keys))
	copy(out, keys)
	return out
}

// Contains reports whether pub is present in keys.
func (keys PublicKeys) Contains(pub *PublicKey) bool {
	for _, k := range keys {
		if k.Equal(pub) {
			return true
		}
	}
	return false
}

// NewPublicKeysFromStrings decodes a list of hex-encoded compressed
// points into PublicKeys, failing on the first invalid entry.
func NewPublicKeysFromStrings(ss []string) (PublicKeys, error) {
	pubs := make(PublicKeys, len(ss))
	for i, s := range ss {
		pub, err := NewPublicKeyFromString(s)
		if err != nil {
			return nil, err
		}
		pubs[i] = pub
	}
	return pubs, nil
}

// NewPublicKeyFromBytes decodes a compressed or uncompressed point encoding
// into a secp256r1 PublicKey.
func NewPublicKeyFromBytes(data []byte) (*PublicKey, error) {
	return newPublicKeyFromBytesOnCurve(data, elliptic.P256())
}

// NewSecp256k1PublicKeyFromBytes decodes a point encoding on the secp256k1
// curve.
func NewSecp256k1PublicKeyFromBytes(data []byte) (*PublicKey, error) {
	return newPublicKeyFromBytesOnCurve(data, secp256k1.S256())
}

func newPublicKeyFromBytesOnCurve(data []byte, curve elliptic.Curve) (*PublicKey, error) {
	pub := &PublicKey{Curve: curve}
	r := io.NewBinReaderFromBuf(data)
	pub.DecodeBinary(r)
	if r.Err != nil {
		return nil, r.Err
	}
	return pub, nil
}

// NewPublicKeyFromString decodes a hex-encoded compressed point into a
// secp256r1 PublicKey.
func NewPublicKeyFromString(s string) (*PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return NewPublicKeyFromBytes(b)
}

// Bytes returns the 33-byte compressed point encoding of p, or a single
// 0x00 byte for the point at infinity.
func (p *PublicKey) Bytes() []byte {
	if p.IsInfinity() {
		return []byte{0x00}
	}

	x := p.X.Bytes()
	padded := make([]byte, 32)
	copy(padded[32-len(x):], x)

	prefix := byte(0x03)
	if p.Y.Bit(0) == 0 {
		prefix = byte(0x02)
	}
	return append([]byte{prefix}, padded...)
}

// IsInfinity reports whether p is the point at infinity.
func (p *PublicKey) IsInfinity() bool {
	return p.X == nil && p.Y == nil
}

// String implements the Stringer interface, returning the hex-encoded
// compressed point.
func (p *PublicKey) String() string {
	return hex.EncodeToString(p.Bytes())
}

// MarshalJSON implements the json.Marshaler interface, encoding p as
// its hex-encoded compressed point.
func (p *PublicKey) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (p *PublicKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	pub, err := NewPublicKeyFromString(s)
	if err != nil {
		return err
	}
	*p = *pub
	return nil
}

func decompressY(curve elliptic.Curve, x *big.Int, ylsb uint) (*big.Int, error) {
	params := curve.Params()
	three := big.NewInt(3)
	xCubed := new(big.Int).Exp(x, three, params.P)
	threeX := new(big.Int).Mul(x, three)
	threeX.Mod(threeX, params.P)
	ySquared := new(big.Int).Sub(xCubed, threeX)
	ySquared.Add(ySquared, params.B)
	ySquared.Mod(ySquared, params.P)
	y := new(big.Int).ModSqrt(ySquared, params.P)
	if y == nil {
		return nil, errors.New("keys: invalid compressed point, no square root exists")
	}
	if y.Bit(0) != ylsb {
		y.Neg(y)
		y.Mod(y, params.P)
	}
	return y, nil
}

// DecodeBinary implements the io.Serializable interface.
func (p *PublicKey) DecodeBinary(r *io.BinReader) {
	if p.Curve == nil {
		p.Curve = elliptic.P256()
	}
	prefix := r.ReadB()
	if r.Err != nil {
		return
	}

	switch prefix {
	case 0x00:
		p.X, p.Y = nil, nil
		return
	case 0x02, 0x03:
		xb := make([]byte, 32)
		r.ReadBytes(xb)
		if r.Err != nil {
			return
		}
		x := new(big.Int).SetBytes(xb)
		y, err := decompressY(p.Curve, x, uint(prefix&0x1))
		if err != nil {
			r.Err = err
			return
		}
		p.setPoint(x, y)
	case 0x04:
		xb := make([]byte, 32)
		yb := make([]byte, 32)
		r.ReadBytes(xb)
		r.ReadBytes(yb)
		if r.Err != nil {
			return
		}
		p.setPoint(new(big.Int).SetBytes(xb), new(big.Int).SetBytes(yb))
	default:
		r.Err = fmt.Errorf("keys: invalid public key prefix %d", prefix)
	}
}

func (p *PublicKey) setPoint(x, y *big.Int) {
	if !p.Curve.IsOnCurve(x, y) {
		p.X, p.Y = nil, nil
		return
	}
	p.X, p.Y = x, y
}

// EncodeBinary implements the io.Serializable interface.
func (p *PublicKey) EncodeBinary(w *io.BinWriter) {
	w.WriteBytes(p.Bytes())
}

// GetVerificationScript builds the single-signature verification script
// for p: PUSHDATA1 <33-byte compressed key> SYSCALL System.Crypto.CheckSig.
func (p *PublicKey) GetVerificationScript() []byte {
	script := make([]byte, 0, 40)
	script = append(script, byte(opcode.PUSHDATA1), PublicKeySize)
	script = append(script, p.Bytes()...)
	script = append(script, byte(opcode.SYSCALL))
	script = append(script, checkSigInteropID...)
	return script
}

// checkSigInteropID is the interop method hash of System.Crypto.CheckSig.
var checkSigInteropID = []byte{0x56, 0xe7, 0xb3, 0x27}

// GetScriptHash returns the Hash160 of p's verification script.
func (p *PublicKey) GetScriptHash() util.Uint160 {
	return hash.Hash160(p.GetVerificationScript())
}

// Address returns the Neo N3 address derived from p's verification script.
func (p *PublicKey) Address() string {
	return address.Uint160ToString(p.GetScriptHash())
}

// Verify reports whether signature is a valid ECDSA signature of hash
// under p. A high-s signature (s > n/2) is rejected as non-canonical
// even if it would otherwise verify, since every Neo/Bitcoin-style
// signer is expected to produce only the low-s form.
func (p *PublicKey) Verify(signature []byte, hash []byte) bool {
	if p.X == nil || p.Y == nil || p.Curve == nil {
		return false
	}
	size := (p.Curve.Params().BitSize + 7) / 8
	if len(signature) != 2*size {
		return false
	}
	r := new(big.Int).SetBytes(signature[:size])
	s := new(big.Int).SetBytes(signature[size:])
	n := p.Curve.Params().N
	halfN := new(big.Int).Rsh(n, 1)
	if s.Cmp(halfN) > 0 {
		return false
	}
	pub := ecdsa.PublicKey(*p)
	return ecdsa.Verify(&pub, hash, r, s)
}

// Equal reports whether p and other encode the same point on the same curve.
func (p *PublicKey) Equal(other *PublicKey) bool {
	return bytes.Equal(p.Bytes(), other.Bytes())
}
