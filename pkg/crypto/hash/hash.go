// Package hash collects the hash primitives this module builds its
// address, script and transaction ID derivations on top of.
package hash

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/util"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // required by the Hash160/RIPEMD160 wire format
)

// Hashable is implemented by anything identified by a Uint256 hash that
// can be signed (transactions, blocks), letting the signing data be
// tied to a specific network via its magic number.
type Hashable interface {
	Hash() util.Uint256
}

// NetSha256 computes the network-bound signing hash of h: the SHA-256
// of the network's 4-byte little-endian magic number followed by h's
// own hash, so a signature produced for one network can't be replayed
// on another.
func NetSha256(net uint32, h Hashable) util.Uint256 {
	buf := make([]byte, 4, 36)
	binary.LittleEndian.PutUint32(buf, net)
	hb := h.Hash()
	buf = append(buf, hb[:]...)
	return Sha256(buf)
}

// Sha256 computes a single SHA-256 hash of b.
func Sha256(b []byte) util.Uint256 {
	h := sha256.Sum256(b)
	return util.Uint256(h)
}

// DoubleSha256 computes SHA-256(SHA-256(b)).
func DoubleSha256(b []byte) util.Uint256 {
	h1 := sha256.Sum256(b)
	h2 := sha256.Sum256(h1[:])
	return util.Uint256(h2)
}

// RipeMD160 computes a RIPEMD-160 hash of b.
func RipeMD160(b []byte) util.Uint160 {
	h := ripemd160.New()
	_, _ = h.Write(b)
	var u util.Uint160
	copy(u[:], h.Sum(nil))
	return u
}

// Hash160 computes RIPEMD160(SHA256(b)), Neo's standard script-hashing
// pipeline for public keys and verification scripts.
func Hash160(b []byte) util.Uint160 {
	sha := sha256.Sum256(b)
	return RipeMD160(sha[:])
}

// Checksum returns the leading 4 bytes of DoubleSha256(b), used by
// base58check and other framed wire formats.
func Checksum(b []byte) []byte {
	h := DoubleSha256(b)
	bb := h.BytesBE()
	return bb[:4]
}
