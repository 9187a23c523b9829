// Package base58 provides Bitcoin-style base58check encoding backed by
// github.com/mr-tron/base58 for the inner alphabet.
package base58

import (
	"crypto/sha256"
	"errors"

	"github.com/mr-tron/base58"
)

// ErrInvalidChecksum is returned by CheckDecode when the trailing 4-byte
// checksum does not match the payload.
var ErrInvalidChecksum = errors.New("invalid checksum")

// ErrInvalidFormat is returned by CheckDecode when the input is too short
// to contain a checksum.
var ErrInvalidFormat = errors.New("invalid format: string too short")

// Encode encodes b into a base58 string.
func Encode(b []byte) string {
	return base58.Encode(b)
}

// Decode decodes a base58 string into bytes.
func Decode(s string) ([]byte, error) {
	return base58.Decode(s)
}

// CheckEncode prepends nothing and appends a 4-byte double-SHA256 checksum
// to b before base58-encoding it.
func CheckEncode(b []byte) string {
	csum := checksum(b)
	buf := make([]byte, 0, len(b)+4)
	buf = append(buf, b...)
	buf = append(buf, csum[:]...)
	return base58.Encode(buf)
}

// CheckDecode decodes a base58check string, verifying the trailing 4-byte
// checksum and returning the payload without it.
func CheckDecode(s string) ([]byte, error) {
	dec, err := base58.Decode(s)
	if err != nil {
		return nil, err
	}
	if len(dec) < 5 {
		return nil, ErrInvalidFormat
	}
	var cksum [4]byte
	copy(cksum[:], dec[len(dec)-4:])
	payload := dec[:len(dec)-4]
	expected := checksum(payload)
	if cksum != expected {
		return nil, ErrInvalidChecksum
	}
	return payload, nil
}

func checksum(b []byte) (cksum [4]byte) {
	h1 := sha256.Sum256(b)
	h2 := sha256.Sum256(h1[:])
	copy(cksum[:], h2[:4])
	return
}
