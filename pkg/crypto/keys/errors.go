package keys

import "errors"

var (
	// ErrInvalidKeyLength is returned when key material is not the expected
	// curve-specific byte length.
	ErrInvalidKeyLength = errors.New("keys: invalid key length")
	// ErrInvalidWIFVersion is returned when a decoded WIF's version byte
	// does not match the expected one.
	ErrInvalidWIFVersion = errors.New("keys: invalid WIF version")
	// ErrInvalidWIFCompressionFlag is returned when a 34-byte WIF payload's
	// trailing byte is not the compression marker 0x01.
	ErrInvalidWIFCompressionFlag = errors.New("keys: invalid WIF compression flag")
	// ErrInvalidPassphrase is returned by NEP2Decrypt when the derived
	// address checksum does not match the one embedded in the payload.
	ErrInvalidPassphrase = errors.New("keys: invalid passphrase")
	// ErrInvalidNEP2Format is returned by NEP2Decrypt for malformed input.
	ErrInvalidNEP2Format = errors.New("keys: invalid NEP-2 payload")
)
