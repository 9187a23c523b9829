package keys

import (
	"github.com/nspcc-dev/neo3-sdk-go/pkg/encoding/base58"
)

// WIFVersion is the default version byte stamped into a WIF payload.
const WIFVersion = 0x80

// WIF holds the decoded fields of a wallet import format string.
type WIF struct {
	Version    byte
	PrivateKey *PrivateKey
	Compressed bool
}

// WIFEncode encodes key (a 32-byte scalar) as a WIF string. A version of 0
// is treated as WIFVersion.
func WIFEncode(key []byte, version byte, compressed bool) (string, error) {
	if len(key) != PrivateKeySize {
		return "", ErrInvalidKeyLength
	}
	if version == 0x00 {
		version = WIFVersion
	}

	buf := make([]byte, 0, 1+PrivateKeySize+1)
	buf = append(buf, version)
	buf = append(buf, key...)
	if compressed {
		buf = append(buf, 0x01)
	}
	return base58.CheckEncode(buf), nil
}

// WIFDecode decodes a WIF string, validating its embedded version byte
// against version (0 is treated as WIFVersion).
func WIFDecode(wif string, version byte) (*WIF, error) {
	if version == 0x00 {
		version = WIFVersion
	}

	b, err := base58.CheckDecode(wif)
	if err != nil {
		return nil, err
	}

	var compressed bool
	switch len(b) {
	case 1 + PrivateKeySize:
		compressed = false
	case 1 + PrivateKeySize + 1:
		if b[len(b)-1] != 0x01 {
			return nil, ErrInvalidWIFCompressionFlag
		}
		compressed = true
	default:
		return nil, base58.ErrInvalidFormat
	}

	if b[0] != version {
		return nil, ErrInvalidWIFVersion
	}

	priv, err := NewPrivateKeyFromBytes(b[1 : 1+PrivateKeySize])
	if err != nil {
		return nil, err
	}

	return &WIF{
		Version:    b[0],
		PrivateKey: priv,
		Compressed: compressed,
	}, nil
}
