package keys

import (
	"crypto/aes"
	"crypto/sha256"

	"golang.org/x/crypto/scrypt"
	"golang.org/x/text/unicode/norm"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/encoding/base58"
)

// ScryptParams holds the scrypt cost parameters used by NEP-2.
type ScryptParams struct {
	N, R, P int
}

// NEP2ScryptParams is the NEP-2 default scrypt cost, as specified by the
// standard.
func NEP2ScryptParams() ScryptParams {
	return ScryptParams{N: 16384, R: 8, P: 8}
}

// NEP2ScryptParamsLight is a weaker preset traded for faster
// encrypt/decrypt, used by some wallets for lower-powered hosts.
func NEP2ScryptParamsLight() ScryptParams {
	return ScryptParams{N: 256, R: 1, P: 1}
}

const (
	nep2Prefix1  = 0x01
	nep2Prefix2  = 0x42
	nep2Flag     = 0xE0
	nep2Payload  = 39
	addressHashN = 4
)

// NEP2Encrypt encrypts priv under passphrase using the default scrypt
// parameters, returning the base58check NEP-2 string.
func NEP2Encrypt(priv *PrivateKey, passphrase string) (string, error) {
	return NEP2EncryptWithParams(priv, passphrase, NEP2ScryptParams())
}

// NEP2EncryptWithParams encrypts priv under passphrase using the given
// scrypt parameters.
func NEP2EncryptWithParams(priv *PrivateKey, passphrase string, params ScryptParams) (string, error) {
	addressHash := addressChecksum(priv.Address())
	passphrase = norm.NFC.String(passphrase)

	derived, err := scrypt.Key([]byte(passphrase), addressHash, params.N, params.R, params.P, 64)
	if err != nil {
		return "", err
	}
	derived1, derived2 := derived[:32], derived[32:]

	xored := xor(priv.Bytes(), derived1)

	block, err := aes.NewCipher(derived2)
	if err != nil {
		return "", err
	}
	enc0 := make([]byte, 16)
	enc1 := make([]byte, 16)
	block.Encrypt(enc0, xored[:16])
	block.Encrypt(enc1, xored[16:])

	buf := make([]byte, 0, nep2Payload)
	buf = append(buf, nep2Prefix1, nep2Prefix2, nep2Flag)
	buf = append(buf, addressHash...)
	buf = append(buf, enc0...)
	buf = append(buf, enc1...)

	return base58.CheckEncode(buf), nil
}

// NEP2Decrypt decrypts a NEP-2 string under passphrase using the default
// scrypt parameters, returning the recovered key's WIF.
func NEP2Decrypt(nep2, passphrase string) (string, error) {
	return NEP2DecryptWithParams(nep2, passphrase, NEP2ScryptParams())
}

// NEP2DecryptWithParams decrypts a NEP-2 string using the given scrypt
// parameters.
func NEP2DecryptWithParams(nep2, passphrase string, params ScryptParams) (string, error) {
	b, err := base58.CheckDecode(nep2)
	if err != nil {
		return "", err
	}
	if len(b) != nep2Payload || b[0] != nep2Prefix1 || b[1] != nep2Prefix2 || b[2] != nep2Flag {
		return "", ErrInvalidNEP2Format
	}

	addressHash := b[3 : 3+addressHashN]
	enc := b[3+addressHashN:]
	passphrase = norm.NFC.String(passphrase)

	derived, err := scrypt.Key([]byte(passphrase), addressHash, params.N, params.R, params.P, 64)
	if err != nil {
		return "", err
	}
	derived1, derived2 := derived[:32], derived[32:]

	block, err := aes.NewCipher(derived2)
	if err != nil {
		return "", err
	}
	xored := make([]byte, 32)
	block.Decrypt(xored[:16], enc[:16])
	block.Decrypt(xored[16:], enc[16:])

	keyBytes := xor(xored, derived1)

	priv, err := NewPrivateKeyFromBytes(keyBytes)
	if err != nil {
		return "", err
	}

	if !constantTimeEqual(addressChecksum(priv.Address()), addressHash) {
		return "", ErrInvalidPassphrase
	}

	return priv.WIF(), nil
}

func addressChecksum(address string) []byte {
	h1 := sha256.Sum256([]byte(address))
	h2 := sha256.Sum256(h1[:])
	return h2[:addressHashN]
}

func xor(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// constantTimeEqual compares two equal-length byte slices in constant
// time, so a mismatched passphrase cannot be distinguished by timing.
func constantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var v byte
	for i := range a {
		v |= a[i] ^ b[i]
	}
	return v == 0
}
