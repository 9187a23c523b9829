package context

import (
	"crypto/sha256"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/vm/opcode"
)

// interopID is the 4-byte interop method hash a SYSCALL instruction
// operand carries, matching emit.Syscall's encoding.
func interopID(api string) []byte {
	h := sha256.Sum256([]byte(api))
	return h[:4]
}

// checkSigInteropID and checkMultisigInteropID are the interop method
// hashes a verification script's trailing SYSCALL names.
var (
	checkSigInteropID      = interopID("System.Crypto.CheckSig")
	checkMultisigInteropID = interopID("System.Crypto.CheckMultisig")
)

// readInt reads a single PUSH-family integer literal starting at
// script[pos], returning its value and the offset just past it.
func readInt(script []byte, pos int) (int64, int, bool) {
	if pos >= len(script) {
		return 0, pos, false
	}
	op := opcode.Opcode(script[pos])
	switch {
	case op == opcode.PUSHM1:
		return -1, pos + 1, true
	case op >= opcode.PUSH0 && op <= opcode.PUSH16:
		return int64(op - opcode.PUSH0), pos + 1, true
	case op == opcode.PUSHINT8:
		if pos+2 > len(script) {
			return 0, pos, false
		}
		return bigint.FromBytes(script[pos+1 : pos+2]).Int64(), pos + 2, true
	case op == opcode.PUSHINT16:
		if pos+3 > len(script) {
			return 0, pos, false
		}
		return bigint.FromBytes(script[pos+1 : pos+3]).Int64(), pos + 3, true
	case op == opcode.PUSHINT32:
		if pos+5 > len(script) {
			return 0, pos, false
		}
		return bigint.FromBytes(script[pos+1 : pos+5]).Int64(), pos + 5, true
	default:
		return 0, pos, false
	}
}

// readBytes reads a single PUSHDATA1/2/4 literal starting at
// script[pos], returning its payload and the offset just past it.
func readBytes(script []byte, pos int) ([]byte, int, bool) {
	if pos >= len(script) {
		return nil, pos, false
	}
	switch opcode.Opcode(script[pos]) {
	case opcode.PUSHDATA1:
		if pos+2 > len(script) {
			return nil, pos, false
		}
		n := int(script[pos+1])
		end := pos + 2 + n
		if end > len(script) {
			return nil, pos, false
		}
		return script[pos+2 : end], end, true
	default:
		return nil, pos, false
	}
}

// ParseSignatureContract reports whether script is the standard
// single-signature verification script for pub, as produced by
// keys.PublicKey.GetVerificationScript.
func ParseSignatureContract(script []byte) (*keys.PublicKey, bool) {
	data, pos, ok := readBytes(script, 0)
	if !ok || len(data) != keys.PublicKeySize {
		return nil, false
	}
	if pos+5 != len(script) || opcode.Opcode(script[pos]) != opcode.SYSCALL {
		return nil, false
	}
	if string(script[pos+1:pos+5]) != string(checkSigInteropID) {
		return nil, false
	}
	pub, err := keys.NewPublicKeyFromBytes(data)
	if err != nil {
		return nil, false
	}
	return pub, true
}

// ParseMultiSigContract reports whether script is an m-of-n multisig
// verification script, as produced by
// smartcontract.CreateMultiSigRedeemScript, returning m and the
// ordered set of n public keys.
func ParseMultiSigContract(script []byte) (int, keys.PublicKeys, bool) {
	m, pos, ok := readInt(script, 0)
	if !ok || m <= 0 {
		return 0, nil, false
	}
	var pubs keys.PublicKeys
	for {
		data, next, ok := readBytes(script, pos)
		if !ok {
			break
		}
		pub, err := keys.NewPublicKeyFromBytes(data)
		if err != nil {
			return 0, nil, false
		}
		pubs = append(pubs, pub)
		pos = next
	}
	n, pos, ok := readInt(script, pos)
	if !ok || int(n) != len(pubs) || int(m) > len(pubs) {
		return 0, nil, false
	}
	if pos+5 != len(script) || opcode.Opcode(script[pos]) != opcode.SYSCALL {
		return 0, nil, false
	}
	if string(script[pos+1:pos+5]) != string(checkMultisigInteropID) {
		return 0, nil, false
	}
	return int(m), pubs, true
}
