package smartcontract

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/crypto/hash"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/io"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/util"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/vm/emit"
)

// CreateMultiSigRedeemScript builds the verification script of an
// m-of-len(pubs) multisignature account: m, each public key, the
// count, then a System.Crypto.CheckMultisig syscall.
func CreateMultiSigRedeemScript(m int, pubs keys.PublicKeys) ([]byte, error) {
	if m <= 0 || m > len(pubs) {
		return nil, fmt.Errorf("smartcontract: invalid multisig parameters: %d of %d", m, len(pubs))
	}
	if len(pubs) > 1024 {
		return nil, errors.New("smartcontract: too many public keys for a multisig account")
	}
	bw := io.NewBufBinWriter()
	emit.Int(bw.BinWriter, int64(m))
	for _, pub := range pubs {
		emit.Bytes(bw.BinWriter, pub.Bytes())
	}
	emit.Int(bw.BinWriter, int64(len(pubs)))
	emit.Syscall(bw.BinWriter, "System.Crypto.CheckMultisig")
	if bw.Err != nil {
		return nil, bw.Err
	}
	return bw.Bytes(), nil
}

// CreateMultiSigRedeemScriptHash is a convenience wrapper returning the
// Hash160 of the redeem script CreateMultiSigRedeemScript would build.
func CreateMultiSigRedeemScriptHash(m int, pubs keys.PublicKeys) (util.Uint160, error) {
	script, err := CreateMultiSigRedeemScript(m, pubs)
	if err != nil {
		return util.Uint160{}, err
	}
	return hash.Hash160(script), nil
}
