package transaction

import (
	"encoding/json"
	"fmt"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/io"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/util"
)

// AttrType identifies the shape of an attribute's payload.
type AttrType byte

// Recognized attribute types. Anything in the 0x10-0x1f range this
// module doesn't otherwise name is carried as a Reserved value so a
// client round-trips an attribute it doesn't understand instead of
// rejecting the whole transaction.
const (
	HighPriorityT   AttrType = 0x01
	OracleResponseT AttrType = 0x11
	NotValidBeforeT AttrType = 0x20
	ConflictsT      AttrType = 0x21
	NotaryAssistedT AttrType = 0x22
)

const reservedLow, reservedHigh = 0x10, 0x1f

// AttrValue is the payload carried by an Attribute; each concrete type
// knows its own wire and JSON encoding.
type AttrValue interface {
	AttrType() AttrType
	Size() int
	EncodeBinary(w *io.BinWriter)
	DecodeBinary(r *io.BinReader)
}

// Attribute is a transaction attribute: a type tag plus its payload.
type Attribute struct {
	Type  AttrType
	Value AttrValue
}

// EncodeBinary implements the io.Serializable interface.
func (a *Attribute) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(a.Type))
	a.Value.EncodeBinary(w)
}

// DecodeBinary implements the io.Serializable interface.
func (a *Attribute) DecodeBinary(r *io.BinReader) {
	t := AttrType(r.ReadB())
	if r.Err != nil {
		return
	}
	a.Type = t
	switch {
	case t == HighPriorityT:
		a.Value = &HighPriority{}
	case t == OracleResponseT:
		a.Value = &OracleResponse{}
	case t == NotValidBeforeT:
		a.Value = &NotValidBefore{}
	case t == ConflictsT:
		a.Value = &Conflicts{}
	case t == NotaryAssistedT:
		a.Value = &NotaryAssisted{}
	case byte(t) >= reservedLow && byte(t) <= reservedHigh:
		a.Value = &Reserved{}
	default:
		r.Err = fmt.Errorf("transaction: unknown attribute type 0x%x", byte(t))
		return
	}
	a.Value.DecodeBinary(r)
}

// MarshalJSON implements the json.Marshaler interface, flattening the
// attribute's own fields alongside its type name the way the reference
// node's JSON-RPC responses do.
func (a Attribute) MarshalJSON() ([]byte, error) {
	payload, err := json.Marshal(a.Value)
	if err != nil {
		return nil, err
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]interface{}{}
	}
	fields["type"] = attrTypeName(a.Type)
	return json.Marshal(fields)
}

func attrTypeName(t AttrType) string {
	switch t {
	case HighPriorityT:
		return "HighPriority"
	case OracleResponseT:
		return "OracleResponse"
	case NotValidBeforeT:
		return "NotValidBefore"
	case ConflictsT:
		return "Conflicts"
	case NotaryAssistedT:
		return "NotaryAssisted"
	default:
		return "Reserved"
	}
}

// HighPriority marks a transaction for priority inclusion; its
// presence requires the first signer be a committee member, enforced
// by the transaction builder rather than this type.
type HighPriority struct{}

// AttrType implements AttrValue.
func (*HighPriority) AttrType() AttrType { return HighPriorityT }

// Size implements AttrValue.
func (*HighPriority) Size() int { return 0 }

// EncodeBinary implements AttrValue.
func (*HighPriority) EncodeBinary(*io.BinWriter) {}

// DecodeBinary implements AttrValue.
func (*HighPriority) DecodeBinary(*io.BinReader) {}

// OracleResponseCode is the status byte an oracle response carries.
type OracleResponseCode byte

// Recognized oracle response codes.
const (
	OracleSuccess                 OracleResponseCode = 0x00
	OracleProtocolError           OracleResponseCode = 0x10
	OracleConsensusUnreachable    OracleResponseCode = 0x12
	OracleNotFound                OracleResponseCode = 0x14
	OracleTimeout                 OracleResponseCode = 0x16
	OracleForbidden               OracleResponseCode = 0x18
	OracleResponseTooLarge        OracleResponseCode = 0x1a
	OracleInsufficientFunds       OracleResponseCode = 0x1c
	OracleContentTypeNotSupported OracleResponseCode = 0x1f
	OracleError                   OracleResponseCode = 0xff
)

// MaxOracleResult bounds an OracleResponse's Result payload.
const MaxOracleResult = 1024

// OracleResponse carries the result of a previously requested oracle
// call back into a transaction.
type OracleResponse struct {
	ID     uint64
	Code   OracleResponseCode
	Result []byte
}

// AttrType implements AttrValue.
func (*OracleResponse) AttrType() AttrType { return OracleResponseT }

// Size implements AttrValue.
func (o *OracleResponse) Size() int { return 8 + 1 + len(o.Result) }

// EncodeBinary implements AttrValue.
func (o *OracleResponse) EncodeBinary(w *io.BinWriter) {
	w.WriteU64LE(o.ID)
	w.WriteB(byte(o.Code))
	w.WriteVarBytes(o.Result)
}

// DecodeBinary implements AttrValue.
func (o *OracleResponse) DecodeBinary(r *io.BinReader) {
	o.ID = r.ReadU64LE()
	o.Code = OracleResponseCode(r.ReadB())
	o.Result = r.ReadVarBytes(MaxOracleResult)
}

// NotValidBefore rejects the transaction until Height is reached.
type NotValidBefore struct {
	Height uint32
}

// AttrType implements AttrValue.
func (*NotValidBefore) AttrType() AttrType { return NotValidBeforeT }

// Size implements AttrValue.
func (*NotValidBefore) Size() int { return 4 }

// EncodeBinary implements AttrValue.
func (n *NotValidBefore) EncodeBinary(w *io.BinWriter) { w.WriteU32LE(n.Height) }

// DecodeBinary implements AttrValue.
func (n *NotValidBefore) DecodeBinary(r *io.BinReader) { n.Height = r.ReadU32LE() }

// Conflicts names another transaction that must not also be included,
// letting a higher-fee replacement invalidate an older one.
type Conflicts struct {
	Hash util.Uint256
}

// AttrType implements AttrValue.
func (*Conflicts) AttrType() AttrType { return ConflictsT }

// Size implements AttrValue.
func (*Conflicts) Size() int { return util.Uint256Size }

// EncodeBinary implements AttrValue.
func (c *Conflicts) EncodeBinary(w *io.BinWriter) { c.Hash.EncodeBinary(w) }

// DecodeBinary implements AttrValue.
func (c *Conflicts) DecodeBinary(r *io.BinReader) { c.Hash.DecodeBinary(r) }

// NotaryAssisted records how many additional signatures the Notary
// native contract must collect for this transaction.
type NotaryAssisted struct {
	NKeys byte
}

// AttrType implements AttrValue.
func (*NotaryAssisted) AttrType() AttrType { return NotaryAssistedT }

// Size implements AttrValue.
func (*NotaryAssisted) Size() int { return 1 }

// EncodeBinary implements AttrValue.
func (n *NotaryAssisted) EncodeBinary(w *io.BinWriter) { w.WriteB(n.NKeys) }

// DecodeBinary implements AttrValue.
func (n *NotaryAssisted) DecodeBinary(r *io.BinReader) { n.NKeys = r.ReadB() }

// MaxReservedValue bounds the opaque payload of a Reserved attribute.
const MaxReservedValue = 1024

// Reserved carries an attribute type this module doesn't natively
// model, letting a client round-trip it verbatim instead of failing.
type Reserved struct {
	Value []byte
}

// AttrType implements AttrValue.
func (*Reserved) AttrType() AttrType { return 0 }

// Size implements AttrValue.
func (r *Reserved) Size() int { return len(r.Value) }

// EncodeBinary implements AttrValue.
func (r *Reserved) EncodeBinary(w *io.BinWriter) { w.WriteVarBytes(r.Value) }

// DecodeBinary implements AttrValue.
func (r *Reserved) DecodeBinary(br *io.BinReader) { r.Value = br.ReadVarBytes(MaxReservedValue) }
