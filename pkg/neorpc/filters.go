package neorpc

import "github.com/nspcc-dev/neo3-sdk-go/pkg/util"

// BlockFilter narrows a block-related subscription to a specific
// primary index and/or height range.
type BlockFilter struct {
	Primary *byte   `json:"primary,omitempty"`
	Since   *uint32 `json:"since,omitempty"`
	Till    *uint32 `json:"till,omitempty"`
}

// Copy returns a deep copy of f, or nil if f is nil.
func (f *BlockFilter) Copy() *BlockFilter {
	if f == nil {
		return nil
	}
	cp := *f
	if f.Primary != nil {
		cp.Primary = new(byte)
		*cp.Primary = *f.Primary
	}
	if f.Since != nil {
		cp.Since = new(uint32)
		*cp.Since = *f.Since
	}
	if f.Till != nil {
		cp.Till = new(uint32)
		*cp.Till = *f.Till
	}
	return &cp
}

// TxFilter narrows a transaction subscription to a sender and/or
// signer.
type TxFilter struct {
	Sender *util.Uint160 `json:"sender,omitempty"`
	Signer *util.Uint160 `json:"signer,omitempty"`
}

// Copy returns a deep copy of f, or nil if f is nil.
func (f *TxFilter) Copy() *TxFilter {
	if f == nil {
		return nil
	}
	cp := *f
	if f.Sender != nil {
		cp.Sender = new(util.Uint160)
		*cp.Sender = *f.Sender
	}
	if f.Signer != nil {
		cp.Signer = new(util.Uint160)
		*cp.Signer = *f.Signer
	}
	return &cp
}

// NotificationFilter narrows a notification subscription to a
// contract hash and/or event name.
type NotificationFilter struct {
	Contract *util.Uint160 `json:"contract,omitempty"`
	Name     *string       `json:"name,omitempty"`
}

// Copy returns a deep copy of f, or nil if f is nil.
func (f *NotificationFilter) Copy() *NotificationFilter {
	if f == nil {
		return nil
	}
	cp := *f
	if f.Contract != nil {
		cp.Contract = new(util.Uint160)
		*cp.Contract = *f.Contract
	}
	if f.Name != nil {
		cp.Name = new(string)
		*cp.Name = *f.Name
	}
	return &cp
}

// ExecutionFilter narrows an execution-result subscription to a VM
// state and/or container hash.
type ExecutionFilter struct {
	State     *string       `json:"state,omitempty"`
	Container *util.Uint256 `json:"container,omitempty"`
}

// Copy returns a deep copy of f, or nil if f is nil.
func (f *ExecutionFilter) Copy() *ExecutionFilter {
	if f == nil {
		return nil
	}
	cp := *f
	if f.State != nil {
		cp.State = new(string)
		*cp.State = *f.State
	}
	if f.Container != nil {
		cp.Container = new(util.Uint256)
		*cp.Container = *f.Container
	}
	return &cp
}
