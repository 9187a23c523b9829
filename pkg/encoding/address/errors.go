package address

import "errors"

var (
	errInvalidAddressLength = errors.New("address: invalid decoded length")
	errInvalidAddressPrefix = errors.New("address: invalid version prefix")
)
