package allowedip

import "errors"

var (
	ErrAllowedIPNotFound = errors.New("allowed IP not found")
	ErrAddressExists     = errors.New("this address is already on the list")
)
