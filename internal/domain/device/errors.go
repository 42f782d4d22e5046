package device

import "errors"

var (
	ErrDeviceNotFound = errors.New("device fingerprint not found")
)
