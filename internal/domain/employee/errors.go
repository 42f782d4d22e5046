package employee

import "errors"

var (
	ErrCannotDeactivateSelf = errors.New("you cannot deactivate or delete your own account")
)
