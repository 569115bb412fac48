package admin

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrCannotDeactivateSelf  = errors.New("admins cannot deactivate their own account")
	ErrCannotDeactivateAdmin = errors.New("admin accounts cannot be deactivated")
	ErrValidation            = errors.New("validation failed")
)
