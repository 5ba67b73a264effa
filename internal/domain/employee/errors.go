package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrPINInUse         = errors.New("pin is already used by another employee")
	ErrCannotDeleteSelf = errors.New("cannot delete your own employee record")
)
