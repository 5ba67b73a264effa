package punch

import "errors"

var (
	ErrInvalidKind = errors.New("invalid punch type")
	ErrInvalidPIN  = errors.New("pin does not match the signed-in employee")
)
