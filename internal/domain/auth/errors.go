package auth

import "errors"

var (
	ErrInvalidCredentials     = errors.New("invalid pin")
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrTokenRevoked           = errors.New("token has been revoked")
	ErrAdminPrivilegeRequired = errors.New("administrator privilege required")
)
