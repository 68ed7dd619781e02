package admin

import "errors"

var (
	ErrAdminNotFound      = errors.New("admin not found")
	ErrAdminAlreadyExists = errors.New("admin with this email already exists")
	ErrAdminDeactivated   = errors.New("admin account is deactivated")
)
