package pickup

import "errors"

var (
	ErrRequestNotFound   = errors.New("pickup request not found")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidWasteType  = errors.New("invalid waste type")
)
