package settings

import "errors"

var (
	ErrUnknownKey   = errors.New("unknown setting")
	ErrNotSet       = errors.New("setting has not been stored")
	ErrInvalidValue = errors.New("invalid setting value")
)
