package core

import (
	"errors"
)

var (
	ErrUnknownLogLevel = errors.New("unknown log level")
	ErrUnknownKey      = errors.New("unknown key")
	ErrUnknown         = errors.New("unknown")
)
