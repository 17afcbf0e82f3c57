package utils

import "github.com/pkg/errors"

// ErrInvalidArgument is returned, wrapped, when a call is rejected because of a
// malformed argument. No state is changed when it is returned.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentf wraps ErrInvalidArgument with a formatted message.
func InvalidArgumentf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}
