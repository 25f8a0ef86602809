package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrResourceNotFound  = errors.New("catalog resource not found")
	ErrMalformedResource = errors.New("catalog resource is malformed")
	ErrUnknownProductKey = errors.New("unknown product key")
)

// UnknownProductKeyError names the catalog key that does not map to a selection
type UnknownProductKeyError struct {
	Key string
}

func (e *UnknownProductKeyError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownProductKey, e.Key)
}

func (e *UnknownProductKeyError) Is(target error) bool {
	return target == ErrUnknownProductKey
}
