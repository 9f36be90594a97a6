package models

import (
	"errors"
	"fmt"
)

var (
	ErrEntityWelcomed       = errors.New("entity already welcomed")
	ErrDuplicateComponent   = errors.New("entity already holds a component of this type")
	ErrNilComponent         = errors.New("nil component")
	ErrComponentAttached    = errors.New("component is attached to another entity")
	ErrUnknownComponentType = errors.New("component type is not registered")
	ErrTypeRegistered       = errors.New("component type already registered")

	// ErrContract prefixes every panic raised for lifecycle misuse.
	ErrContract = errors.New("contract violation")
)

func violation(format string, args ...any) {
	panic(fmt.Errorf("%w: %s", ErrContract, fmt.Sprintf(format, args...)))
}
