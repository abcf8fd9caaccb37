package idgen

import "github.com/google/uuid"

// Default returns a random UUID string.
func Default() string { return uuid.New().String() }

// NewFunc generates identifiers. Override in tests for determinism.
var NewFunc = Default

// New returns a new globally unique identifier as string.
func New() string { return NewFunc() }
