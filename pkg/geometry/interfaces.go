package geometry

import "errors"

// ErrInvalidShape is returned when a primitive is constructed with degenerate parameters
var ErrInvalidShape = errors.New("invalid shape")

// PrimitiveKind identifies a primitive variant
type PrimitiveKind uint8

const (
	// KindSphere marks a Primitive holding a Sphere
	KindSphere PrimitiveKind = iota + 1
)
