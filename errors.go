package qmx

import "errors"

// ErrOutputTooSmall is the documented failure mode of Encode (spec.md
// §7): Encode itself returns a bare 0 since its signature has no error
// channel, but EncodeErr wraps that into this sentinel for callers that
// want to errors.Is/As against it.
var ErrOutputTooSmall = errors.New("qmx: output buffer too small")

// ErrNotLoaded is returned by Reader methods called before Load.
var ErrNotLoaded = errors.New("qmx: reader not loaded")

// ErrPositionOutOfRange is returned when accessing a position beyond
// a loaded Reader's element count.
var ErrPositionOutOfRange = errors.New("qmx: position out of range")
