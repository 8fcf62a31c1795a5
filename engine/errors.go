package engine

import "errors"

var (
	// ErrRestrictionNotConsumed is returned when a leaf parser does not consume
	// the whole text selected by its field's pattern
	ErrRestrictionNotConsumed = errors.New("field value does not cover its pattern match")
	// ErrUnboundField is returned when a field reference has no capture target
	ErrUnboundField = errors.New("field reference without a capture target")
	// ErrUnknownNode is returned for an expression node the engine cannot run
	ErrUnknownNode = errors.New("unknown expression node")
)
