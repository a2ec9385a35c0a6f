package palette

import "errors"

var (
	// ErrInvalidConfig is returned by Builder.Validate and Builder.Generate
	// when the configuration cannot produce a palette.
	ErrInvalidConfig = errors.New("invalid palette configuration")

	// ErrInvariantViolation indicates a logic defect in the quantizer, such as
	// a colour box with no population or a split of a single-colour box.
	ErrInvariantViolation = errors.New("palette invariant violated")
)
