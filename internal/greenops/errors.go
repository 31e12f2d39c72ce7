package greenops

// constError is an immutable error type for sentinel errors.
// It implements the error interface and provides compile-time safety.
type constError string

func (e constError) Error() string { return string(e) }

// Calculation errors. Lookup failures are passed through from the factor
// registry and match factors.ErrUnknownFactorKey.
var (
	// ErrInvalidQuantity indicates a negative or non-finite activity amount,
	// or renewable electricity exceeding total consumption. Never clamped.
	ErrInvalidQuantity = constError("invalid quantity")

	// ErrUnknownMethod indicates a missing or unrecognised scope 2 method.
	ErrUnknownMethod = constError("unknown electricity accounting method")

	// ErrCalculationOverflow indicates a result too large to represent.
	ErrCalculationOverflow = constError("calculation overflow")
)
