package factors

import "fmt"

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Registry errors. Compare with errors.Is.
var (
	// ErrUnknownFactorKey indicates a key with no mapping in the requested domain.
	ErrUnknownFactorKey = constError("unknown factor key")

	// ErrUnknownDomain indicates a lookup against a domain the registry does not have.
	ErrUnknownDomain = constError("unknown factor domain")

	// ErrMissingFactor indicates an enumerated variant without a registry entry.
	// It is a configuration error raised when a registry is built.
	ErrMissingFactor = constError("missing emission factor")

	// ErrInvalidFactor indicates a factor with a non-positive value or an empty unit.
	ErrInvalidFactor = constError("invalid emission factor")

	// ErrInvalidVersion indicates a registry version that is not valid semver.
	ErrInvalidVersion = constError("invalid registry version")
)

// KeyError reports a failed lookup. It unwraps to ErrUnknownFactorKey and
// carries the closest known key, if any, so callers can offer a correction.
type KeyError struct {
	Domain     Domain
	Key        string
	Suggestion string
}

func (e *KeyError) Error() string {
	msg := fmt.Sprintf("%s: %s %q", ErrUnknownFactorKey, e.Domain, e.Key)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

func (e *KeyError) Unwrap() error { return ErrUnknownFactorKey }
