package book

import "errors"

// Domain error taxonomy. All of these are caught at the command-dispatch
// boundary and converted into user-facing messages; none are fatal.
var (
	// ErrInvalidFormat signals a malformed field value (name, phone, date).
	ErrInvalidFormat = errors.New("invalid format")

	// ErrNotFound signals an operation referencing an unknown contact or phone.
	ErrNotFound = errors.New("not found")

	// ErrMissingArguments signals a command invoked with too few arguments.
	ErrMissingArguments = errors.New("missing arguments")
)
