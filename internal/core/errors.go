package core

import "errors"

var (
	// ErrSourceNotFound is returned when the configured table source does not
	// exist. It is fatal at startup.
	ErrSourceNotFound = errors.New("source not found")

	// ErrSheetNotFound is returned when a source lacks one of the three tables.
	ErrSheetNotFound = errors.New("sheet not found")

	// ErrUnknownPlatform is returned when a platform has no resolver.
	ErrUnknownPlatform = errors.New("unknown platform")

	// ErrIncomplete is returned when an operation needs a built code and the
	// selection did not produce one.
	ErrIncomplete = errors.New("incomplete selection")
)
