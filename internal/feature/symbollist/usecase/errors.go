// Package usecase implements symbol loading and the filter/sort display pipeline.
package usecase

import "errors"

var (
	// ErrSymbolFetch is returned when the symbol source could not be read after all attempts.
	ErrSymbolFetch = errors.New("failed to fetch symbols")

	// ErrAlreadyLoaded is returned when Load is called on a registry that already holds symbols.
	ErrAlreadyLoaded = errors.New("symbols already loaded")

	// ErrLoadInProgress is returned when Load is called while a fetch is still running.
	ErrLoadInProgress = errors.New("symbol load in progress")

	// ErrNotRetryable is returned when Retry is requested for a registry that has not failed.
	ErrNotRetryable = errors.New("symbol load has not failed")
)
