package core

import "errors"

// Error kinds from spec.md §7. Callers use errors.Is against these sentinels;
// the concrete error returned always wraps one of them with a human-readable
// message via fmt.Errorf("...: %w", ...).
var (
	// ErrInvalidRequest covers a wildcard term with no regular character.
	// A blank query is not an error: the engine short-circuits it to an
	// empty, successful result instead (spec.md §4.4, §8).
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotFound covers an index directory that does not exist when opening
	// the engine.
	ErrNotFound = errors.New("index not found")

	// ErrParseError covers a query parser failure after escaping. Should be
	// unreachable in default mode because of full escaping.
	ErrParseError = errors.New("query parse error")

	// ErrSourceError covers a missing or unreadable source database, or I/O
	// failures during a build.
	ErrSourceError = errors.New("source error")
)
