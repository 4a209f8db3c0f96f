package domain

import "errors"

// Failure classes shared by the fetch and projection layers. Callers classify
// with errors.Is; the concrete message carries the failing key path or id.
var (
	// ErrNetwork marks an unreachable provider or a non-JSON/non-2xx response.
	ErrNetwork = errors.New("provider unreachable or returned invalid response")
	// ErrProtocol marks a required key missing from an otherwise valid
	// response, or a value of unexpected shape.
	ErrProtocol = errors.New("provider response missing required structure")
	// ErrResolution marks a cross-table reference that resolves to no row.
	ErrResolution = errors.New("timetable reference does not resolve")
	// ErrFormat marks an unparseable time value or a card with no weekday set.
	ErrFormat = errors.New("timetable value has unexpected format")
)
