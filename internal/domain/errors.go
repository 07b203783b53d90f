package domain

import "errors"

var (
	// ErrUnknownEventType is returned when an event type is outside the closed enum.
	ErrUnknownEventType = errors.New("unknown event type")

	// ErrUnknownPlatform is returned when a platform is outside the known set.
	ErrUnknownPlatform = errors.New("unknown platform")

	// ErrUnknownMetric is returned when a ranking metric name is not recognized.
	ErrUnknownMetric = errors.New("unknown metric")

	// ErrInvalidValue is returned for non-positive event magnitudes.
	ErrInvalidValue = errors.New("event value must be positive")

	// ErrInvalidDateRange is returned for malformed or inverted date filters.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrMissingTenant is returned when an operation has no tenant scope.
	ErrMissingTenant = errors.New("missing tenant id")

	// ErrAttributionGap marks an event with no resolvable scheduled post. The
	// event is still recorded; only aggregation is skipped.
	ErrAttributionGap = errors.New("event has no resolvable scheduled post")

	// ErrConflict signals a concurrent writer collision on an aggregate row.
	// The updater retries these internally.
	ErrConflict = errors.New("concurrent aggregate update conflict")

	// ErrNotFound is returned when a referenced entity does not exist within
	// the caller's tenant.
	ErrNotFound = errors.New("not found")
)
