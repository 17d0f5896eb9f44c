package ring

import "errors"

// Recoverable error kinds surfaced by construction and metadata paths (spec
// §7's return-value sentinels). Invariant violations - marking a role that
// was never registered, double-marking a slot done - indicate a stage bug
// and panic instead; see roles.go and release.go. ErrNoMetadataPool is not
// returned by any function in this package: AllocateNewMetadata panics when
// the buffer has no metadata pool.
var (
	ErrInvalidConfig = errors.New("ring: invalid buffer configuration")
	ErrAllocation    = errors.New("ring: frame allocation failed")
	ErrNoMetadataPool = errors.New("ring: no metadata pool configured")
	ErrPoolExhausted  = errors.New("ring: metadata pool exhausted")
)
