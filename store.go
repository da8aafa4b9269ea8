package hubdown

import "context"

// Store is a key/value cache for conversion results.
// Implementations must be safe for concurrent use. Expiry and eviction are
// up to the store.
type Store interface {
	// Get reports whether key holds a result. Failures are reported through
	// the returned Lookup, never as a miss.
	Get(ctx context.Context, key string) Lookup

	// Put stores result under key, replacing any previous value.
	Put(ctx context.Context, key string, result Result) error
}

// lookupState tags a Lookup.
type lookupState int

const (
	lookupNotFound lookupState = iota
	lookupFound
	lookupFailed
)

// Lookup is the outcome of Store.Get: a hit carrying a result, a clean miss,
// or a failure carrying the cause. The zero value is a miss.
type Lookup struct {
	state  lookupState
	result Result
	err    error
}

// Found returns a hit for result.
func Found(result Result) Lookup {
	return Lookup{state: lookupFound, result: result}
}

// NotFound returns a clean miss.
func NotFound() Lookup {
	return Lookup{state: lookupNotFound}
}

// StoreError returns a failed lookup caused by err.
func StoreError(err error) Lookup {
	return Lookup{state: lookupFailed, err: err}
}

// Hit reports whether the lookup found a result.
func (l Lookup) Hit() bool { return l.state == lookupFound }

// Result returns the cached result of a hit, nil otherwise.
func (l Lookup) Result() Result { return l.result }

// Err returns the failure cause, nil unless the lookup failed.
func (l Lookup) Err() error { return l.err }
