package cache

// Policy configures failure handling.
type Policy struct {
	// CacheErrors stores a failed build's error and replays the same error
	// value on every later lookup of the type. When false, failed lookups
	// are never cached and every call re-attempts construction.
	CacheErrors bool
}

// DefaultPolicy returns the default policy: failures are not cached.
func DefaultPolicy() Policy {
	return Policy{CacheErrors: false}
}

// ReplayPolicy returns a policy that caches failures.
func ReplayPolicy() Policy {
	return Policy{CacheErrors: true}
}
