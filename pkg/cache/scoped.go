package cache

// ScopedKeyer wraps a Keyer with a prefix so tenants sharing one backend
// get separate namespaces:
//
//	apiKeyer := NewScopedKeyer(NewDefaultKeyer(), "api:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner uses
// DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ResolveKey generates a prefixed resolution key.
func (k *ScopedKeyer) ResolveKey(inputHash string, opts ResolveKeyOpts) string {
	return k.prefix + k.inner.ResolveKey(inputHash, opts)
}
