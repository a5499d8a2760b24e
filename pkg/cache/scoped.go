package cache

// ScopedKeyer wraps a Keyer with a prefix so separate notes collections
// sharing one Redis instance cannot collide.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer whose prefix is prepended to every
// generated key.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// GraphKey generates a prefixed key for a scanned note graph.
func (k *ScopedKeyer) GraphKey(scanHash string) string {
	return k.prefix + k.inner.GraphKey(scanHash)
}

// RankKey generates a prefixed key for a rank vector.
func (k *ScopedKeyer) RankKey(graphHash string, opts RankKeyOpts) string {
	return k.prefix + k.inner.RankKey(graphHash, opts)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(graphHash, format string) string {
	return k.prefix + k.inner.ArtifactKey(graphHash, format)
}
