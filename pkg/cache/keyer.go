package cache

// Keyer builds cache keys for each entry kind.
type Keyer interface {
	// HTTPKey keys a response decoded by an API client within its namespace.
	HTTPKey(namespace, key string) string

	// ArtifactKey keys a rendered page by the hash of its HTML.
	ArtifactKey(htmlHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts identifies how a page was rendered.
type ArtifactKeyOpts struct {
	Layout string
	Format string
	Width  int
	Height int
}

// DefaultKeyer hashes the key inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// HTTPKey returns "http:<namespace>:<key>".
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(htmlHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", htmlHash, opts.Layout, opts.Format, opts.Width, opts.Height)
}

// ScopedKeyer prefixes every key of an inner Keyer, so several deployments
// can share one backend.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "desk-a:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner with prefix. A nil inner uses DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(htmlHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(htmlHash, opts)
}
