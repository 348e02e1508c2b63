package cache

// Keyer builds cache keys for the values mandev caches.
type Keyer interface {
	// ProfileKey names the upstream document for a username.
	ProfileKey(username string) string

	// ArtifactKey names a rendered output derived from a document.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render inputs that change artifact bytes.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Year   int    `json:"year,omitempty"`
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key layout.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ProfileKey returns "profile:<username>".
func (DefaultKeyer) ProfileKey(username string) string {
	return "profile:" + username
}

// ArtifactKey hashes the document hash together with the render options.
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}

// ScopedKeyer prefixes every key of an inner Keyer. Deployments sharing a
// Redis instance use it to keep their namespaces apart.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner uses the
// default layout.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ProfileKey(username string) string {
	return k.prefix + k.inner.ProfileKey(username)
}

func (k *ScopedKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(docHash, opts)
}
