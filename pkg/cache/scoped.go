package cache

// ScopedKeyer wraps a Keyer with a prefix, giving each API tenant or stored
// canvas its own key space on a shared backend.
//
//	k := NewScopedKeyer(NewDefaultKeyer(), "canvas:"+id+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// TreeKey generates a prefixed tree key.
func (k *ScopedKeyer) TreeKey(snapshotHash string, rootID int) string {
	return k.prefix + k.inner.TreeKey(snapshotHash, rootID)
}

// RenderKey generates a prefixed render key.
func (k *ScopedKeyer) RenderKey(sourceHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(sourceHash, opts)
}
