package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// Keyer generates cache keys.
type Keyer interface {
	// TreeKey is the key of the last known good tree for a canvas snapshot
	// verified from rootID.
	TreeKey(snapshotHash string, rootID int) string

	// RenderKey is the key of a rendered diagram of a tree or canvas.
	RenderKey(sourceHash string, opts RenderKeyOpts) string
}

// RenderKeyOpts are the render options that change the output bytes.
type RenderKeyOpts struct {
	Format    string
	Detailed  bool
	Highlight int
}

// DefaultKeyer builds readable keys such as "tree:<hash>:root=3" and
// "render:<hash>:svg:detailed=false:hl=-1".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) TreeKey(snapshotHash string, rootID int) string {
	return "tree:" + snapshotHash + ":root=" + strconv.Itoa(rootID)
}

func (DefaultKeyer) RenderKey(sourceHash string, opts RenderKeyOpts) string {
	return "render:" + sourceHash + ":" + opts.Format +
		":detailed=" + strconv.FormatBool(opts.Detailed) +
		":hl=" + strconv.Itoa(opts.Highlight)
}

// TreeKey is shorthand for NewDefaultKeyer().TreeKey.
func TreeKey(snapshotHash string, rootID int) string {
	return DefaultKeyer{}.TreeKey(snapshotHash, rootID)
}

// Hash returns the hex SHA-256 of data. Snapshots and DOT sources are keyed
// by content.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
