package cache

import (
	"context"

	"github.com/matzehuels/rbcheck/pkg/canvas"
	"github.com/matzehuels/rbcheck/pkg/io"
	"github.com/matzehuels/rbcheck/pkg/verify"
)

// SnapshotHash hashes the canonical JSON snapshot of c. Two canvases with
// the same nodes, edges, labels and root hash the same regardless of the
// format they were read from.
func SnapshotHash(c *canvas.Canvas) (string, error) {
	data, err := io.Encode(c, "json")
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}

// Verified returns the verification result for cv rooted at rootID, using the
// last known good tree when one is cached. A fresh successful verification
// is stored for next time. The bool reports a cache hit.
//
// Cache failures never fail the call; the canvas is verified instead.
func Verified(ctx context.Context, c Cache, k Keyer, cv *canvas.Canvas, rootID int) (verify.Result, bool, error) {
	hash, err := SnapshotHash(cv)
	if err != nil {
		return verify.Result{}, false, err
	}
	key := k.TreeKey(hash, rootID)

	if t, hit, err := LoadTree(ctx, c, key); err == nil && hit {
		if res := verify.CheckTree(t); res.OK() {
			return res, true, nil
		}
		_ = c.Delete(ctx, key)
	}

	res := verify.VerifyContext(ctx, cv, rootID)
	if res.OK() {
		_ = StoreTree(ctx, c, key, res.Tree)
	}
	return res, false, nil
}
