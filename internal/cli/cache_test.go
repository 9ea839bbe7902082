package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	// Verify the expected structure: $HOME/.cache/rbcheck
	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", "rbcheck")
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != filepath.Join(base, appName) {
		t.Errorf("cacheDir() = %q", dir)
	}
}

func TestConfigDirXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	dir, err := configDir()
	if err != nil {
		t.Fatalf("configDir() error: %v", err)
	}
	if !strings.HasPrefix(dir, base) || !strings.HasSuffix(dir, appName) {
		t.Errorf("configDir() = %q", dir)
	}
}

func TestCacheClearCommand(t *testing.T) {
	env := newTestEnv(t)
	snap := env.writeSnapshot(t, "tree.json", validSnapshot)

	if err := env.run("verify", snap); err != nil {
		t.Fatalf("verify: %v", err)
	}
	entries, _ := os.ReadDir(env.cacheDir)
	if len(entries) == 0 {
		t.Fatal("verify should have cached the tree")
	}

	if err := env.run("cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if entries, _ = os.ReadDir(env.cacheDir); len(entries) != 0 {
		t.Errorf("%d cache buckets survived clear", len(entries))
	}
}
