package verify_test

import (
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/rbcheck/pkg/io"
	"github.com/matzehuels/rbcheck/pkg/verify"
)

func TestExampleCanvases(t *testing.T) {
	tests := []struct {
		file  string
		want  verify.Reason
		flags []string
	}{
		{"three.json", verify.Valid, nil},
		{"red_children.toml", verify.Valid, nil},
		{"bad_order.json", verify.NotAValidTree, []string{"badOrder"}},
		{"cycle.json", verify.NotAValidTree, []string{"badOrder"}},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			c, err := io.Import(filepath.Join("..", "..", "examples", "canvases", tt.file))
			if err != nil {
				t.Fatalf("Import: %v", err)
			}
			res := verify.Verify(c, c.Root())
			if res.Reason != tt.want {
				t.Errorf("Reason = %s, want %s", res.Reason, tt.want)
			}
			if !slices.Equal(res.State.Flags(), tt.flags) {
				t.Errorf("Flags() = %v, want %v", res.State.Flags(), tt.flags)
			}
		})
	}
}
