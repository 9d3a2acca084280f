package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/fieldgen/noise"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Field.Octaves != 8 {
		t.Errorf("default octaves = %d, want 8", cfg.Field.Octaves)
	}
	if cfg.Derived.Orientation != noise.ImproveXY {
		t.Errorf("default orientation = %v, want ImproveXY", cfg.Derived.Orientation)
	}
	if cfg.Derived.Dims != [3]int{1280, 720, 1} {
		t.Errorf("default dims = %v, want [1280 720 1]", cfg.Derived.Dims)
	}
	if cfg.Derived.BufferLen != 4*1280*720 {
		t.Errorf("derived buffer length = %d, want %d", cfg.Derived.BufferLen, 4*1280*720)
	}
	if !cfg.Field.FlipYZ {
		t.Error("flip_yz should default to on")
	}
}

func TestLoadMergesUserConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	user := `
field:
  octaves: 3
  orientation: conventional
  dims: [64, 64, 16]
`
	if err := os.WriteFile(path, []byte(user), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Field.Octaves != 3 {
		t.Errorf("octaves = %d, want 3 from user config", cfg.Field.Octaves)
	}
	if cfg.Derived.Orientation != noise.Conventional {
		t.Errorf("orientation = %v, want Conventional", cfg.Derived.Orientation)
	}
	// Fields absent from the user file keep their defaults.
	if cfg.Field.Frequency != 0.006 {
		t.Errorf("frequency = %v, want default 0.006", cfg.Field.Frequency)
	}
	if !cfg.Field.FlipYZ {
		t.Error("flip_yz lost its default during merge")
	}
}

func TestLoadRejectsBadOrientation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("field:\n  orientation: sideways\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown orientation")
	}
}

func TestToParams(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	p := cfg.ToParams()
	if err := p.Validate(); err != nil {
		t.Errorf("default config produces invalid params: %v", err)
	}
	if p.Seed != 12335 {
		t.Errorf("seed = %v, want 12335", p.Seed)
	}
	if p.Start != (noise.Vec3{X: 0.5, Y: 0.5, Z: 0.5}) {
		t.Errorf("start = %+v, want (0.5, 0.5, 0.5)", p.Start)
	}
}
