package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/hueforge/internal/colour"
	"github.com/jmylchreest/hueforge/internal/extract"
	"github.com/jmylchreest/hueforge/internal/generate"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
		check   func(t *testing.T, c *Config)
	}{
		{
			name: "empty document keeps defaults",
			yaml: "",
			check: func(t *testing.T, c *Config) {
				if diff := cmp.Diff(Default(), c); diff != "" {
					t.Errorf("config mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name: "partial overlay",
			yaml: "extract:\n  algorithm: Octree\n  count: 12\noutput:\n  format: json\n",
			check: func(t *testing.T, c *Config) {
				if c.Extract.Count != 12 || c.Output.Format != FormatJSON {
					t.Errorf("overlay not applied: %+v", c)
				}
				if c.Extract.MaxSamples != extract.DefaultMaxSamples {
					t.Errorf("MaxSamples = %d, want default", c.Extract.MaxSamples)
				}
				if got := c.ExtractOptions().Algorithm; got != extract.AlgorithmOctree {
					t.Errorf("algorithm = %q, want octree", got)
				}
			},
		},
		{
			name: "radium key strategies",
			yaml: "radium:\n  keyStrategies:\n    primary: evenHues\n",
			check: func(t *testing.T, c *Config) {
				got := c.GenerateConfig().Radium.KeyStrategies
				if diff := cmp.Diff(map[string]string{"primary": "evenHues"}, got); diff != "" {
					t.Errorf("key strategies mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{name: "count too low", yaml: "extract:\n  count: 0\n", wantErr: colour.ErrOutOfRange},
		{name: "count too high", yaml: "generate:\n  count: 257\n", wantErr: colour.ErrOutOfRange},
		{name: "unknown algorithm", yaml: "extract:\n  algorithm: wavelet\n", wantErr: colour.ErrBadFormat},
		{name: "empty algorithm", yaml: "extract:\n  algorithm: \"\"\n", wantErr: colour.ErrEmpty},
		{name: "bad strategy", yaml: "accessibility:\n  strategy: lazy\n", wantErr: colour.ErrOutOfRange},
		{name: "bad output format", yaml: "output:\n  format: toml\n", wantErr: colour.ErrOutOfRange},
		{name: "inverted band", yaml: "roles:\n  mainMinL: 0.8\n  mainMaxL: 0.5\n", wantErr: colour.ErrOutOfRange},
		{name: "unknown harmony family", yaml: "harmony:\n  family: pentadic\n", wantErr: colour.ErrBadFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.yaml))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			tt.check(t, c)
		})
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	if _, err := Parse([]byte("extract:\n  colours: 4\n")); err == nil {
		t.Error("Parse() accepted an unknown key")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hueforge.yaml")
	if err := os.WriteFile(path, []byte("generate:\n  count: 9\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Generate.Count != 9 {
		t.Errorf("Generate.Count = %d, want 9", c.Generate.Count)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want not exist", err)
	}
}

func TestGenerateConfigMatchesDefaults(t *testing.T) {
	got := Default().GenerateConfig()
	want := generate.DefaultConfig()
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b map[string]string) bool { return len(a) == len(b) })); diff != "" {
		t.Errorf("GenerateConfig() mismatch (-want +got):\n%s", diff)
	}
}
