package layout

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOptions(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		check   func(t *testing.T, opts Options)
		wantErr bool
	}{
		{
			name: "empty document defers to schema",
			yaml: "",
			check: func(t *testing.T, opts Options) {
				if opts.ConstantFootprint != nil {
					t.Error("ConstantFootprint set for empty document")
				}
				if opts.BlockAlignment != 0 {
					t.Errorf("BlockAlignment = %d, want 0", opts.BlockAlignment)
				}
			},
		},
		{
			name: "explicit overrides",
			yaml: "constantFootprint: true\nblockAlignment: 8\n",
			check: func(t *testing.T, opts Options) {
				if opts.ConstantFootprint == nil || !*opts.ConstantFootprint {
					t.Error("ConstantFootprint override not parsed")
				}
				if opts.BlockAlignment != 8 {
					t.Errorf("BlockAlignment = %d, want 8", opts.BlockAlignment)
				}
			},
		},
		{
			name: "explicit false is distinct from unset",
			yaml: "constantFootprint: false\n",
			check: func(t *testing.T, opts Options) {
				if opts.ConstantFootprint == nil || *opts.ConstantFootprint {
					t.Error("explicit false not preserved")
				}
			},
		},
		{
			name:    "negative alignment",
			yaml:    "blockAlignment: -4\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			yaml:    "blockAlignment: [\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := LoadOptions([]byte(tt.yaml))
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadOptions() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, opts)
			}
		})
	}
}

func TestLoadOptionsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	if err := os.WriteFile(path, []byte("blockAlignment: 16\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	opts, err := LoadOptionsFile(path)
	if err != nil {
		t.Fatalf("LoadOptionsFile() error = %v", err)
	}
	if opts.BlockAlignment != 16 {
		t.Errorf("BlockAlignment = %d, want 16", opts.BlockAlignment)
	}

	if _, err := LoadOptionsFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadOptionsFile() for missing file succeeded")
	}
}
