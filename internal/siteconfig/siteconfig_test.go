package siteconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"yahb/internal/recipe"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
cuda_archs: ["70", "80"]
mirror: https://mirror.example.org/dist
cache_dir: /var/cache/yahb
workers: 8
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
	if cfg.Mirror != "https://mirror.example.org/dist" {
		t.Errorf("Mirror = %q", cfg.Mirror)
	}
	if got := cfg.Archs(); len(got) != 2 || got[0] != "70" || got[1] != "80" {
		t.Errorf("Archs() = %v, want [70 80]", got)
	}
	if dir, _ := cfg.Cache(); dir != "/var/cache/yahb" {
		t.Errorf("Cache() = %q", dir)
	}
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `mirror: https://mirror.example.org`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Workers != 5 {
		t.Errorf("Workers = %d, want default 5", cfg.Workers)
	}
	if got := cfg.Archs(); len(got) != len(recipe.CudaArchValues) {
		t.Errorf("Archs() = %v, want full enumeration", got)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad arch", `cuda_archs: ["80", "9000"]`, "unknown cuda arch"},
		{"bad workers", `workers: 0`, "workers must be positive"},
		{"bad yaml", `cuda_archs: [`, "parsing site config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("Load() expected error for missing file")
	}
}
