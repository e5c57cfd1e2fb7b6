package parser

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTaxonomy(t *testing.T) {
	taxonomy := DefaultTaxonomy()

	for _, category := range []string{"programming", "databases", "cloud_devops", "methodologies"} {
		if len(taxonomy[category]) == 0 {
			t.Errorf("category %q is missing or empty", category)
		}
	}
	if got := taxonomy.Categories(); len(got) != len(taxonomy) {
		t.Errorf("Categories() returned %d names, want %d", len(got), len(taxonomy))
	}
}

func TestLoadTaxonomyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	content := `categories:
  backend:
    - go
    - postgres
  empty: []
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	taxonomy, err := LoadTaxonomyFile(path)
	if err != nil {
		t.Fatalf("LoadTaxonomyFile failed: %v", err)
	}
	if len(taxonomy["backend"]) != 2 {
		t.Errorf("backend = %v, want two keywords", taxonomy["backend"])
	}
	if _, ok := taxonomy["empty"]; ok {
		t.Error("empty category should be dropped")
	}
}

func TestLoadTaxonomyFileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadTaxonomyFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file: want error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("categories: {}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTaxonomyFile(bad); err == nil {
		t.Error("empty categories: want error")
	}
}
