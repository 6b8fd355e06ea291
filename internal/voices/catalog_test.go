package voices

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Voices) == 0 {
		t.Fatalf("default catalog is empty")
	}
	if _, ok := c.Find("rachel"); !ok {
		t.Fatalf("default catalog missing rachel")
	}
}

func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voices.yaml")
	data := `voices:
  - id: narrator
    name: Narrator
    gender: male
    language: en-US
    provider_id: abc123
  - id: host
    name: Host
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Voices) != 2 {
		t.Fatalf("len(voices) = %d, want 2", len(c.Voices))
	}

	providerID, ok := c.Resolve("narrator")
	if !ok || providerID != "abc123" {
		t.Fatalf("Resolve(narrator) = %q, %v, want abc123, true", providerID, ok)
	}
	if _, ok := c.Resolve("host"); ok {
		t.Fatalf("Resolve(host) should fail without a provider id")
	}
	if _, ok := c.Resolve("missing"); ok {
		t.Fatalf("Resolve(missing) should fail")
	}
}

func TestLoadRejectsInvalidCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voices.yaml")
	if err := os.WriteFile(path, []byte("voices: []\n"), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("Load accepted an empty catalog")
	}

	if err := os.WriteFile(path, []byte("voices:\n  - name: Anonymous\n"), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("Load accepted a voice without an id")
	}
}
