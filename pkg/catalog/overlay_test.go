package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"go.mau.fi/util/ptr"
)

func TestOverlayDisablesEndpoint(t *testing.T) {
	reg, err := NewWithOverlay(OverlayFile{
		Endpoints: map[string]OverlayEntry{
			"/berry": {Enabled: ptr.Ptr(false)},
		},
	})
	if err != nil {
		t.Fatalf("building catalog with overlay: %v", err)
	}
	if reg.Contains("/berry") {
		t.Fatal("disabled endpoint still present")
	}
	if !reg.Contains("/type") {
		t.Fatal("untouched endpoint missing")
	}
}

func TestOverlayOverridesSamples(t *testing.T) {
	reg, err := NewWithOverlay(OverlayFile{
		Endpoints: map[string]OverlayEntry{
			"/type": {DefaultSamples: []string{"dragon"}},
		},
	})
	if err != nil {
		t.Fatalf("building catalog with overlay: %v", err)
	}
	desc, err := reg.Lookup("/type")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if len(desc.DefaultSamples) != 1 || desc.DefaultSamples[0] != "dragon" {
		t.Fatalf("samples not overridden: %v", desc.DefaultSamples)
	}
}

func TestLoadOverlayToleratesMissingFile(t *testing.T) {
	overlay := LoadOverlay(filepath.Join(t.TempDir(), "nope.json5"))
	if overlay.Version != 1 || len(overlay.Endpoints) != 0 {
		t.Fatalf("expected empty overlay, got %+v", overlay)
	}
}

func TestLoadOverlayParsesJSON5(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.json5")
	content := `{
		// comments are allowed
		version: 1,
		endpoints: {
			"/berry": {enabled: false},
		},
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write overlay: %v", err)
	}
	overlay := LoadOverlay(path)
	entry, ok := overlay.Endpoints["/berry"]
	if !ok {
		t.Fatal("overlay entry missing")
	}
	if entry.Enabled == nil || *entry.Enabled {
		t.Fatal("enabled flag not parsed")
	}
}
