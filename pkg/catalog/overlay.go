package catalog

import (
	"os"

	json5 "github.com/yosuke-furukawa/json5/encoding/json5"
)

// OverlayFile is the on-disk catalog overlay. It lets a deployment disable
// endpoints or replace their default sample pools without rebuilding.
type OverlayFile struct {
	Version   int                     `json:"version"`
	Endpoints map[string]OverlayEntry `json:"endpoints"`
}

// OverlayEntry overrides one endpoint's tunable fields. Nil/empty fields
// leave the built-in declaration untouched.
type OverlayEntry struct {
	Enabled        *bool    `json:"enabled"`
	EntityKey      *string  `json:"entity_key"`
	DefaultSamples []string `json:"default_samples"`
}

// LoadOverlay reads a JSON5 overlay file, tolerating missing or unparsable
// files by returning an empty overlay.
func LoadOverlay(path string) OverlayFile {
	data, err := os.ReadFile(path)
	if err != nil {
		return OverlayFile{Version: 1}
	}
	var parsed OverlayFile
	if err := json5.Unmarshal(data, &parsed); err != nil {
		return OverlayFile{Version: 1}
	}
	if parsed.Version == 0 {
		parsed.Version = 1
	}
	return parsed
}

// NewWithOverlay builds a registry from the built-in descriptor set with the
// given overlay applied. Unknown overlay paths are ignored.
func NewWithOverlay(overlay OverlayFile) (*Registry, error) {
	descriptors := builtinDescriptors()
	merged := make([]Descriptor, 0, len(descriptors))
	for _, desc := range descriptors {
		entry, ok := overlay.Endpoints[desc.Path]
		if !ok {
			merged = append(merged, desc)
			continue
		}
		if entry.Enabled != nil && !*entry.Enabled {
			continue
		}
		if entry.EntityKey != nil {
			desc.EntityKey = *entry.EntityKey
		}
		if len(entry.DefaultSamples) > 0 {
			desc.DefaultSamples = entry.DefaultSamples
		}
		merged = append(merged, desc)
	}
	return NewFromDescriptors(merged)
}
