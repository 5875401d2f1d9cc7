package extract

import (
	"fmt"
	"strings"

	"github.com/pokedeep/deepdex/pkg/catalog"
)

const (
	// maxMatchedValues bounds a record's matched-value list regardless of
	// how wide the source payload fans out.
	maxMatchedValues = 15
	// snippetCharLimit caps the narrative context snippet.
	snippetCharLimit = 300
	sampleNameCount  = 5
)

// Record is the per-fetch output of the extraction engine. Records are
// immutable once built and keyed by "{endpointPath}_{candidateValue}" in the
// aggregated result map.
type Record struct {
	Endpoint string              `json:"endpoint"`
	Shape    catalog.ResultShape `json:"shape"`
	Tier     string              `json:"tier"`

	// Extracted reports whether the declared path resolved. When false the
	// record degrades to the Summary fields; that is recovery, not failure.
	Extracted bool `json:"extracted"`

	MatchedValues []string `json:"matched_values,omitempty"`
	MatchedCount  int      `json:"matched_count,omitempty"`

	// ContextSnippet is a short human-readable digest of the raw payload
	// for downstream narrative. Never used for filtering.
	ContextSnippet string `json:"context,omitempty"`

	Summary *Summary `json:"summary,omitempty"`
}

// Summary is the degraded record body used when an endpoint declares no
// extraction path or when path traversal misses.
type Summary struct {
	Name        string `json:"name,omitempty"`
	ID          any    `json:"id,omitempty"`
	Description string `json:"description,omitempty"`
	FieldCount  int    `json:"field_count"`
}

// Build turns one raw fetch result into a Record using the originating
// descriptor's extraction path. Traversal misses fall back to a basic
// summary of the payload's top-level identity fields.
func Build(raw any, desc catalog.Descriptor) Record {
	record := Record{
		Endpoint: desc.Path,
		Shape:    desc.Shape,
		Tier:     desc.Tier.String(),
	}

	if len(desc.ExtractionPath) == 0 {
		record.Summary = basicSummary(raw, desc)
		return record
	}

	matched, ok := Walk(raw, desc.ExtractionPath)
	if !ok {
		record.Summary = basicSummary(raw, desc)
		return record
	}

	record.Extracted = true
	record.MatchedValues, record.MatchedCount = stringifyMatches(matched)
	record.ContextSnippet = contextSnippet(raw, desc.Shape)
	return record
}

// stringifyMatches normalizes extraction output to an ordered string list
// plus the pre-cap total count.
func stringifyMatches(matched any) ([]string, int) {
	list, isList := matched.([]any)
	if !isList {
		return []string{stringifyValue(matched)}, 1
	}
	total := len(list)
	if len(list) > maxMatchedValues {
		list = list[:maxMatchedValues]
	}
	values := make([]string, 0, len(list))
	for _, item := range list {
		values = append(values, stringifyValue(item))
	}
	return values, total
}

func stringifyValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case map[string]any:
		if name, ok := v["name"].(string); ok {
			return name
		}
		if inner, ok := v["pokemon"].(map[string]any); ok {
			if name, ok := inner["name"].(string); ok {
				return name
			}
		}
		return fmt.Sprint(v)
	default:
		return fmt.Sprint(v)
	}
}

func basicSummary(raw any, desc catalog.Descriptor) *Summary {
	summary := &Summary{Description: desc.Description}
	obj, ok := raw.(map[string]any)
	if !ok {
		return summary
	}
	summary.FieldCount = len(obj)
	if name, ok := obj["name"].(string); ok {
		summary.Name = name
	}
	if id, ok := obj["id"]; ok {
		summary.ID = id
	}
	return summary
}

// contextSnippet distills the raw payload into a short labelled line, capped
// at snippetCharLimit characters.
func contextSnippet(raw any, shape catalog.ResultShape) string {
	obj, ok := raw.(map[string]any)
	if !ok {
		return truncate(fmt.Sprint(raw), snippetCharLimit)
	}

	var parts []string
	if name, ok := obj["name"].(string); ok {
		switch shape {
		case catalog.ShapePokemon:
			parts = append(parts, "Type: "+name)
		case catalog.ShapeSpecies:
			parts = append(parts, "Category: "+name)
		default:
			parts = append(parts, "Name: "+name)
		}
	}

	if shape == catalog.ShapePokemon {
		if relations, ok := obj["damage_relations"].(map[string]any); ok {
			if names := refNames(relations["double_damage_to"]); len(names) > 0 {
				parts = append(parts, "Strong against: "+strings.Join(names, ", "))
			}
			if names := refNames(relations["double_damage_from"]); len(names) > 0 {
				parts = append(parts, "Weak to: "+strings.Join(names, ", "))
			}
		}
		if names := wrappedNames(obj["pokemon"], "pokemon"); len(names) > 0 {
			parts = append(parts, "Includes Pokemon: "+strings.Join(names, ", "))
		}
	}
	if shape == catalog.ShapeSpecies {
		if names := refNames(obj["pokemon_species"]); len(names) > 0 {
			parts = append(parts, "Includes species: "+strings.Join(names, ", "))
		}
	}
	if gen, ok := obj["generation"].(map[string]any); ok {
		if name, ok := gen["name"].(string); ok {
			parts = append(parts, "Generation: "+name)
		}
	}
	if id, ok := obj["id"]; ok {
		parts = append(parts, fmt.Sprintf("ID: %v", id))
	}

	if len(parts) == 0 {
		return truncate(fmt.Sprint(obj), snippetCharLimit)
	}
	return truncate(strings.Join(parts, "; "), snippetCharLimit)
}

// refNames extracts up to sampleNameCount "name" fields from a list of
// {name: ...} references.
func refNames(value any) []string {
	list, ok := value.([]any)
	if !ok {
		return nil
	}
	names := make([]string, 0, sampleNameCount)
	for _, item := range list {
		if len(names) == sampleNameCount {
			break
		}
		if obj, ok := item.(map[string]any); ok {
			if name, ok := obj["name"].(string); ok {
				names = append(names, name)
			}
		}
	}
	return names
}

// wrappedNames extracts names from a list of {<wrapper>: {name: ...}}
// entries, the shape type and item payloads use for their pokemon lists.
func wrappedNames(value any, wrapper string) []string {
	list, ok := value.([]any)
	if !ok {
		return nil
	}
	names := make([]string, 0, sampleNameCount)
	for _, item := range list {
		if len(names) == sampleNameCount {
			break
		}
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if inner, ok := obj[wrapper].(map[string]any); ok {
			if name, ok := inner["name"].(string); ok {
				names = append(names, name)
			}
		}
	}
	return names
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}
