package budget

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Config names the compression thresholds. The right values are workload
// dependent, so none of them are hardcoded in the tier logic.
type Config struct {
	// LargeValueChars is the serialized size above which an unrecognized
	// object is replaced by a structural placeholder in tier 1.
	LargeValueChars int `yaml:"large_value_chars"`
	// SampleKeys is how many keys a structural placeholder retains.
	SampleKeys int `yaml:"sample_keys"`

	// ListKeepItems and MapKeepEntries bound collections after tier 2.
	ListKeepItems  int `yaml:"list_keep_items"`
	MapKeepEntries int `yaml:"map_keep_entries"`

	// DigestMaxFacts caps the name-like facts in the tier 3 digest.
	DigestMaxFacts int `yaml:"digest_max_facts"`
}

func (c Config) WithDefaults() Config {
	if c.LargeValueChars <= 0 {
		c.LargeValueChars = 10_000
	}
	if c.SampleKeys <= 0 {
		c.SampleKeys = 5
	}
	if c.ListKeepItems <= 0 {
		c.ListKeepItems = 3
	}
	if c.MapKeepEntries <= 0 {
		c.MapKeepEntries = 5
	}
	if c.DigestMaxFacts <= 0 {
		c.DigestMaxFacts = 10
	}
	return c
}

// Compressor applies a three-tier degrading strategy to an aggregated
// result map. Each tier runs at most once and never increases the size
// estimate; the tier 3 digest is returned whether or not it fits.
type Compressor struct {
	cfg      Config
	estimate Estimator
}

// New builds a compressor. A nil estimator falls back to character count.
func New(cfg Config, estimate Estimator) *Compressor {
	if estimate == nil {
		estimate = CharEstimator()
	}
	return &Compressor{cfg: cfg.WithDefaults(), estimate: estimate}
}

// Estimate returns the budget-unit size of an arbitrary value.
func (c *Compressor) Estimate(data any) int {
	serialized, err := json.Marshal(data)
	if err != nil {
		return 0
	}
	return c.estimate(string(serialized))
}

// Compress shrinks data until it fits targetBudget, degrading through
// structural stripping, generic summarization, and finally a high-level
// digest. Already-digested input is returned unchanged, which makes the
// operation idempotent once tier 3 has been reached.
func (c *Compressor) Compress(data map[string]any, targetBudget int) map[string]any {
	if isDigest(data) {
		return data
	}
	if c.Estimate(data) <= targetBudget {
		return data
	}

	compressed := c.stripLargePayloads(data)
	if c.Estimate(compressed) <= targetBudget {
		return compressed
	}

	compressed = c.summarizeCollections(compressed)
	if c.Estimate(compressed) <= targetBudget {
		return compressed
	}

	// The digest is built from the original map so the findings are not
	// themselves degraded by the earlier tiers.
	return c.digest(data, targetBudget)
}

// stripLargePayloads is tier 1: known heavy payload shapes are reduced to a
// fixed small projection; any other oversized object becomes a structural
// placeholder.
func (c *Compressor) stripLargePayloads(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for key, value := range data {
		obj, isObj := value.(map[string]any)
		if !isObj {
			out[key] = value
			continue
		}
		switch {
		case strings.HasPrefix(key, "pokemon_"):
			out[key] = projectPokemon(obj)
		case strings.HasPrefix(key, "type_"):
			out[key] = projectType(obj)
		case c.Estimate(obj) > c.cfg.LargeValueChars:
			out[key] = c.placeholder(obj)
		default:
			out[key] = value
		}
	}
	return out
}

// projectPokemon keeps the handful of scalar fields a Pokemon detail
// payload is usually consulted for.
func projectPokemon(obj map[string]any) map[string]any {
	projected := map[string]any{}
	for _, field := range []string{"name", "id", "height", "weight", "base_experience"} {
		if v, ok := obj[field]; ok {
			projected[field] = v
		}
	}
	if types, ok := obj["types"].([]any); ok {
		names := make([]any, 0, len(types))
		for _, t := range types {
			if entry, ok := t.(map[string]any); ok {
				if inner, ok := entry["type"].(map[string]any); ok {
					if name, ok := inner["name"]; ok {
						names = append(names, name)
					}
				}
			}
		}
		projected["types"] = names
	}
	if stats, ok := obj["stats"].([]any); ok {
		flat := map[string]any{}
		for _, s := range stats {
			entry, ok := s.(map[string]any)
			if !ok {
				continue
			}
			inner, ok := entry["stat"].(map[string]any)
			if !ok {
				continue
			}
			if name, ok := inner["name"].(string); ok {
				flat[name] = entry["base_stat"]
			}
		}
		projected["stats"] = flat
	}
	// Extraction records under a pokemon_ key carry their essentials in
	// these fields already; keep them when the detail fields are absent.
	for _, field := range []string{"matched_values", "matched_count", "context", "summary"} {
		if v, ok := obj[field]; ok {
			projected[field] = v
		}
	}
	return projected
}

// projectType reduces a type payload to its identity, relation table, and a
// small member sample.
func projectType(obj map[string]any) map[string]any {
	projected := map[string]any{}
	if name, ok := obj["name"]; ok {
		projected["name"] = name
	}
	if members, ok := obj["pokemon"].([]any); ok {
		projected["pokemon_count"] = len(members)
		sample := make([]any, 0, 5)
		for _, m := range members {
			if len(sample) == 5 {
				break
			}
			if entry, ok := m.(map[string]any); ok {
				if inner, ok := entry["pokemon"].(map[string]any); ok {
					if name, ok := inner["name"]; ok {
						sample = append(sample, name)
					}
				}
			}
		}
		projected["sample_pokemon"] = sample
	}
	if relations, ok := obj["damage_relations"]; ok {
		projected["damage_relations"] = relations
	}
	for _, field := range []string{"matched_values", "matched_count", "context"} {
		if v, ok := obj[field]; ok {
			projected[field] = v
		}
	}
	return projected
}

func (c *Compressor) placeholder(obj map[string]any) map[string]any {
	keys := sortedKeys(obj)
	if len(keys) > c.cfg.SampleKeys {
		keys = keys[:c.cfg.SampleKeys]
	}
	return map[string]any{
		"type":        "object",
		"key_count":   len(obj),
		"sample_keys": keys,
	}
}

// summarizeCollections is tier 2: every remaining long list becomes a
// first-N prefix with a count note, and every wide map keeps its first N
// entries (in sorted key order) plus a summary marker.
func (c *Compressor) summarizeCollections(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for key, value := range data {
		switch v := value.(type) {
		case []any:
			out[key] = c.summarizeList(v)
		case map[string]any:
			out[key] = c.summarizeMap(v)
		default:
			out[key] = value
		}
	}
	return out
}

func (c *Compressor) summarizeList(list []any) any {
	if len(list) <= c.cfg.ListKeepItems {
		return list
	}
	return map[string]any{
		"items":       list[:c.cfg.ListKeepItems],
		"total_count": len(list),
		"note":        fmt.Sprintf("list with %d items (showing first %d)", len(list), c.cfg.ListKeepItems),
	}
}

func (c *Compressor) summarizeMap(obj map[string]any) map[string]any {
	if len(obj) <= c.cfg.MapKeepEntries {
		return obj
	}
	keys := sortedKeys(obj)[:c.cfg.MapKeepEntries]
	summarized := make(map[string]any, c.cfg.MapKeepEntries+1)
	for _, k := range keys {
		summarized[k] = obj[k]
	}
	summarized["_summary"] = fmt.Sprintf("map with %d entries (showing first %d)", len(obj), c.cfg.MapKeepEntries)
	return summarized
}

// digest is tier 3: the per-source structure is discarded entirely in favor
// of a single overview object.
func (c *Compressor) digest(data map[string]any, targetBudget int) map[string]any {
	breakdown := map[string]any{}
	categories := map[string]bool{}
	for _, key := range sortedKeys(data) {
		category := key
		if idx := strings.Index(key, "_"); idx > 0 {
			category = key[:idx]
		}
		categories[category] = true
		if n, ok := breakdown[category].(int); ok {
			breakdown[category] = n + 1
		} else {
			breakdown[category] = 1
		}
	}

	facts := c.collectFacts(data)
	findings := []any{}
	if len(facts) > 0 {
		shown := facts
		if len(shown) > c.cfg.DigestMaxFacts {
			shown = shown[:c.cfg.DigestMaxFacts]
		}
		findings = append(findings, "Analyzed: "+strings.Join(shown, ", "))
		if extra := len(facts) - len(shown); extra > 0 {
			findings = append(findings, fmt.Sprintf("...and %d more", extra))
		}
	}

	return map[string]any{
		"data_overview": map[string]any{
			"total_sources":    len(data),
			"data_types":       sortedSet(categories),
			"source_breakdown": breakdown,
		},
		"key_findings":     findings,
		"compression_note": fmt.Sprintf("data compressed to fit a budget of %d units", targetBudget),
	}
}

// collectFacts pulls name-like values out of each source: extraction
// matches first, then payload identity fields.
func (c *Compressor) collectFacts(data map[string]any) []string {
	var facts []string
	seen := map[string]bool{}
	add := func(fact string) {
		if fact != "" && !seen[fact] {
			seen[fact] = true
			facts = append(facts, fact)
		}
	}
	for _, key := range sortedKeys(data) {
		obj, ok := data[key].(map[string]any)
		if !ok {
			continue
		}
		if matched, ok := obj["matched_values"].([]any); ok {
			for _, m := range matched {
				if s, ok := m.(string); ok {
					add(s)
				}
			}
			continue
		}
		if name, ok := obj["name"].(string); ok {
			add(name)
			continue
		}
		if summary, ok := obj["summary"].(map[string]any); ok {
			if name, ok := summary["name"].(string); ok {
				add(name)
			}
		}
	}
	return facts
}

func isDigest(data map[string]any) bool {
	_, hasOverview := data["data_overview"]
	_, hasNote := data["compression_note"]
	return hasOverview && hasNote
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedSet(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
