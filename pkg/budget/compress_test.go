package budget

import (
	"fmt"
	"strings"
	"testing"
)

func TestCompressLeavesFittingDataAlone(t *testing.T) {
	c := New(Config{}, CharEstimator())
	data := map[string]any{"type_fire": map[string]any{"name": "fire"}}

	out := c.Compress(data, 100_000)
	if len(out) != 1 {
		t.Fatalf("unexpected output: %v", out)
	}
	if name := out["type_fire"].(map[string]any)["name"]; name != "fire" {
		t.Fatalf("payload was modified: %v", out)
	}
}

func TestStripKeepsPokemonEssentials(t *testing.T) {
	c := New(Config{}, CharEstimator())
	detail := map[string]any{
		"name":            "pikachu",
		"id":              float64(25),
		"height":          float64(4),
		"weight":          float64(60),
		"base_experience": float64(112),
		"sprites":         strings.Repeat("x", 20_000),
		"types": []any{
			map[string]any{"type": map[string]any{"name": "electric"}},
		},
		"stats": []any{
			map[string]any{"base_stat": float64(35), "stat": map[string]any{"name": "hp"}},
			map[string]any{"base_stat": float64(90), "stat": map[string]any{"name": "speed"}},
		},
	}
	data := map[string]any{"pokemon_25": detail}

	out := c.Compress(data, 2_000)
	projected, ok := out["pokemon_25"].(map[string]any)
	if !ok {
		t.Fatalf("expected projected object, got %T", out["pokemon_25"])
	}
	if projected["name"] != "pikachu" || projected["base_experience"] != float64(112) {
		t.Fatalf("scalar fields missing: %v", projected)
	}
	if _, kept := projected["sprites"]; kept {
		t.Fatal("heavy field survived tier 1")
	}
	types := projected["types"].([]any)
	if len(types) != 1 || types[0] != "electric" {
		t.Fatalf("types not flattened: %v", types)
	}
	stats := projected["stats"].(map[string]any)
	if stats["speed"] != float64(90) {
		t.Fatalf("stats not flattened: %v", stats)
	}
}

func TestStripReplacesUnknownHeavyObjects(t *testing.T) {
	c := New(Config{LargeValueChars: 50, SampleKeys: 2}, CharEstimator())
	data := map[string]any{
		"machine_1": map[string]any{
			"alpha": strings.Repeat("a", 80),
			"beta":  "b",
			"gamma": "c",
		},
	}

	out := c.Compress(data, 200)
	placeholder := out["machine_1"].(map[string]any)
	if placeholder["type"] != "object" || placeholder["key_count"] != 3 {
		t.Fatalf("unexpected placeholder: %v", placeholder)
	}
	keys := placeholder["sample_keys"].([]string)
	if len(keys) != 2 || keys[0] != "alpha" {
		t.Fatalf("unexpected sample keys: %v", keys)
	}
}

func TestStripAloneSatisfiesLooseBudgets(t *testing.T) {
	c := New(Config{}, CharEstimator())
	longList := make([]any, 30)
	for i := range longList {
		longList[i] = fmt.Sprintf("item-%02d", i)
	}
	data := map[string]any{
		"pokemon_1": map[string]any{"name": "bulbasaur", "blob": strings.Repeat("z", 20_000)},
		"move_list": longList,
	}

	// The budget sits between the tier 1 and raw sizes, so stripping the
	// heavy payload must be enough and the list must survive untouched.
	out := c.Compress(data, 1_000)
	list, ok := out["move_list"].([]any)
	if !ok {
		t.Fatalf("list was summarized despite tier 1 sufficing: %v", out["move_list"])
	}
	if len(list) != 30 {
		t.Fatalf("list was shortened: %d items", len(list))
	}
}

func TestSummarizeBoundsCollections(t *testing.T) {
	c := New(Config{LargeValueChars: 100_000}, CharEstimator())
	longList := make([]any, 40)
	for i := range longList {
		longList[i] = fmt.Sprintf("berry-%02d", i)
	}
	wideMap := map[string]any{}
	for i := 0; i < 20; i++ {
		wideMap[fmt.Sprintf("field_%02d", i)] = i
	}
	data := map[string]any{"berry_all": longList, "machine_1": wideMap}

	out := c.Compress(data, 400)
	list := out["berry_all"].(map[string]any)
	if list["total_count"] != 40 {
		t.Fatalf("list summary wrong: %v", list)
	}
	if items := list["items"].([]any); len(items) != 3 || items[0] != "berry-00" {
		t.Fatalf("list prefix wrong: %v", items)
	}
	m := out["machine_1"].(map[string]any)
	if _, ok := m["_summary"]; !ok {
		t.Fatalf("map summary marker missing: %v", m)
	}
	// 5 kept entries plus the marker.
	if len(m) != 6 {
		t.Fatalf("map not bounded: %v", m)
	}
}

func TestCompressNeverGrowsTheEstimate(t *testing.T) {
	c := New(Config{}, CharEstimator())
	data := map[string]any{
		"pokemon_1": map[string]any{"name": "bulbasaur", "blob": strings.Repeat("z", 15_000)},
		"type_fire": map[string]any{"name": "fire", "pokemon": []any{}},
	}
	before := c.Estimate(data)

	for _, budget := range []int{before * 2, before / 2, 200, 50} {
		out := c.Compress(data, budget)
		if after := c.Estimate(out); after > before {
			t.Fatalf("budget %d: estimate grew from %d to %d", budget, before, after)
		}
	}
}

func TestDigestSummarizesEverything(t *testing.T) {
	c := New(Config{}, CharEstimator())
	data := map[string]any{}
	for i := 0; i < 50; i++ {
		data[fmt.Sprintf("type_%02d", i)] = map[string]any{
			"name":    fmt.Sprintf("type-%02d", i),
			"payload": strings.Repeat("p", 500),
		}
	}

	out := c.Compress(data, 100)
	overview, ok := out["data_overview"].(map[string]any)
	if !ok {
		t.Fatalf("expected digest, got %v", out)
	}
	if overview["total_sources"] != 50 {
		t.Fatalf("wrong source count: %v", overview)
	}
	types := overview["data_types"].([]string)
	if len(types) != 1 || types[0] != "type" {
		t.Fatalf("wrong data types: %v", types)
	}
	findings := out["key_findings"].([]any)
	if len(findings) != 2 {
		t.Fatalf("expected capped findings plus overflow line, got %v", findings)
	}
	if !strings.HasPrefix(findings[0].(string), "Analyzed: type-00") {
		t.Fatalf("unexpected first finding: %v", findings[0])
	}
	if findings[1] != "...and 40 more" {
		t.Fatalf("unexpected overflow line: %v", findings[1])
	}
}

func TestCompressIsIdempotentOnDigests(t *testing.T) {
	c := New(Config{}, CharEstimator())
	data := map[string]any{}
	for i := 0; i < 30; i++ {
		data[fmt.Sprintf("move_%02d", i)] = map[string]any{"name": fmt.Sprintf("move-%02d", i), "pad": strings.Repeat("q", 400)}
	}

	digest := c.Compress(data, 50)
	again := c.Compress(digest, 50)
	if c.Estimate(again) != c.Estimate(digest) {
		t.Fatal("re-compressing a digest changed it")
	}
	if _, ok := again["compression_note"]; !ok {
		t.Fatalf("digest shape lost: %v", again)
	}
}

func TestDigestFactsPreferMatchedValues(t *testing.T) {
	c := New(Config{}, CharEstimator())
	data := map[string]any{
		"type_fire": map[string]any{
			"matched_values": []any{"charmander", "vulpix"},
			"name":           "fire",
			"pad":            strings.Repeat("r", 2_000),
		},
	}

	out := c.Compress(data, 40)
	findings := out["key_findings"].([]any)
	if len(findings) == 0 || !strings.Contains(findings[0].(string), "charmander") {
		t.Fatalf("matched values not surfaced: %v", findings)
	}
	if strings.Contains(findings[0].(string), "fire") {
		t.Fatalf("identity field should be skipped when matches exist: %v", findings)
	}
}

func TestEstimatorFallbacks(t *testing.T) {
	if n := CharEstimator()("abcd"); n != 4 {
		t.Fatalf("char estimate = %d", n)
	}
	if n := RoughTokenEstimator()("abcdefgh"); n != 2 {
		t.Fatalf("rough estimate = %d", n)
	}
}
