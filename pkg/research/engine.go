// Package research wires the catalog, scheduler, and compressor into one
// fetch-extract-compress round.
package research

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pokedeep/deepdex/pkg/budget"
	"github.com/pokedeep/deepdex/pkg/catalog"
	"github.com/pokedeep/deepdex/pkg/extract"
	"github.com/pokedeep/deepdex/pkg/schedule"
)

// Engine runs complete research rounds. It holds no per-call state.
type Engine struct {
	registry   *catalog.Registry
	scheduler  *schedule.Scheduler
	compressor *budget.Compressor
	log        zerolog.Logger
}

func NewEngine(registry *catalog.Registry, scheduler *schedule.Scheduler, compressor *budget.Compressor, log zerolog.Logger) *Engine {
	return &Engine{
		registry:   registry,
		scheduler:  scheduler,
		compressor: compressor,
		log:        log,
	}
}

// Endpoints returns the identifiers a caller may legally request.
func (e *Engine) Endpoints() []string {
	return e.registry.ListAll()
}

// Run schedules one round for the given identifiers and entities and
// compresses the aggregated result to targetBudget. A non-positive budget
// skips compression. The result map is best-effort: partial fetch failures
// never surface as an error, only a fully empty round does.
func (e *Engine) Run(ctx context.Context, identifiers []string, entities map[string][]string, targetBudget int) (map[string]any, error) {
	records, err := e.scheduler.Schedule(ctx, identifiers, entities)
	if err != nil {
		return nil, err
	}

	results, err := toGeneric(records)
	if err != nil {
		return nil, fmt.Errorf("convert records: %w", err)
	}

	if targetBudget > 0 {
		before := e.compressor.Estimate(results)
		results = e.compressor.Compress(results, targetBudget)
		if after := e.compressor.Estimate(results); after < before {
			e.log.Debug().Int("before", before).Int("after", after).Msg("compressed research results")
		}
	}
	return results, nil
}

// toGeneric converts typed records into the decoded-JSON shape the
// compressor operates on.
func toGeneric(records map[string]extract.Record) (map[string]any, error) {
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
