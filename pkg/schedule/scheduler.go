// Package schedule fans fetch requests out against the endpoint catalog and
// funnels every successful result through the extraction engine.
package schedule

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"github.com/pokedeep/deepdex/pkg/catalog"
	"github.com/pokedeep/deepdex/pkg/extract"
)

// ErrEmptyRound signals that neither the main round nor the flat fallback
// produced a single successful record.
var ErrEmptyRound = errors.New("scheduling round produced no records")

// Fetcher is the injected resource-fetch service. Implementations own all
// I/O concerns (pacing, retry, timeouts); the scheduler only sees a result
// or an error per call.
type Fetcher interface {
	Fetch(ctx context.Context, resourcePath, value string) (any, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, resourcePath, value string) (any, error)

func (f FetcherFunc) Fetch(ctx context.Context, resourcePath, value string) (any, error) {
	return f(ctx, resourcePath, value)
}

// Scheduler runs tier-ordered, concurrency-bounded fetch rounds. It holds no
// mutable state between calls and is safe for concurrent use.
type Scheduler struct {
	registry *catalog.Registry
	fetcher  Fetcher
	sampler  Sampler
	cfg      Config
	log      zerolog.Logger
}

// New creates a scheduler. A nil sampler falls back to the seeded default.
func New(registry *catalog.Registry, fetcher Fetcher, cfg Config, log zerolog.Logger) *Scheduler {
	cfg = cfg.WithDefaults()
	return &Scheduler{
		registry: registry,
		fetcher:  fetcher,
		sampler:  NewSampler(cfg.SampleSeed),
		cfg:      cfg,
		log:      log,
	}
}

// WithSampler replaces the candidate sampler, mainly for tests and callers
// that want true randomness.
func (s *Scheduler) WithSampler(sampler Sampler) *Scheduler {
	if sampler != nil {
		s.sampler = sampler
	}
	return s
}

type fetchTask struct {
	desc  catalog.Descriptor
	value string
	key   string
}

type taskOutcome struct {
	key    string
	record extract.Record
	err    error
}

// Schedule resolves identifiers against the catalog, fans the resulting
// tasks out concurrently, and returns the aggregated record map. A round
// that yields nothing is retried once with the flat fallback strategy; only
// a fully empty fallback surfaces ErrEmptyRound.
func (s *Scheduler) Schedule(ctx context.Context, identifiers []string, entities map[string][]string) (map[string]extract.Record, error) {
	roundID := xid.New().String()
	log := s.log.With().Str("round_id", roundID).Logger()

	ordered := s.orderByTier(identifiers, log)
	if len(ordered) > s.cfg.MaxEndpoints {
		ordered = ordered[:s.cfg.MaxEndpoints]
	}

	tasks := s.buildTasks(ordered, entities, s.cfg.EntitySamples, s.cfg.DefaultSamples, "")
	log.Debug().Int("endpoints", len(ordered)).Int("tasks", len(tasks)).Msg("dispatching scheduling round")

	results := s.dispatch(ctx, tasks, log)
	if len(results) > 0 {
		return results, nil
	}

	log.Warn().Msg("round yielded no records, running flat fallback")
	results = s.fallbackRound(ctx, ordered, entities, log)
	if len(results) == 0 {
		return results, ErrEmptyRound
	}
	return results, nil
}

// orderByTier partitions identifiers into primary/secondary/detail buckets,
// preserving caller order within each bucket, and drops identifiers the
// catalog does not know.
func (s *Scheduler) orderByTier(identifiers []string, log zerolog.Logger) []catalog.Descriptor {
	buckets := map[catalog.Tier][]catalog.Descriptor{}
	for _, id := range identifiers {
		desc, err := s.registry.Lookup(id)
		if err != nil {
			log.Warn().Str("endpoint", id).Msg("skipping unknown endpoint")
			continue
		}
		buckets[desc.Tier] = append(buckets[desc.Tier], desc)
	}
	ordered := make([]catalog.Descriptor, 0, len(identifiers))
	for _, tier := range []catalog.Tier{catalog.TierPrimaryFilter, catalog.TierSecondaryFilter, catalog.TierDetailOnly} {
		ordered = append(ordered, buckets[tier]...)
	}
	return ordered
}

// buildTasks resolves each endpoint's candidate set and produces one task
// per (endpoint, value) pair. keyPrefix tags fallback-round keys.
func (s *Scheduler) buildTasks(descriptors []catalog.Descriptor, entities map[string][]string, entityCaps, defaultCaps ShapeCaps, keyPrefix string) []fetchTask {
	tasks := make([]fetchTask, 0, len(descriptors))
	for _, desc := range descriptors {
		for _, value := range s.candidatesFor(desc, entities, entityCaps, defaultCaps) {
			tasks = append(tasks, fetchTask{
				desc:  desc,
				value: value,
				key:   keyPrefix + resultKey(desc.Path, value),
			})
		}
	}
	return tasks
}

func (s *Scheduler) candidatesFor(desc catalog.Descriptor, entities map[string][]string, entityCaps, defaultCaps ShapeCaps) []string {
	if desc.EntityKey != "" {
		if values := entities[desc.EntityKey]; len(values) > 0 {
			return prefix(values, capFor(desc.Shape, entityCaps))
		}
	}
	if len(desc.DefaultSamples) == 0 {
		return nil
	}
	limit := capFor(desc.Shape, defaultCaps)
	if len(desc.DefaultSamples) > s.cfg.RandomPoolThreshold {
		return s.sampler.Sample(desc.DefaultSamples, limit)
	}
	return prefix(desc.DefaultSamples, limit)
}

// dispatch runs every task concurrently and collects the successes. Task
// failures are logged and dropped; they never abort sibling tasks.
func (s *Scheduler) dispatch(ctx context.Context, tasks []fetchTask, log zerolog.Logger) map[string]extract.Record {
	outcomes := make([]taskOutcome, len(tasks))
	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		go func(i int, task fetchTask) {
			defer wg.Done()
			raw, err := s.fetcher.Fetch(ctx, task.desc.Path, task.value)
			if err != nil {
				outcomes[i] = taskOutcome{key: task.key, err: err}
				return
			}
			outcomes[i] = taskOutcome{key: task.key, record: extract.Build(raw, task.desc)}
		}(i, task)
	}
	wg.Wait()

	results := make(map[string]extract.Record, len(tasks))
	for _, outcome := range outcomes {
		if outcome.err != nil {
			log.Warn().Err(outcome.err).Str("key", outcome.key).Msg("fetch task failed")
			continue
		}
		results[outcome.key] = outcome.record
	}
	return results
}

// fallbackRound is the flat second-chance strategy: a few endpoints, tight
// sample caps, and a fixed minimal identifier set if even that produces no
// tasks.
func (s *Scheduler) fallbackRound(ctx context.Context, descriptors []catalog.Descriptor, entities map[string][]string, log zerolog.Logger) map[string]extract.Record {
	if len(descriptors) > s.cfg.FallbackEndpoints {
		descriptors = descriptors[:s.cfg.FallbackEndpoints]
	}
	caps := ShapeCaps{
		Species: s.cfg.FallbackSamples,
		Pokemon: s.cfg.FallbackSamples,
		Other:   s.cfg.FallbackSamples,
	}
	tasks := s.buildTasks(descriptors, entities, caps, caps, "fallback_")

	if len(tasks) == 0 {
		log.Warn().Msg("no fallback tasks, using minimal identifier set")
		if desc, err := s.registry.Lookup("/pokemon"); err == nil {
			for _, value := range []string{"1", "25"} {
				tasks = append(tasks, fetchTask{
					desc:  desc,
					value: value,
					key:   "emergency_" + resultKey(desc.Path, value),
				})
			}
		}
	}

	log.Debug().Int("tasks", len(tasks)).Msg("dispatching fallback round")
	return s.dispatch(ctx, tasks, log)
}

func resultKey(path, value string) string {
	return strings.TrimPrefix(path, "/") + "_" + value
}

func capFor(shape catalog.ResultShape, caps ShapeCaps) int {
	switch shape {
	case catalog.ShapeSpecies:
		return caps.Species
	case catalog.ShapePokemon:
		return caps.Pokemon
	default:
		return caps.Other
	}
}

func prefix(values []string, limit int) []string {
	if len(values) <= limit {
		return values
	}
	return values[:limit]
}
