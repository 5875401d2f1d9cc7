package catalog

import "strings"

// ResultShape classifies what kind of domain object a raw endpoint result
// represents. The scheduler uses it to pick sample caps, and the record
// builder uses it to pick which fields feed the context snippet.
type ResultShape string

const (
	// ShapePokemon marks endpoints whose payload carries Pokemon references.
	ShapePokemon ResultShape = "pokemon"
	// ShapeSpecies marks endpoints whose payload carries species references.
	// Species payloads tend to be the largest, so they get the smallest caps.
	ShapeSpecies ResultShape = "pokemon_species"
	// ShapeOther marks everything else: detail records, auxiliary game data.
	ShapeOther ResultShape = "other"
)

// Tier is the scheduling priority class of an endpoint. Lower values narrow
// the candidate space more per call and are dispatched first.
type Tier int

const (
	TierPrimaryFilter Tier = iota
	TierSecondaryFilter
	TierDetailOnly
)

func (t Tier) String() string {
	switch t {
	case TierPrimaryFilter:
		return "primary_filter"
	case TierSecondaryFilter:
		return "secondary_filter"
	case TierDetailOnly:
		return "detail_only"
	default:
		return "unknown"
	}
}

// Descriptor is the static metadata record for one fetchable endpoint.
// Descriptors are immutable after registry construction.
type Descriptor struct {
	// Path is the canonical endpoint route, unique across the registry.
	Path string

	Shape ResultShape
	Tier  Tier

	// EntityKey names the entity bucket in the caller's entity map that
	// supplies candidate values for this endpoint. Empty means the endpoint
	// only runs on DefaultSamples.
	EntityKey string

	// ExtractionPath is the field path the extraction engine walks through
	// the decoded result. Empty means no structured extraction: the record
	// builder falls back to a basic summary. Detail-only endpoints must
	// leave it empty.
	ExtractionPath []string

	// DefaultSamples are the values tried when the caller supplies no
	// matching entities.
	DefaultSamples []string

	Description string
}

// ParsePath splits a dot-separated extraction path declaration.
func ParsePath(decl string) []string {
	decl = strings.TrimSpace(decl)
	if decl == "" {
		return nil
	}
	return strings.Split(decl, ".")
}
