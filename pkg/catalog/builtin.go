package catalog

import "strconv"

// builtinDescriptors is the full PokeAPI endpoint set the research core
// knows how to schedule. Shapes and extraction paths follow the payloads
// pokeapi.co actually returns.
func builtinDescriptors() []Descriptor {
	return []Descriptor{
		// Primary filters returning species references.
		{
			Path:           "/pokemon-color",
			Shape:          ShapeSpecies,
			Tier:           TierPrimaryFilter,
			EntityKey:      "colors",
			ExtractionPath: ParsePath("pokemon_species.name"),
			DefaultSamples: []string{"red", "blue", "green"},
			Description:    "Filter Pokemon by color",
		},
		{
			Path:           "/pokemon-shape",
			Shape:          ShapeSpecies,
			Tier:           TierPrimaryFilter,
			EntityKey:      "shapes",
			ExtractionPath: ParsePath("pokemon_species.name"),
			DefaultSamples: []string{"1", "2", "3"},
			Description:    "Filter Pokemon by shape",
		},
		{
			Path:           "/pokemon-habitat",
			Shape:          ShapeSpecies,
			Tier:           TierPrimaryFilter,
			EntityKey:      "locations",
			ExtractionPath: ParsePath("pokemon_species.name"),
			DefaultSamples: []string{"sea", "forest", "mountain"},
			Description:    "Filter Pokemon by habitat",
		},
		{
			Path:           "/generation",
			Shape:          ShapeSpecies,
			Tier:           TierPrimaryFilter,
			EntityKey:      "generations",
			ExtractionPath: ParsePath("pokemon_species.name"),
			DefaultSamples: []string{"1", "2", "3"},
			Description:    "Filter Pokemon by generation",
		},
		{
			Path:           "/egg-group",
			Shape:          ShapeSpecies,
			Tier:           TierPrimaryFilter,
			ExtractionPath: ParsePath("pokemon_species.name"),
			DefaultSamples: []string{"1", "2", "3"},
			Description:    "Filter Pokemon by egg group",
		},
		{
			Path:           "/pokedex",
			Shape:          ShapeSpecies,
			Tier:           TierPrimaryFilter,
			ExtractionPath: ParsePath("pokemon_entries.pokemon_species.name"),
			DefaultSamples: []string{"1", "2"}, // national, kanto
			Description:    "Pokedex entry listing",
		},

		// Primary filters returning pokemon references.
		{
			Path:           "/type",
			Shape:          ShapePokemon,
			Tier:           TierPrimaryFilter,
			EntityKey:      "types",
			ExtractionPath: ParsePath("pokemon.pokemon.name"),
			DefaultSamples: []string{"fire", "water", "grass", "electric"},
			Description:    "Filter Pokemon by type",
		},
		{
			Path:           "/ability",
			Shape:          ShapePokemon,
			Tier:           TierPrimaryFilter,
			EntityKey:      "abilities",
			ExtractionPath: ParsePath("pokemon.pokemon.name"),
			DefaultSamples: []string{"levitate", "intimidate", "sturdy"},
			Description:    "Filter Pokemon by ability",
		},

		// Secondary filters.
		{
			Path:           "/move",
			Shape:          ShapePokemon,
			Tier:           TierSecondaryFilter,
			EntityKey:      "moves",
			ExtractionPath: ParsePath("learned_by_pokemon.name"),
			DefaultSamples: []string{"tackle", "thunderbolt", "surf"},
			Description:    "Filter Pokemon by move",
		},
		{
			Path:           "/item",
			Shape:          ShapePokemon,
			Tier:           TierSecondaryFilter,
			EntityKey:      "items",
			ExtractionPath: ParsePath("held_by_pokemon.pokemon.name"),
			DefaultSamples: []string{"poke-ball", "master-ball", "potion"},
			Description:    "Game items and their holders",
		},
		{
			Path:           "/gender",
			Shape:          ShapeSpecies,
			Tier:           TierSecondaryFilter,
			ExtractionPath: ParsePath("pokemon_species_details.pokemon_species.name"),
			DefaultSamples: []string{"1", "2", "3"},
			Description:    "Gender distribution",
		},
		{
			Path:           "/growth-rate",
			Shape:          ShapeSpecies,
			Tier:           TierSecondaryFilter,
			ExtractionPath: ParsePath("pokemon_species.name"),
			DefaultSamples: []string{"1", "2", "3"},
			Description:    "Experience growth rate",
		},
		{
			Path:           "/evolution-chain",
			Shape:          ShapeOther,
			Tier:           TierSecondaryFilter,
			DefaultSamples: []string{"1", "2", "3", "4"},
			Description:    "Pokemon evolution chain",
		},
		{
			Path:           "/evolution-trigger",
			Shape:          ShapeOther,
			Tier:           TierSecondaryFilter,
			DefaultSamples: []string{"1", "2", "3"},
			Description:    "Evolution trigger conditions",
		},
		{
			Path:           "/location",
			Shape:          ShapeOther,
			Tier:           TierSecondaryFilter,
			EntityKey:      "locations",
			DefaultSamples: []string{"1", "2", "3"},
			Description:    "Game locations",
		},
		{
			Path:           "/location-area",
			Shape:          ShapeOther,
			Tier:           TierSecondaryFilter,
			DefaultSamples: []string{"1", "2", "3"},
			Description:    "Location areas",
		},
		{
			Path:           "/region",
			Shape:          ShapeOther,
			Tier:           TierSecondaryFilter,
			DefaultSamples: []string{"1", "2", "3"},
			Description:    "Game regions",
		},
		{
			Path:           "/berry",
			Shape:          ShapeOther,
			Tier:           TierSecondaryFilter,
			EntityKey:      "berries",
			DefaultSamples: []string{"cheri", "chesto", "pecha"},
			Description:    "Pokemon berries",
		},
		{
			Path:           "/berry-flavor",
			Shape:          ShapeOther,
			Tier:           TierSecondaryFilter,
			DefaultSamples: []string{"1", "2", "3"},
			Description:    "Berry flavors",
		},
		{
			Path:           "/contest-type",
			Shape:          ShapeOther,
			Tier:           TierSecondaryFilter,
			DefaultSamples: []string{"cool", "beauty", "cute"},
			Description:    "Contest types",
		},
		{
			Path:           "/contest-effect",
			Shape:          ShapeOther,
			Tier:           TierSecondaryFilter,
			DefaultSamples: []string{"1", "2", "3"},
			Description:    "Contest effects",
		},
		{
			Path:           "/encounter-method",
			Shape:          ShapeOther,
			Tier:           TierSecondaryFilter,
			DefaultSamples: []string{"1", "2", "3"},
			Description:    "Encounter methods",
		},
		{
			Path:           "/encounter-condition",
			Shape:          ShapeOther,
			Tier:           TierSecondaryFilter,
			DefaultSamples: []string{"1", "2", "3"},
			Description:    "Encounter conditions",
		},
		{
			Path:           "/characteristic",
			Shape:          ShapeOther,
			Tier:           TierSecondaryFilter,
			DefaultSamples: []string{"1", "2", "3"},
			Description:    "Characteristics",
		},
		{
			Path:           "/nature",
			Shape:          ShapeOther,
			Tier:           TierSecondaryFilter,
			EntityKey:      "natures",
			DefaultSamples: []string{"adamant", "modest", "timid"},
			Description:    "Pokemon natures",
		},
		{
			Path:           "/stat",
			Shape:          ShapeOther,
			Tier:           TierSecondaryFilter,
			EntityKey:      "stats",
			DefaultSamples: []string{"hp", "attack", "defense"},
			Description:    "Pokemon stats",
		},
		{
			Path:           "/pokeathlon-stat",
			Shape:          ShapeOther,
			Tier:           TierSecondaryFilter,
			DefaultSamples: []string{"1", "2", "3"},
			Description:    "Pokeathlon stats",
		},
		{
			Path:           "/move-category",
			Shape:          ShapeOther,
			Tier:           TierSecondaryFilter,
			DefaultSamples: []string{"1", "2", "3"},
			Description:    "Move categories",
		},

		// Detail endpoints: never used as filters, so no extraction path.
		// The wide numeric default pool is only drawn from (randomly) by the
		// fallback round when a query produced no usable candidates.
		{
			Path:           "/pokemon",
			Shape:          ShapeOther,
			Tier:           TierDetailOnly,
			EntityKey:      "pokemon_names",
			DefaultSamples: numericSamples(1, 1000),
			Description:    "Pokemon detailed battle data",
		},
		{
			Path:           "/pokemon-species",
			Shape:          ShapeOther,
			Tier:           TierDetailOnly,
			EntityKey:      "pokemon_names",
			DefaultSamples: numericSamples(1, 1000),
			Description:    "Pokemon species detail",
		},
		{
			Path:           "/pokemon-form",
			Shape:          ShapeOther,
			Tier:           TierDetailOnly,
			EntityKey:      "pokemon_names",
			DefaultSamples: []string{"1", "25"},
			Description:    "Pokemon form detail",
		},
	}
}

func numericSamples(from, to int) []string {
	out := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, strconv.Itoa(i))
	}
	return out
}
