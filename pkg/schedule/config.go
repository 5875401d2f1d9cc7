package schedule

// Default caps mirror how much payload each result shape tends to return:
// species listings are the heaviest, so they get the fewest samples.
const (
	DefaultMaxEndpoints        = 15
	DefaultRandomPoolThreshold = 500
	DefaultFallbackEndpoints   = 5
	DefaultFallbackSamples     = 2
)

// ShapeCaps holds per-result-shape sample limits.
type ShapeCaps struct {
	Species int `yaml:"species"`
	Pokemon int `yaml:"pokemon"`
	Other   int `yaml:"other"`
}

// Config controls one scheduler's breadth and sampling behavior.
type Config struct {
	// MaxEndpoints bounds how many endpoints one round may fan out to.
	MaxEndpoints int `yaml:"max_endpoints"`

	// EntitySamples caps how many caller-supplied entity values are tried
	// per endpoint; DefaultSamples caps the fallback pool prefix.
	EntitySamples  ShapeCaps `yaml:"entity_samples"`
	DefaultSamples ShapeCaps `yaml:"default_samples"`

	// RandomPoolThreshold is the default-pool size above which candidates
	// are drawn by uniform random sample instead of a plain prefix, so wide
	// pools do not always exercise the same low-numbered identifiers.
	RandomPoolThreshold int `yaml:"random_pool_threshold"`

	// SampleSeed seeds the default sampler. Fixed by default so rounds are
	// reproducible; set to a varying value to randomize.
	SampleSeed int64 `yaml:"sample_seed"`

	// FallbackEndpoints and FallbackSamples bound the flat fallback round
	// that runs when a full round yields nothing.
	FallbackEndpoints int `yaml:"fallback_endpoints"`
	FallbackSamples   int `yaml:"fallback_samples"`
}

func (c Config) WithDefaults() Config {
	if c.MaxEndpoints <= 0 {
		c.MaxEndpoints = DefaultMaxEndpoints
	}
	c.EntitySamples = c.EntitySamples.withDefaults(2, 3, 4)
	c.DefaultSamples = c.DefaultSamples.withDefaults(3, 4, 5)
	if c.RandomPoolThreshold <= 0 {
		c.RandomPoolThreshold = DefaultRandomPoolThreshold
	}
	if c.FallbackEndpoints <= 0 {
		c.FallbackEndpoints = DefaultFallbackEndpoints
	}
	if c.FallbackSamples <= 0 {
		c.FallbackSamples = DefaultFallbackSamples
	}
	return c
}

func (c ShapeCaps) withDefaults(species, pokemon, other int) ShapeCaps {
	if c.Species <= 0 {
		c.Species = species
	}
	if c.Pokemon <= 0 {
		c.Pokemon = pokemon
	}
	if c.Other <= 0 {
		c.Other = other
	}
	return c
}
