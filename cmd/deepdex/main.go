package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/pokedeep/deepdex/pkg/budget"
	"github.com/pokedeep/deepdex/pkg/catalog"
	"github.com/pokedeep/deepdex/pkg/pokeapi"
	"github.com/pokedeep/deepdex/pkg/research"
	"github.com/pokedeep/deepdex/pkg/schedule"
)

type fileConfig struct {
	CatalogOverlay string          `yaml:"catalog_overlay"`
	Model          string          `yaml:"model"`
	API            pokeapi.Config  `yaml:"api"`
	Schedule       schedule.Config `yaml:"schedule"`
	Budget         budget.Config   `yaml:"budget"`
}

type entityFlags map[string][]string

func (e entityFlags) String() string { return "" }

func (e entityFlags) Set(value string) error {
	key, values, ok := strings.Cut(value, "=")
	if !ok {
		return fmt.Errorf("expected key=value1,value2, got %q", value)
	}
	e[key] = append(e[key], strings.Split(values, ",")...)
	return nil
}

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config file")
		endpoints  = flag.String("endpoints", "/type,/pokemon", "comma-separated endpoint identifiers")
		budgetSize = flag.Int("budget", 15000, "result size budget in estimator units (0 disables compression)")
		timeout    = flag.Duration("timeout", 2*time.Minute, "overall round deadline")
		listOnly   = flag.Bool("list", false, "list known endpoints and exit")
		verbose    = flag.Bool("verbose", false, "enable debug logging")
	)
	entities := entityFlags{}
	flag.Var(entities, "entity", "entity values as key=value1,value2 (repeatable)")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger().Level(zerolog.InfoLevel)
	if *verbose {
		log = log.Level(zerolog.DebugLevel)
	}

	cfg := fileConfig{}
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("read config")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatal().Err(err).Msg("parse config")
		}
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o"
	}

	registry, err := catalog.NewWithOverlay(catalog.LoadOverlay(cfg.CatalogOverlay))
	if err != nil {
		log.Fatal().Err(err).Msg("build catalog")
	}

	client := pokeapi.NewClient(cfg.API, log)
	scheduler := schedule.New(registry, client, cfg.Schedule, log)

	estimate, err := budget.TokenEstimator(cfg.Model)
	if err != nil {
		log.Warn().Err(err).Msg("tokenizer unavailable, using rough character-based estimate")
		estimate = budget.RoughTokenEstimator()
	}
	compressor := budget.New(cfg.Budget, estimate)

	engine := research.NewEngine(registry, scheduler, compressor, log)

	if *listOnly {
		for _, path := range engine.Endpoints() {
			fmt.Println(path)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	identifiers := strings.Split(*endpoints, ",")
	for i := range identifiers {
		identifiers[i] = strings.TrimSpace(identifiers[i])
	}

	results, err := engine.Run(ctx, identifiers, entities, *budgetSize)
	if err != nil {
		log.Fatal().Err(err).Msg("research round failed")
	}
	log.Info().Int("sources", len(results)).Int("api_calls", len(client.Calls())).Msg("round complete")

	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("encode results")
	}
	fmt.Println(string(out))
}
