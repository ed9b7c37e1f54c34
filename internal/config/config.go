package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/suvorovrain/ferari-mobgen/pkg/mobgen"
)

// Config holds one generation run's parameters. YAML fields mirror the
// generate flags; any flag the user sets overrides the file value.
type Config struct {
	InputPath string              `yaml:"input"`
	OutputDir string              `yaml:"output_dir"`
	Scales    []int               `yaml:"scales"`
	Seed      uint64              `yaml:"seed"`
	Catalog   []mobgen.AssetClass `yaml:"asset_catalog"`
	CoordMin  int                 `yaml:"coord_min"`
	CoordMax  int                 `yaml:"coord_max"`
}

// Default returns the reference behaviour: input.json in the working
// directory, artifacts beside it, the five demo scales, clock-derived seed.
func Default() Config {
	return Config{
		InputPath: "input.json",
		OutputDir: ".",
		Scales:    []int{500, 5000, 10000, 100000, 1000000},
		CoordMin:  mobgen.CoordMin,
		CoordMax:  mobgen.CoordMax,
	}
}

// Load reads a YAML run config layered over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate reports configuration errors before a run starts.
func (c Config) Validate() error {
	if len(c.Scales) == 0 {
		return errors.New("no scales configured")
	}

	for _, n := range c.Scales {
		if n <= 0 {
			return fmt.Errorf("scale must be positive, got %d", n)
		}
	}

	if c.CoordMin > c.CoordMax {
		return fmt.Errorf("coordinate range [%d, %d] is inverted", c.CoordMin, c.CoordMax)
	}

	for _, class := range c.Catalog {
		if class.Tag == "" {
			return errors.New("asset catalog entry has an empty tag")
		}
		if class.Speed <= 0 {
			return fmt.Errorf("asset %s has non-positive speed %v", class.Tag, class.Speed)
		}
	}

	return nil
}

// ParseScales parses a comma-separated scale list from a flag value.
func ParseScales(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	scales := make([]int, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid scale %q: %w", part, err)
		}
		if n <= 0 {
			return nil, fmt.Errorf("scale must be positive, got %d", n)
		}

		scales = append(scales, n)
	}

	if len(scales) == 0 {
		return nil, errors.New("empty scale list")
	}

	return scales, nil
}
