package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/suvorovrain/ferari-mobgen/internal/batch"
	"github.com/suvorovrain/ferari-mobgen/internal/config"
	"github.com/suvorovrain/ferari-mobgen/internal/manifest"
	"github.com/suvorovrain/ferari-mobgen/pkg/mobgen"
)

const version = "0.1.0"

func usage() {
	fmt.Fprintf(os.Stderr, `mobgen — map fixture generator

Usage:
  mobgen generate [flags]   generate demo_map_<N>.json variants from a base map
  mobgen runs -db <path>    list runs recorded in a manifest database
  mobgen version            print the tool version

Running with no subcommand is the same as "generate". Run
"mobgen generate -h" for the generate flags.
`)
}

func main() {
	args := os.Args[1:]

	// Bare invocation and bare flags reproduce the original one-shot
	// behaviour: generate the reference scales from ./input.json.
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		os.Exit(runGenerate(args))
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "generate":
		os.Exit(runGenerate(rest))
	case "runs":
		os.Exit(runRuns(rest))
	case "version":
		fmt.Println("mobgen " + version)
	case "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		if hint := suggest(cmd); hint != "" {
			fmt.Fprintf(os.Stderr, "did you mean %q?\n", hint)
		}
		usage()
		os.Exit(2)
	}
}

func runGenerate(args []string) int {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to a YAML run config")
	input := fs.String("input", "", "Path to the base map document (default input.json)")
	outDir := fs.String("out", "", "Directory for generated artifacts (default .)")
	scales := fs.String("scales", "", "Comma-separated mob counts (default 500,5000,10000,100000,1000000)")
	seed := fs.Uint64("seed", 0, "Random seed; 0 derives one from the clock")
	dbPath := fs.String("db", "", "Optional bbolt manifest database recording each run")
	quiet := fs.Bool("quiet", false, "Suppress progress bars")
	fs.Parse(args)

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Printf("[CONFIG] %v", err)
			return 1
		}
		cfg = loaded
	}

	if *input != "" {
		cfg.InputPath = *input
	}
	if *outDir != "" {
		cfg.OutputDir = *outDir
	}
	if *scales != "" {
		parsed, err := config.ParseScales(*scales)
		if err != nil {
			log.Printf("[CONFIG] %v", err)
			return 1
		}
		cfg.Scales = parsed
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		log.Printf("[CONFIG] %v", err)
		return 1
	}

	base, err := mobgen.LoadDocument(cfg.InputPath)
	if err != nil {
		log.Printf("[GENERATE] %v", err)
		return 1
	}

	// Fatal precondition: no artifact is written when the player is missing.
	if _, err := base.Player(); err != nil {
		log.Printf("[GENERATE] %s: %v", cfg.InputPath, err)
		return 1
	}

	runSeed := cfg.Seed
	if runSeed == 0 {
		runSeed = uint64(time.Now().UnixNano())
	}

	gen := &mobgen.Generator{
		Catalog:  cfg.Catalog,
		CoordMin: cfg.CoordMin,
		CoordMax: cfg.CoordMax,
	}
	gen.Init(rand.New(rand.NewPCG(runSeed, runSeed^0x9e3779b97f4a7c15)))

	runner := &batch.Runner{Gen: gen, OutDir: cfg.OutputDir, Quiet: *quiet}

	runID := uuid.New().String()
	started := time.Now()
	log.Printf("[GENERATE] run %s: %d scales from %s (seed %d)",
		runID, len(cfg.Scales), cfg.InputPath, runSeed)

	results := runner.Run(base, cfg.Scales)

	run := manifest.Run{
		ID:        runID,
		Seed:      runSeed,
		StartedAt: started,
	}
	for _, res := range results {
		if res.Err != nil {
			run.Failures = append(run.Failures,
				fmt.Sprintf("scale %d: %v", res.Scale, res.Err))
			continue
		}
		run.Artifacts = append(run.Artifacts, manifest.Artifact{
			Scale: res.Scale,
			Path:  res.Path,
			Mobs:  res.Scale,
			Bytes: res.Bytes,
		})
	}
	run.FinishedAt = time.Now()

	if *dbPath != "" {
		if err := recordRun(*dbPath, run); err != nil {
			log.Printf("[MANIFEST] %v", err)
		}
	}

	if len(run.Failures) > 0 {
		log.Printf("[GENERATE] run %s finished with %d of %d scales failed:",
			runID, len(run.Failures), len(cfg.Scales))
		for _, failure := range run.Failures {
			log.Printf("[GENERATE]   %s", failure)
		}
		return 1
	}

	return 0
}

func recordRun(dbPath string, run manifest.Run) error {
	store, err := manifest.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Record(run)
}

func runRuns(args []string) int {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	dbPath := fs.String("db", "", "Path to the manifest database")
	fs.Parse(args)

	if *dbPath == "" {
		log.Print("[MANIFEST] -db is required")
		return 2
	}

	store, err := manifest.Open(*dbPath)
	if err != nil {
		log.Printf("[MANIFEST] %v", err)
		return 1
	}
	defer store.Close()

	runs, err := store.List()
	if err != nil {
		log.Printf("[MANIFEST] %v", err)
		return 1
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded")
		return 0
	}

	fmt.Printf("%-36s %-20s %-10s %-10s %s\n", "RUN ID", "STARTED", "ARTIFACTS", "FAILED", "TOTAL SIZE")
	for _, run := range runs {
		var total int64
		for _, artifact := range run.Artifacts {
			total += artifact.Bytes
		}
		fmt.Printf("%-36s %-20s %-10d %-10d %s\n",
			run.ID,
			run.StartedAt.Format("2006-01-02 15:04:05"),
			len(run.Artifacts),
			len(run.Failures),
			humanize.Bytes(uint64(total)))
	}

	return 0
}
