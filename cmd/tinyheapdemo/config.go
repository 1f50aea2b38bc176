package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/embeddedgo/tinyheap/unsafex/malloc"
)

// fileConfig mirrors the fields of malloc.Config that make sense to load
// from a file; CriticalEnter/CriticalExit and DebugLog are host-code hooks
// and have no serializable form.
type fileConfig struct {
	ArenaSizeBytes int    `yaml:"arena_size_bytes"`
	CellSize       int    `yaml:"cell_size"`
	Fit            string `yaml:"fit"`
	DebugLogLevel  int    `yaml:"debug_log_level"`
	TraceDepth     int    `yaml:"trace_depth"`
}

func loadConfig(path string) (malloc.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return malloc.Config{}, fmt.Errorf("tinyheapdemo: reading config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return malloc.Config{}, fmt.Errorf("tinyheapdemo: parsing config: %w", err)
	}

	fit, err := parseFitPolicy(fc.Fit)
	if err != nil {
		return malloc.Config{}, err
	}

	return malloc.Config{
		ArenaSizeBytes: fc.ArenaSizeBytes,
		CellSize:       fc.CellSize,
		Fit:            fit,
		DebugLogLevel:  fc.DebugLogLevel,
		TraceDepth:     fc.TraceDepth,
	}, nil
}

func parseFitPolicy(s string) (malloc.FitPolicy, error) {
	switch s {
	case "", "best":
		return malloc.FitBestFit, nil
	case "first":
		return malloc.FitFirstFit, nil
	default:
		return 0, fmt.Errorf("tinyheapdemo: unknown fit policy %q (want \"best\" or \"first\")", s)
	}
}
