// Package main runs the workbench once: generate a seeded random series,
// label it, chart it and print the diagnostics report.
//
// Configuration comes from defaults, the YAML file named by $TSDIAG_CONFIG
// and environment overrides (see package config).
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sartorproj/tsdiag/config"
	"github.com/sartorproj/tsdiag/logger"
	"github.com/sartorproj/tsdiag/pipeline"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)
	logger.SetGlobalLogger(log)

	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("Time series diagnostics workbench")
	fmt.Println(strings.Repeat("=", 80))

	report, err := pipeline.Run(*cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}

	if err := report.Print(os.Stdout); err != nil {
		log.Error().Err(err).Msg("print report")
		os.Exit(1)
	}
	fmt.Println(strings.Repeat("=", 80))
}
