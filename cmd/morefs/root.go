// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/morefs/cmd/morefs/opts"
	"github.com/walteh/morefs/pkg/config"
	"github.com/walteh/morefs/pkg/log"
	"github.com/walteh/morefs/pkg/metrics"
	"github.com/walteh/morefs/pkg/morefs"
	"github.com/walteh/morefs/pkg/operation"
	"github.com/walteh/morefs/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// rootFlags holds the persistent flags; set flags override the config file
type rootFlags struct {
	configFile  string
	debug       bool
	verbose     bool
	async       bool
	parallel    bool
	cleanup     bool
	workers     int
	exclude     []string
	metricsFile string
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, f *rootFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.configFile, "config", "c", "", "config file path (default: .morefs.yaml, .morefs.yml or .morefs.hcl in the working directory)")
	pf.BoolVarP(&f.debug, "debug", "d", false, "enable debug logging")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "print every replicated entry")
	pf.BoolVar(&f.async, "async", false, "run operations on a separate goroutine and return as soon as the command is interrupted")
	pf.BoolVar(&f.parallel, "parallel", false, "copy trees with a pool of workers")
	pf.BoolVar(&f.cleanup, "cleanup", false, "remove a partially copied tree when a copy fails")
	pf.IntVarP(&f.workers, "workers", "j", 0, "size of the parallel worker pool (default: GOMAXPROCS)")
	pf.StringSliceVarP(&f.exclude, "exclude", "x", nil, "doublestar pattern to skip when copying trees (repeatable)")
	pf.StringVar(&f.metricsFile, "metrics-file", "", "write prometheus metrics to this file after the run")
}

// loadConfig reads the config named by the flag, or looks for one in the working directory
func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	if path != "" {
		return config.Load(ctx, path)
	}
	return config.Find(ctx, ".")
}

// applyFlags copies every flag the user set over the config
func applyFlags(cmd *cobra.Command, f *rootFlags, cfg *config.Config) error {
	changed := cmd.Flags().Changed
	if changed("workers") {
		cfg.Workers = f.workers
	}
	if changed("parallel") {
		cfg.Parallel = f.parallel
	}
	if changed("cleanup") {
		cfg.CleanupOnFailure = f.cleanup
	}
	if changed("exclude") {
		cfg.Exclude = append(cfg.Exclude, f.exclude...)
	}
	if changed("metrics-file") {
		cfg.MetricsFile = f.metricsFile
	}
	if f.debug {
		cfg.LogLevel = zerolog.DebugLevel.String()
	}
	return cfg.Validate()
}

// initRootOpts loads the config, applies flags and wires the observers into one morefs.FS
func initRootOpts(cmd *cobra.Command, f *rootFlags, o *opts.RootOpts) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(ctx, f.configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	if err := applyFlags(cmd, f, cfg); err != nil {
		return errors.Errorf("applying flags: %w", err)
	}

	zlog := setupLogging(cfg.Level())
	logger := log.NewWithZerolog(cmd.OutOrStdout(), zlog)
	logger.SetVerbose(f.verbose)
	tracker := status.New(&zlog)
	collector := metrics.New()

	fsys := morefs.New(append(cfg.Options(),
		morefs.WithObserver(morefs.Observers(logger, tracker, collector)),
	)...)

	*o = opts.RootOpts{
		Config:  cfg,
		FS:      fsys,
		Runner:  operation.NewRunner(&zlog, f.async),
		Tracker: tracker,
		Metrics: collector,
		Verbose: f.verbose,
	}

	zlog.Debug().Str("config", cfg.String()).Int("workers", fsys.Workers()).Msg("options ready")
	cmd.SetContext(log.NewContext(ctx, logger))
	return nil
}

// setupLogging builds the stderr console logger
func setupLogging(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}
