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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/morefs/pkg/morefs"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// DefaultFiles are the names Find looks for, in order
var DefaultFiles = []string{".morefs.yaml", ".morefs.yml", ".morefs.hcl"}

// 📚 Config holds the defaults for every morefs command
type Config struct {
	Workers          int      `yaml:"workers,omitempty" hcl:"workers,optional"`
	Parallel         bool     `yaml:"parallel,omitempty" hcl:"parallel,optional"`
	Exclude          []string `yaml:"exclude,omitempty" hcl:"exclude,optional"`
	CleanupOnFailure bool     `yaml:"cleanup_on_failure,omitempty" hcl:"cleanup_on_failure,optional"`
	LogLevel         string   `yaml:"log_level,omitempty" hcl:"log_level,optional"`
	MetricsFile      string   `yaml:"metrics_file,omitempty" hcl:"metrics_file,optional"`

	location string
}

// 🏭 Default returns a validated config with no file behind it
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	cfg.location = path

	return cfg, nil
}

// 🔍 Find loads the first of DefaultFiles present in dir, or returns Default when there is none
func Find(ctx context.Context, dir string) (*Config, error) {
	for _, name := range DefaultFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Errorf("checking config file %s: %w", path, err)
		}
		return Load(ctx, path)
	}
	zerolog.Ctx(ctx).Debug().Str("dir", dir).Msg("no config file, using defaults")
	return Default(), nil
}

// 🔍 Validate checks if the configuration is valid and fills in defaults
func (cfg *Config) Validate() error {
	if cfg.Workers < 0 {
		return errors.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	if err := morefs.ValidateExclude(cfg.Exclude...); err != nil {
		return errors.Errorf("exclude: %w", err)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = zerolog.InfoLevel.String()
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return errors.Errorf("log_level: %w", err)
	}

	if cfg.Workers == 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.MetricsFile != "" {
		cfg.MetricsFile = filepath.Clean(cfg.MetricsFile)
	}

	return nil
}

// Level returns the parsed log level; Validate must have succeeded
func (cfg *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Location is the file the config was loaded from, empty for defaults
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔧 Options translates the config into morefs options
func (cfg *Config) Options() []morefs.Option {
	opts := []morefs.Option{morefs.WithWorkers(cfg.Workers)}
	if len(cfg.Exclude) > 0 {
		opts = append(opts, morefs.WithExclude(cfg.Exclude...))
	}
	return opts
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	src := cfg.location
	if src == "" {
		src = "defaults"
	}
	return fmt.Sprintf("%s: workers=%d parallel=%t exclude=%d cleanup=%t", src, cfg.Workers, cfg.Parallel, len(cfg.Exclude), cfg.CleanupOnFailure)
}
