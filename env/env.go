//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

// Package env implements the global configuration of ring
// evaluation sessions.
package env

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"os"
	"time"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

// Transports.
const (
	TransportChan = "chan"
	TransportPipe = "pipe"
)

// Config defines the configuration of ring evaluation sessions.
// Config must not be modified after being passed to a session. It is
// safe for concurrent use by multiple sessions as they do not modify
// it.
type Config struct {
	Rand           io.Reader     `yaml:"-"`
	Transport      string        `yaml:"transport"`
	Codec          string        `yaml:"codec"`
	ReceiveTimeout time.Duration `yaml:"receive-timeout"`
	VerifySchedule bool          `yaml:"verify-schedule"`
	LogLevel       string        `yaml:"log-level"`
	Seeds          []string      `yaml:"seeds"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Transport:      TransportChan,
		Codec:          "json",
		VerifySchedule: true,
		LogLevel:       "info",
	}
}

// Load loads the configuration from the YAML file. Fields not set in
// the file keep their default values.
func Load(file string) (*Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	config, err := Parse(data)
	if err != nil {
		return nil, xerrors.Errorf("%s: %w", file, err)
	}
	return config, nil
}

// Parse parses the YAML configuration data.
func Parse(data []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration values.
func (config *Config) Validate() error {
	switch config.Transport {
	case "", TransportChan, TransportPipe:
	default:
		return xerrors.Errorf("unknown transport '%s'", config.Transport)
	}
	if config.ReceiveTimeout < 0 {
		return xerrors.Errorf("invalid receive timeout %v",
			config.ReceiveTimeout)
	}
	if len(config.Seeds) > 3 {
		return xerrors.Errorf("too many seeds: %d", len(config.Seeds))
	}
	for idx := range config.Seeds {
		if _, err := config.Seed(idx); err != nil {
			return err
		}
	}
	return nil
}

// GetRandom returns the source of entropy for seeds and session
// randomness.
func (config *Config) GetRandom() io.Reader {
	if config.Rand != nil {
		return config.Rand
	}
	return rand.Reader
}

// Seed returns the configured randomness seed of the party. It
// returns nil if the seed is not configured.
func (config *Config) Seed(party int) ([]byte, error) {
	if party >= len(config.Seeds) || len(config.Seeds[party]) == 0 {
		return nil, nil
	}
	seed, err := hex.DecodeString(config.Seeds[party])
	if err != nil {
		return nil, xerrors.Errorf("seed %d: %w", party, err)
	}
	if len(seed) != 32 {
		return nil, xerrors.Errorf("seed %d: invalid length %d", party,
			len(seed))
	}
	return seed, nil
}
