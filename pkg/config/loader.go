// Package config fills configuration structs from the environment and an
// optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"
)

// Load parses environment variables into the provided struct.
// The struct should use `env` tags to define mappings.
//
// Example:
//
//	type Config struct {
//	    Port     int    `env:"HTTP_PORT" envDefault:"8080" yaml:"port"`
//	    LogLevel string `env:"LOG_LEVEL" envDefault:"info" yaml:"log_level"`
//	}
func Load(cfg any) error {
	return LoadWithPrefix(cfg, "")
}

// LoadWithPrefix is Load with every variable name prefixed, so
// `env:"PORT"` with prefix "STOREFRONT_" reads STOREFRONT_PORT.
func LoadWithPrefix(cfg any, prefix string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: prefix}); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// LoadFile applies the environment to cfg and then decodes the YAML document
// at path on top of it. Keys present in the file override the environment;
// keys it omits keep their environment or envDefault value. An empty path
// skips the file.
func LoadFile(path string, cfg any) error {
	if err := Load(cfg); err != nil {
		return err
	}
	if path == "" {
		return nil
	}
	return decodeFile(path, cfg)
}

func decodeFile(path string, cfg any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}
