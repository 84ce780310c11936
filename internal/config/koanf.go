// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelsight/config.yaml",
	"/etc/reelsight/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    defaultServerPort,
			Timeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			MaxMemory: defaultDuckDBMemory,
			Threads:   0,
		},
		Dashboard: DashboardConfig{
			AssetsHost:    defaultAssetsHost,
			CacheTTL:      time.Hour,
			HistogramBins: 50,
			UserTopN:      10,
			ClusterTopN:   5,
			TopMoviesN:    10,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf layers the built-in defaults, the optional YAML file and
// the mapped environment variables, in increasing precedence, then
// validates the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}
	for _, path := range listPaths {
		if err := splitList(k, path); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// findConfigFile returns the first existing DefaultConfigPaths entry, or ""
// if none exists. A set CONFIG_PATH replaces the list.
func findConfigFile() string {
	candidates := DefaultConfigPaths
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		candidates = []string{p}
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// listPaths hold lists that arrive from the environment as one
// comma-separated string.
var listPaths = []string{"security.cors_origins"}

// splitList replaces a comma-separated string at path with its non-empty
// trimmed parts. Values that are already lists are left alone.
func splitList(k *koanf.Koanf, path string) error {
	raw, ok := k.Get(path).(string)
	if !ok {
		return nil
	}
	var parts []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	if err := k.Set(path, parts); err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
// It is built from the env tags of Config, two levels deep. Unmapped
// variables are ignored so the process environment cannot leak into the
// configuration.
var envMappings = buildEnvMappings(reflect.TypeOf(Config{}))

func buildEnvMappings(root reflect.Type) map[string]string {
	m := make(map[string]string)
	for i := range root.NumField() {
		section := root.Field(i)
		prefix := section.Tag.Get("koanf")
		if section.Type.Kind() != reflect.Struct || prefix == "" {
			continue
		}
		for j := range section.Type.NumField() {
			f := section.Type.Field(j)
			name, key := f.Tag.Get("env"), f.Tag.Get("koanf")
			if name == "" || key == "" {
				continue
			}
			m[strings.ToLower(name)] = prefix + "." + key
		}
	}
	return m
}

// envTransformFunc turns HTTP_PORT into server.port. Unknown names map to
// "", which koanf skips.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
