// Package config loads the settings of inky from an optional YAML file, a
// .env file and INKY_* environment variables.
//
// Precedence, from strongest to weakest: command line flags, environment,
// YAML file, defaults. Flags are applied by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvCatalog        = "INKY_CATALOG"
	EnvDataset        = "INKY_DATASET"
	EnvSeed           = "INKY_SEED"
	EnvListen         = "INKY_LISTEN"
	EnvOperationDelay = "INKY_OPERATION_DELAY"
	EnvLogLevel       = "INKY_LOG_LEVEL"
	EnvLogFile        = "INKY_LOG_FILE"
	EnvLogMaxAge      = "INKY_LOG_MAX_AGE"
	EnvGenAIModel     = "INKY_GENAI_MODEL"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "inky.yaml"

// Config holds every setting of the application.
type Config struct {
	Catalog        string        `yaml:"catalog"` // JSONL asset catalog, embedded one when empty
	Dataset        string        `yaml:"dataset"` // JSON dashboard dataset, embedded one when empty
	Seed           uint64        `yaml:"seed"`    // deck shuffle seed, random when 0
	Listen         string        `yaml:"listen"`
	OperationDelay time.Duration `yaml:"operation_delay"`
	LogLevel       string        `yaml:"log_level"`
	LogFile        string        `yaml:"log_file"`    // stderr when empty
	LogMaxAge      int           `yaml:"log_max_age"` // days, rotation disabled when 0
	GenAIModel     string        `yaml:"genai_model"`
}

// Default returns the default settings.
func Default() Config {
	return Config{
		Listen:         "localhost:8080",
		OperationDelay: 2 * time.Second,
		LogLevel:       "info",
		GenAIModel:     "gemini-2.5-flash",
	}
}

// Load returns the defaults overridden by the YAML file at path and by the
// environment. A missing file is not an error when path is DefaultFile.
// Variables from a .env file in the working directory are added to the
// environment first, without overriding it.
func Load(path string) (Config, error) {
	cfg := Default()
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load .env: %w", err)
	}
	if path == "" {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && path == DefaultFile:
	case err != nil:
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := cfg.Decode(data); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %q: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode overrides the settings present in a YAML document.
func (c *Config) Decode(data []byte) error {
	return yaml.Unmarshal(data, c)
}

// ApplyEnv overrides the settings defined in the environment.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	if v, ok := get(EnvCatalog); ok {
		c.Catalog = v
	}
	if v, ok := get(EnvDataset); ok {
		c.Dataset = v
	}
	if v, ok := get(EnvSeed); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvSeed, v, err)
		}
		c.Seed = seed
	}
	if v, ok := get(EnvListen); ok {
		c.Listen = v
	}
	if v, ok := get(EnvOperationDelay); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvOperationDelay, v, err)
		}
		c.OperationDelay = d
	}
	if v, ok := get(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := get(EnvLogFile); ok {
		c.LogFile = v
	}
	if v, ok := get(EnvLogMaxAge); ok {
		days, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvLogMaxAge, v, err)
		}
		c.LogMaxAge = days
	}
	if v, ok := get(EnvGenAIModel); ok {
		c.GenAIModel = v
	}
	return nil
}

// Env returns the settings as environment variables, the way they are
// passed to extensions.
func (c Config) Env() []string {
	return []string{
		EnvCatalog + "=" + c.Catalog,
		EnvDataset + "=" + c.Dataset,
		EnvSeed + "=" + strconv.FormatUint(c.Seed, 10),
		EnvListen + "=" + c.Listen,
		EnvOperationDelay + "=" + c.OperationDelay.String(),
		EnvLogLevel + "=" + c.LogLevel,
		EnvLogFile + "=" + c.LogFile,
		EnvLogMaxAge + "=" + strconv.Itoa(c.LogMaxAge),
		EnvGenAIModel + "=" + c.GenAIModel,
	}
}
