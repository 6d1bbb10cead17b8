/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/suparena/dorm/registry"
	sm "github.com/suparena/dorm/storagemodels"
)

const (
	BackendMemory   = "memory"
	BackendDynamoDB = "dynamodb"

	defaultLogLevel     = "info"
	defaultLogFormat    = "text"
	defaultLogMaxSizeMB = 10
	defaultLogMaxFiles  = 5
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Backend    string         `yaml:"backend"`
	FieldTypes []string       `yaml:"field_types"`
	Log        LogConfig      `yaml:"log"`
	DynamoDB   DynamoDBConfig `yaml:"dynamodb"`
}

type LogConfig struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	File      string `yaml:"file"`
	MaxSizeMB int    `yaml:"max_size_mb"`
	MaxFiles  int    `yaml:"max_files"`
}

type DynamoDBConfig struct {
	Table     string `yaml:"table"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// LoadOptions selects the inputs of Load. Env, when set, is consulted
// before the process environment; EnvFile values come last.
type LoadOptions struct {
	ConfigPath string
	EnvFile    string
	Env        map[string]string
}

func DefaultConfig() Config {
	return Config{
		Backend: BackendMemory,
		Log: LogConfig{
			Level:     defaultLogLevel,
			Format:    defaultLogFormat,
			MaxSizeMB: defaultLogMaxSizeMB,
			MaxFiles:  defaultLogMaxFiles,
		},
	}
}

// Load builds a configuration from defaults, the YAML file and the
// environment, in increasing precedence, and validates the result.
func Load(opts LoadOptions) (Config, error) {
	cfg := DefaultConfig()

	if err := loadFile(opts.ConfigPath, &cfg); err != nil {
		return Config{}, err
	}

	dotenv, err := readEnvFile(opts.EnvFile)
	if err != nil {
		return Config{}, err
	}
	if err := applyEnvOverrides(&cfg, opts, dotenv); err != nil {
		return Config{}, err
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %q: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: parse YAML file %q: %v", ErrInvalidConfig, path, err)
	}
	return nil
}

func readEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read env file %q: %w", path, err)
	}
	return values, nil
}

func applyEnvOverrides(cfg *Config, opts LoadOptions, dotenv map[string]string) error {
	if value, ok := lookupEnv(opts, dotenv, "DORM_BACKEND"); ok {
		cfg.Backend = value
	}
	if value, ok := lookupEnv(opts, dotenv, "DORM_LOG_LEVEL"); ok {
		cfg.Log.Level = value
	}
	if value, ok := lookupEnv(opts, dotenv, "DORM_LOG_FILE"); ok {
		cfg.Log.File = value
	}
	if value, ok := lookupEnv(opts, dotenv, "DORM_LOG_MAX_SIZE_MB"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: parse DORM_LOG_MAX_SIZE_MB: %v", ErrInvalidConfig, err)
		}
		cfg.Log.MaxSizeMB = parsed
	}

	if value, ok := lookupEnv(opts, dotenv, "AWS_ACCESS_KEY"); ok {
		cfg.DynamoDB.AccessKey = value
	}
	if value, ok := lookupEnv(opts, dotenv, "AWS_SECRET_KEY"); ok {
		cfg.DynamoDB.SecretKey = value
	}
	if value, ok := lookupEnv(opts, dotenv, "AWS_REGION"); ok {
		cfg.DynamoDB.Region = value
	}
	if value, ok := lookupEnv(opts, dotenv, "AWS_DDB_TABLE"); ok {
		cfg.DynamoDB.Table = value
	}
	if value, ok := lookupEnv(opts, dotenv, "AWS_DDB_ENDPOINT"); ok {
		cfg.DynamoDB.Endpoint = value
	}
	return nil
}

// Validate rejects unknown backends, field types, log levels and formats,
// and a DynamoDB backend without a table or region.
func Validate(cfg Config) error {
	switch cfg.Backend {
	case BackendMemory:
	case BackendDynamoDB:
		if cfg.DynamoDB.Table == "" {
			return fmt.Errorf("%w: dynamodb.table is required for the dynamodb backend", ErrInvalidConfig)
		}
		if cfg.DynamoDB.Region == "" {
			return fmt.Errorf("%w: dynamodb.region is required for the dynamodb backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, cfg.Backend)
	}

	if _, err := cfg.FieldTypeRegistry(); err != nil {
		return err
	}

	if _, err := parseLevel(cfg.Log.Level); err != nil {
		return err
	}
	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return fmt.Errorf("%w: log.format must be text or json, got %q", ErrInvalidConfig, cfg.Log.Format)
	}
	if cfg.Log.MaxSizeMB < 0 || cfg.Log.MaxFiles < 0 {
		return fmt.Errorf("%w: log rotation limits must not be negative", ErrInvalidConfig)
	}
	return nil
}

// FieldTypeRegistry returns the default registry extended with the
// configured field types.
func (c Config) FieldTypeRegistry() (*registry.FieldTypes, error) {
	ft := registry.DefaultFieldTypes()
	for _, name := range c.FieldTypes {
		kind, err := sm.ParseKind(name)
		if err != nil || kind == sm.KindNull {
			return nil, fmt.Errorf("%w: field_types: unknown type %q", ErrInvalidConfig, name)
		}
		ft.Register(kind)
	}
	return ft, nil
}

func lookupEnv(opts LoadOptions, dotenv map[string]string, key string) (string, bool) {
	if opts.Env != nil {
		if value, ok := opts.Env[key]; ok {
			return value, true
		}
	}
	if value, ok := os.LookupEnv(key); ok {
		return value, true
	}
	value, ok := dotenv[key]
	return value, ok
}
