package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log   LogConfig   `yaml:"log"`
	Shell ShellConfig `yaml:"shell"`
	MCP   MCPConfig   `yaml:"mcp"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ShellConfig struct {
	Prompts bool `yaml:"prompts"`
}

type MCPConfig struct {
	Name string `yaml:"name"`
}

// EnvFile is the dotenv file read from the working directory, if present.
const EnvFile = ".env"

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log:   LogConfig{Level: "info", Format: "text"},
		Shell: ShellConfig{Prompts: true},
		MCP:   MCPConfig{Name: "fittrack"},
	}
}

// Load builds the config from defaults, the optional YAML file at path, a
// .env file in the working directory, and finally environment variables.
// Env vars use the prefix FITTRACK_:
//
//	FITTRACK_LOG_LEVEL, FITTRACK_LOG_FORMAT,
//	FITTRACK_SHELL_PROMPTS, FITTRACK_MCP_NAME
//
// Values already set in the process environment win over .env entries.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", EnvFile, err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("FITTRACK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("FITTRACK_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("FITTRACK_SHELL_PROMPTS"); v != "" {
		prompts, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("FITTRACK_SHELL_PROMPTS: %w", err)
		}
		cfg.Shell.Prompts = prompts
	}
	if v := os.Getenv("FITTRACK_MCP_NAME"); v != "" {
		cfg.MCP.Name = v
	}
	return nil
}

func (c *Config) validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error (got %q)", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format)
	}
	if c.MCP.Name == "" {
		return fmt.Errorf("mcp.name is required")
	}
	return nil
}
