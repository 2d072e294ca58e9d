package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for a test binary
type Config struct {
	// Project settings
	ProjectPath string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string
	Storage        string

	// MySQL storage settings
	MySQLDSN   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Logging settings
	LogLevel  string
	LogFormat string

	NoColor bool

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	NoColor    bool
	Progress   bool
	FailFast   bool
	NoSave     bool
	OpenFaills bool
	Storage    string
	LogLevel   string
	LogFormat  string
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		ProjectPath:    DefaultProjectPath,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Storage:        DefaultStorage,
		DBHost:         DefaultDBHost,
		DBPort:         DefaultDBPort,
		DBUser:         DefaultDBUser,
		DBName:         DefaultDBName,
		LogLevel:       DefaultLogLevel,
		LogFormat:      DefaultLogFormat,
	}
}

// Load creates a config from defaults, the project's .env file and the
// environment, then applies flags
func Load(flags Flags) (*Config, error) {
	cfg := New()
	if err := cfg.LoadEnv(); err != nil {
		return nil, err
	}
	cfg.ApplyFlags(flags)
	return cfg, cfg.Validate()
}

// LoadEnv loads the project's .env file, if present, and overlays MICROTEST_*
// environment variables. Variables already set in the environment take
// precedence over the file.
func (c *Config) LoadEnv() error {
	envPath := filepath.Join(c.ProjectPath, DefaultEnvFile)
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load %s: %w", envPath, err)
	}

	setFromEnv(&c.Storage, EnvStorage)
	setFromEnv(&c.OutputJSONDir, EnvOutputDir)
	setFromEnv(&c.LogLevel, EnvLogLevel)
	setFromEnv(&c.LogFormat, EnvLogFormat)
	setFromEnv(&c.MySQLDSN, EnvMySQLDSN)
	setFromEnv(&c.DBHost, EnvDBHost)
	setFromEnv(&c.DBPort, EnvDBPort)
	setFromEnv(&c.DBUser, EnvDBUser)
	setFromEnv(&c.DBPassword, EnvDBPassword)
	setFromEnv(&c.DBName, EnvDBName)
	if _, ok := os.LookupEnv(EnvNoColor); ok {
		c.NoColor = true
	}
	return nil
}

// ApplyFlags overlays command-line flags on the config
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.Storage != "" {
		c.Storage = flags.Storage
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	if flags.LogFormat != "" {
		c.LogFormat = flags.LogFormat
	}
	if flags.NoColor {
		c.NoColor = true
	}
	if flags.NoSave {
		c.Storage = StorageNone
	}
}

// Validate reports configuration values that cannot be used
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageJSON, StorageMySQL, StorageNone:
	default:
		return fmt.Errorf("invalid storage %q: must be %q, %q or %q", c.Storage, StorageJSON, StorageMySQL, StorageNone)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn' or 'error'", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q: must be 'text' or 'json'", c.LogFormat)
	}
	return nil
}

// GetOutputPath returns the absolute path of the JSON results file so every
// command reads and writes the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if filepath.IsAbs(c.OutputJSONDir) {
		p = filepath.Join(c.OutputJSONDir, c.OutputJSONFile)
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func setFromEnv(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}
