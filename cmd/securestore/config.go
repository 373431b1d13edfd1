package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Backend names accepted by SECURESTORE_BACKEND and --backend.
const (
	backendFile   = "file"
	backendSQLite = "sqlite"
	backendMemory = "memory"
)

// Config holds the process-level inputs of the CLI.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Environ is the environment in os.Environ form.
	Environ []string
	// EnvFile is an optional dotenv file. Variables already present in
	// Environ take precedence over it.
	EnvFile string
}

// DefaultConfig returns a Config wired to the real process.
func DefaultConfig() Config {
	return Config{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Environ: os.Environ(),
		EnvFile: ".env",
	}
}

// settings is the store configuration read from the environment.
type settings struct {
	Namespace string `env:"SECURESTORE_NAMESPACE" envDefault:"app"`
	Backend   string `env:"SECURESTORE_BACKEND"   envDefault:"file"`
	Path      string `env:"SECURESTORE_PATH"`
	LogLevel  string `env:"SECURESTORE_LOG_LEVEL" envDefault:"warn"`
	DataHome  string `env:"XDG_DATA_HOME"`
	Home      string `env:"HOME"`
}

// loadSettings parses settings from cfg.Environ merged over cfg.EnvFile.
func loadSettings(cfg Config) (settings, error) {
	vars := env.ToMap(cfg.Environ)

	if cfg.EnvFile != "" {
		fileVars, err := godotenv.Read(cfg.EnvFile)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return settings{}, fmt.Errorf("load %s: %w", cfg.EnvFile, err)
		default:
			for k, v := range fileVars {
				if _, ok := vars[k]; !ok {
					vars[k] = v
				}
			}
		}
	}

	var s settings
	if err := env.ParseWithOptions(&s, env.Options{Environment: vars}); err != nil {
		return settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}

// validate checks the backend name and fills in the default path.
func (s *settings) validate() error {
	switch s.Backend {
	case backendFile, backendSQLite, backendMemory:
	default:
		return fmt.Errorf("unknown backend %q (want %s, %s or %s)", s.Backend, backendFile, backendSQLite, backendMemory)
	}
	if s.Path == "" && s.Backend != backendMemory {
		s.Path = s.defaultPath()
	}
	return nil
}

// defaultPath follows the XDG Base Directory spec.
func (s settings) defaultPath() string {
	dataHome := s.DataHome
	if dataHome == "" {
		dataHome = filepath.Join(s.Home, ".local", "share")
	}
	name := "store.json"
	if s.Backend == backendSQLite {
		name = "store.db"
	}
	return filepath.Join(dataHome, "securestore", name)
}

// logLevel parses LogLevel, falling back to warn.
func (s settings) logLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return lvl
}
