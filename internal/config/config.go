package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the app-level settings stored in ~/.atelier/config.toml.
// Per-user planner settings (hours, work days) live in the database; the
// values here only seed a user's first settings row.
type Config struct {
	DefaultUser        string `toml:"default_user"`
	DatabasePath       string `toml:"database_path"`
	DefaultHoursPerDay int    `toml:"default_hours_per_day"`
	DefaultWorkDays    string `toml:"default_work_days"`
}

func DefaultConfig() *Config {
	return &Config{
		DefaultUser:        "default",
		DefaultHoursPerDay: 8,
		DefaultWorkDays:    "1,2,3,4,5",
	}
}

func AtelierDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".atelier"), nil
}

func ConfigPath() (string, error) {
	dir, err := AtelierDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ResolveDatabasePath picks the database location: the ATELIER_DB
// environment variable wins, then the config file, then the default under
// the atelier directory.
func (c *Config) ResolveDatabasePath() (string, error) {
	if env := os.Getenv("ATELIER_DB"); env != "" {
		return env, nil
	}
	if c.DatabasePath != "" {
		return expandPath(c.DatabasePath), nil
	}
	dir, err := AtelierDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "db", "atelier.sqlite"), nil
}

func EnsureDirectories() error {
	dir, err := AtelierDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.MkdirAll(filepath.Join(dir, "db"), 0755)
}

// Load reads the config file, writing one with defaults on first run.
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := EnsureDirectories(); err != nil {
			return nil, err
		}
		if err := Save(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(cfg *Config) error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}
