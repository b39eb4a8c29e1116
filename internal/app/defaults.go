package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Environment holds the settings read from the process environment.
type Environment struct {
	ConfigPath string `env:"POSTGEN_CONFIG_PATH"`
	Home       string `env:"POSTGEN_HOME"`
	Passphrase string `env:"POSTGEN_PASSPHRASE"`
	Seed       int64  `env:"POSTGEN_SEED"`
}

// LoadEnvironment loads variables from a .env file in the working directory,
// if one exists, and parses the POSTGEN_* variables. Variables already set in
// the process environment take precedence over the file.
func LoadEnvironment() (Environment, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Environment{}, fmt.Errorf("loading .env: %w", err)
	}
	var e Environment
	if err := env.Parse(&e); err != nil {
		return Environment{}, fmt.Errorf("parsing environment: %w", err)
	}
	return e, nil
}

// GetDefaults returns application default paths, preferring values from e.
//   - POSTGEN_CONFIG_PATH: config file location (default: ~/.config/postgen.toml)
//   - POSTGEN_HOME: base directory for postgen data (default: ~/.local/share/postgen)
func GetDefaults(e Environment) (map[string]string, error) {
	configPath, err := getConfigPath(e)
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir(e)
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

func getConfigPath(e Environment) (string, error) {
	if e.ConfigPath != "" {
		return e.ConfigPath, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "postgen.toml"), nil
}

// getBaseDir falls back to the XDG default ~/.local/share/postgen.
func getBaseDir(e Environment) (string, error) {
	if e.Home != "" {
		return e.Home, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "postgen"), nil
}
