package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultSlotKey is the storage key used when none is configured.
const DefaultSlotKey = "posts_v1"

// Config represents the main configuration for postgen.
type Config struct {
	BaseDir    string           `toml:"base_dir"`
	LogDir     string           `toml:"log_dir"`
	LogLevel   string           `toml:"log_level"` // "debug", "info" (default), "warn" or "error"
	Slot       SlotConfig       `toml:"slot"`
	Encryption EncryptionConfig `toml:"encryption"`
	Lifecycle  LifecycleConfig  `toml:"lifecycle"`
	Generator  GeneratorConfig  `toml:"generator"`
}

// SlotConfig represents configuration for the storage slot holding the posts blob.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type SlotConfig struct {
	Type     string `toml:"type"` // "memory", "file", "sqlite", "postgres" or "s3"
	Key      string `toml:"key"`  // storage key, defaults to DefaultSlotKey
	Compress bool   `toml:"compress"`

	// File-specific fields (only used when Type == "file")
	FilePath string `toml:"file_path,omitempty"`

	// SQLite-specific fields (only used when Type == "sqlite")
	SQLitePath string `toml:"sqlite_path,omitempty"`

	// Postgres-specific fields (only used when Type == "postgres")
	PostgresDSN string `toml:"postgres_dsn,omitempty"`

	// S3-specific fields (only used when Type == "s3")
	S3Bucket          string `toml:"s3_bucket,omitempty"`
	S3Prefix          string `toml:"s3_prefix,omitempty"`
	S3Region          string `toml:"s3_region,omitempty"`
	S3Endpoint        string `toml:"s3_endpoint,omitempty"`
	S3AccessKeyID     string `toml:"s3_access_key_id,omitempty"`
	S3SecretAccessKey string `toml:"s3_secret_access_key,omitempty"`
}

// SlotKey returns the configured key or DefaultSlotKey.
func (c SlotConfig) SlotKey() string {
	if c.Key == "" {
		return DefaultSlotKey
	}
	return c.Key
}

// EncryptionConfig holds the encryption type and paths to the age key pair.
type EncryptionConfig struct {
	Type           string `toml:"type"` // "none" (default), "age" or "test"
	PublicKeyPath  string `toml:"public_key_path"`
	PrivateKeyPath string `toml:"private_key_path"`
}

// Enabled reports whether the stored blob should be encrypted.
func (c EncryptionConfig) Enabled() bool {
	return c.Type != "" && c.Type != "none"
}

// LifecycleConfig controls status transition enforcement.
type LifecycleConfig struct {
	Policy string `toml:"policy"` // "strict" (default) or "permissive"
}

// GeneratorConfig holds draft generator settings.
type GeneratorConfig struct {
	Seed        int64 `toml:"seed"` // 0 seeds from crypto/rand
	ImageWidth  int   `toml:"image_width"`
	ImageHeight int   `toml:"image_height"`
}

// NewConfig creates a new Config rooted at baseDir with a file slot and default key paths.
func NewConfig(baseDir string) *Config {
	return &Config{
		BaseDir:  baseDir,
		LogDir:   filepath.Join(baseDir, "log"),
		LogLevel: "info",
		Slot: SlotConfig{
			Type:     "file",
			Key:      DefaultSlotKey,
			FilePath: filepath.Join(baseDir, "posts.json"),
		},
		Encryption: EncryptionConfig{
			Type:           "none",
			PublicKeyPath:  filepath.Join(baseDir, "keys", "postgen.pub"),
			PrivateKeyPath: filepath.Join(baseDir, "keys", "postgen.key"),
		},
		Lifecycle: LifecycleConfig{Policy: "strict"},
		Generator: GeneratorConfig{ImageWidth: 800, ImageHeight: 450},
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

func writeToFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
