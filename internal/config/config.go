// Package config loads launcher configuration for paylaunch.
//
// Configuration is applied in order of increasing precedence:
//  1. Hardcoded defaults
//  2. User/global config (~/.config/paylaunch/config.yaml)
//  3. Project config (.paylaunch.yaml next to the launcher)
//  4. Environment variables (PAYLAUNCH_*)
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Valid profile names. The profile decides strictness and isolation
// policy; see internal/launcher.
const (
	ProfileStrict  = "strict"
	ProfileLenient = "lenient"
	ProfileAuto    = "auto"
)

// Config is the complete paylaunch configuration.
type Config struct {
	Version int         `yaml:"version" json:"version"`
	Profile string      `yaml:"profile" json:"profile"`
	Paths   PathsConfig `yaml:"paths" json:"paths"`
	App     AppConfig   `yaml:"app" json:"app"`
	Logging LogConfig   `yaml:"logging" json:"logging"`
}

// PathsConfig names the filesystem artifacts the preflight sequence
// checks, all relative to the launcher's base directory.
type PathsConfig struct {
	// SrcDir is the required application directory.
	SrcDir string `yaml:"src_dir" json:"src_dir"`
	// Entry is the required entry-point file inside SrcDir.
	Entry string `yaml:"entry" json:"entry"`
	// Manifest is the pip requirements file.
	Manifest string `yaml:"manifest" json:"manifest"`
	// Credentials is the optional service-account file inside SrcDir.
	Credentials string `yaml:"credentials" json:"credentials"`
	// EnvFile is the optional KEY=VALUE config consumed by the app.
	EnvFile string `yaml:"env_file" json:"env_file"`
	// VenvDir is the isolated-environment directory.
	VenvDir string `yaml:"venv_dir" json:"venv_dir"`
}

// AppConfig describes the launched application for operator messaging.
type AppConfig struct {
	// URL is where the application binds once running. The launcher
	// only prints it; it never connects.
	URL string `yaml:"url" json:"url"`
	// Editor is the command offered for editing a scaffolded env file.
	// Empty means $EDITOR.
	Editor string `yaml:"editor" json:"editor"`
}

// LogConfig configures debug file logging.
type LogConfig struct {
	Level string `yaml:"level" json:"level"`
}

// NewConfig creates a Config with defaults matching the payslip app's
// on-disk layout.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Profile: ProfileAuto,
		Paths: PathsConfig{
			SrcDir:      "src",
			Entry:       filepath.Join("src", "main.py"),
			Manifest:    "requirements.txt",
			Credentials: filepath.Join("src", "credentials.json"),
			EnvFile:     ".env",
			VenvDir:     "venv",
		},
		App: AppConfig{
			URL: "http://localhost:5000",
		},
		Logging: LogConfig{
			Level: "info",
		},
	}
}

// GetUserConfigPath returns the path to the user/global configuration
// file, following the XDG Base Directory convention.
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "paylaunch", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "paylaunch", "config.yaml")
	}
	return filepath.Join(home, ".config", "paylaunch", "config.yaml")
}

// Load loads configuration for the given base directory.
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	// User/global config (if present).
	if userPath := GetUserConfigPath(); fileExists(userPath) {
		if err := cfg.loadYAML(userPath); err != nil {
			return nil, fmt.Errorf("failed to load user config: %w", err)
		}
	}

	// Project config (overrides user config).
	if err := cfg.loadFromDir(dir); err != nil {
		return nil, err
	}

	// Environment overrides (highest precedence).
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadFromDir attempts .paylaunch.yaml then .paylaunch.yml.
func (c *Config) loadFromDir(dir string) error {
	for _, name := range []string{".paylaunch.yaml", ".paylaunch.yml"} {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return c.loadYAML(path)
		}
	}
	// No config file is fine - defaults apply.
	return nil
}

// loadYAML loads and merges configuration from a YAML file.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith merges non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}
	if other.Profile != "" {
		c.Profile = other.Profile
	}
	if other.Paths.SrcDir != "" {
		c.Paths.SrcDir = other.Paths.SrcDir
	}
	if other.Paths.Entry != "" {
		c.Paths.Entry = other.Paths.Entry
	}
	if other.Paths.Manifest != "" {
		c.Paths.Manifest = other.Paths.Manifest
	}
	if other.Paths.Credentials != "" {
		c.Paths.Credentials = other.Paths.Credentials
	}
	if other.Paths.EnvFile != "" {
		c.Paths.EnvFile = other.Paths.EnvFile
	}
	if other.Paths.VenvDir != "" {
		c.Paths.VenvDir = other.Paths.VenvDir
	}
	if other.App.URL != "" {
		c.App.URL = other.App.URL
	}
	if other.App.Editor != "" {
		c.App.Editor = other.App.Editor
	}
	if other.Logging.Level != "" {
		c.Logging.Level = other.Logging.Level
	}
}

// applyEnvOverrides applies PAYLAUNCH_* environment variables.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PAYLAUNCH_PROFILE"); v != "" {
		c.Profile = v
	}
	if v := os.Getenv("PAYLAUNCH_ENTRY"); v != "" {
		c.Paths.Entry = v
	}
	if v := os.Getenv("PAYLAUNCH_VENV_DIR"); v != "" {
		c.Paths.VenvDir = v
	}
	if v := os.Getenv("PAYLAUNCH_EDITOR"); v != "" {
		c.App.Editor = v
	}
	if v := os.Getenv("PAYLAUNCH_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate rejects configurations the pipeline cannot act on.
func (c *Config) Validate() error {
	switch c.Profile {
	case ProfileStrict, ProfileLenient, ProfileAuto:
	default:
		return fmt.Errorf("unknown profile %q (use: strict, lenient, auto)", c.Profile)
	}

	if c.Paths.SrcDir == "" {
		return fmt.Errorf("paths.src_dir must not be empty")
	}
	if c.Paths.Entry == "" {
		return fmt.Errorf("paths.entry must not be empty")
	}
	if c.Paths.VenvDir == "" {
		return fmt.Errorf("paths.venv_dir must not be empty")
	}
	return nil
}

// EditorCommand returns the configured editor, falling back to $EDITOR
// then a platform default.
func (c *Config) EditorCommand() string {
	if c.App.Editor != "" {
		return c.App.Editor
	}
	if v := os.Getenv("EDITOR"); v != "" {
		return v
	}
	return "vi"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
