package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// DefaultSessionPattern matches session log files by base name
const DefaultSessionPattern = "*.jsonl"

// Config holds engine and logging settings
type Config struct {
	ProjectsDir    string    `yaml:"projects_dir"`
	SessionPattern string    `yaml:"session_pattern"`
	Log            LogConfig `yaml:"log"`
}

// LogConfig controls the logger
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultProjectsDir returns ~/.claude/projects
func DefaultProjectsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".claude", "projects"), nil
}

// defaultConfigPath returns ~/.config/claude-session/config.yaml
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "claude-session", "config.yaml")
}

// LoadConfig reads configuration from an optional YAML file and
// environment variables. An empty path falls back to CLAUDE_SESSION_CONFIG
// and then to the user config directory; a missing default file is not
// an error.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		SessionPattern: DefaultSessionPattern,
		Log:            LogConfig{Level: "info"},
	}

	explicit := path != ""
	if !explicit {
		if env := os.Getenv("CLAUDE_SESSION_CONFIG"); env != "" {
			path = env
			explicit = true
		} else {
			path = defaultConfigPath()
		}
	}
	if path != "" {
		if err := loadConfigFile(path, &cfg); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	if dir := os.Getenv("CLAUDE_SESSION_PROJECTS_DIR"); dir != "" {
		cfg.ProjectsDir = dir
	}
	if level := os.Getenv("CLAUDE_SESSION_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if file := os.Getenv("CLAUDE_SESSION_LOG_FILE"); file != "" {
		cfg.Log.File = file
	}

	if cfg.ProjectsDir == "" {
		dir, err := DefaultProjectsDir()
		if err != nil {
			return Config{}, err
		}
		cfg.ProjectsDir = dir
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// Validate checks the session pattern and the projects directory
func (c *Config) Validate() error {
	if c.ProjectsDir == "" {
		return errors.New("projects_dir must be set")
	}
	if c.SessionPattern == "" {
		c.SessionPattern = DefaultSessionPattern
	}
	if !doublestar.ValidatePattern(c.SessionPattern) {
		return fmt.Errorf("invalid session_pattern: %q", c.SessionPattern)
	}
	return nil
}
