// Package config loads Eva settings from YAML files.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thomasrohde/eva/pkg/evaluator"
)

const (
	// ProjectFile is looked up in the working directory.
	ProjectFile = "eva.yaml"
	// UserDir and UserFile locate the per-user config under the home directory.
	UserDir  = ".eva"
	UserFile = "config.yaml"
	// HistoryFile is the default REPL history file name under the home directory.
	HistoryFile = ".eva_history"
)

// Config holds the effective settings.
type Config struct {
	ModuleDir       string `yaml:"module_dir"`
	ReturnMode      string `yaml:"return_mode"`
	MaxEnvironments int    `yaml:"max_environments"`
	Trace           string `yaml:"trace,omitempty"`
	HistoryFile     string `yaml:"history_file,omitempty"`

	// Source is the file the settings came from, empty for built-in defaults.
	Source string `yaml:"-"`
}

// Error reports a config file that exists but could not be used.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("config %s: %s", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		ModuleDir:  ".",
		ReturnMode: evaluator.ReturnEager.String(),
	}
}

// Load resolves settings for projectDir.
// Precedence: project (eva.yaml) → user (~/.eva/config.yaml) → built-in default.
func Load(projectDir string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return LoadFrom(projectDir, home)
}

// LoadFrom is Load with an explicit home directory. An empty home skips the user file.
func LoadFrom(projectDir, home string) (*Config, error) {
	candidates := []string{filepath.Join(projectDir, ProjectFile)}
	if home != "" {
		candidates = append(candidates, filepath.Join(home, UserDir, UserFile))
	}

	cfg := Default()
	for _, path := range candidates {
		loaded, err := LoadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		cfg = loaded
		break
	}

	if home != "" {
		if cfg.HistoryFile == "" {
			cfg.HistoryFile = filepath.Join(home, HistoryFile)
		} else if strings.HasPrefix(cfg.HistoryFile, "~/") {
			cfg.HistoryFile = filepath.Join(home, cfg.HistoryFile[2:])
		}
	}
	return cfg, nil
}

// LoadFile decodes one config file. Keys it omits keep their defaults; a relative
// module_dir is resolved against the file's directory.
func LoadFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, &Error{Path: path, Err: err}
	}
	defer file.Close()

	cfg := Default()
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, &Error{Path: path, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	if !filepath.IsAbs(cfg.ModuleDir) {
		cfg.ModuleDir = filepath.Join(filepath.Dir(path), cfg.ModuleDir)
	}
	cfg.Source = path
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if _, err := evaluator.ParseReturnMode(c.ReturnMode); err != nil {
		return err
	}
	if c.MaxEnvironments < 0 {
		return fmt.Errorf("max_environments must not be negative (got %d)", c.MaxEnvironments)
	}
	if c.ModuleDir == "" {
		return fmt.Errorf("module_dir must not be empty")
	}
	return nil
}

// Mode returns the parsed return mode.
func (c *Config) Mode() evaluator.ReturnMode {
	m, _ := evaluator.ParseReturnMode(c.ReturnMode)
	return m
}

// YAML renders the settings as a YAML document.
func (c *Config) YAML() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
