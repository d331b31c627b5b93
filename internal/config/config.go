package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the harness
type Config struct {
	// Harness settings
	RootDir      string
	ManifestFile string
	NodeBinary   string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string
	LockFile       string

	// Environment file loaded before running build commands
	EnvFile string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Verbose         bool
	Progress        bool
	Filter          string
	ConfigPath      string
	Root            string
	ShowValidations bool
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		RootDir:        DefaultRootDir,
		ManifestFile:   DefaultManifestFile,
		NodeBinary:     DefaultNodeBinary,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		LockFile:       DefaultLockFile,
		EnvFile:        DefaultEnvFile,
	}
}

// Load creates a config and applies flags
func Load(flags Flags) *Config {
	cfg := New()
	cfg.Apply(flags)
	return cfg
}

// Apply stores the flags and applies their overrides
func (c *Config) Apply(flags Flags) {
	c.Flags = flags
	if flags.Root != "" {
		c.RootDir = flags.Root
	}
}

// GetRootDir returns the absolute harness root
func (c *Config) GetRootDir() string {
	if abs, err := filepath.Abs(c.RootDir); err == nil {
		return abs
	}
	return c.RootDir
}

// GetManifestPath returns the manifest path, using the flag if provided.
// Relative paths are resolved against the harness root.
func (c *Config) GetManifestPath() string {
	path := c.ManifestFile
	if c.Flags.ConfigPath != "" {
		path = c.Flags.ConfigPath
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.GetRootDir(), path)
}

// GetOutputPath returns the absolute path of the run record file
func (c *Config) GetOutputPath() string {
	return filepath.Join(c.GetRootDir(), c.OutputJSONDir, c.OutputJSONFile)
}

// GetLockPath returns the absolute path of the run lock file
func (c *Config) GetLockPath() string {
	return filepath.Join(c.GetRootDir(), c.OutputJSONDir, c.LockFile)
}

// ResolvePath resolves a manifest-relative path (an example's output, the
// build tool script) against the harness root
func (c *Config) ResolvePath(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(c.GetRootDir(), path)
}

// LoadEnv loads the root's .env file into the process environment so build
// commands inherit it. A missing file is not an error and variables already
// set are kept.
func (c *Config) LoadEnv() error {
	if c.EnvFile == "" {
		return nil
	}
	path := c.ResolvePath(c.EnvFile)
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}
