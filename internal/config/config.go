// Package config resolves which task file an invocation operates on.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name under the user config dir.
	AppName = "todo"

	// DefaultFileName is the task file used in the working directory
	// when nothing else names one.
	DefaultFileName = "tasks.json"

	// EnvFile names the environment variable that overrides the default path.
	EnvFile = "TODO_FILE"

	// ProjectConfigFile is looked up in the working directory.
	ProjectConfigFile = ".todo.toml"

	// UserConfigFile is looked up in the user config directory.
	UserConfigFile = "config.toml"
)

// Source records which link of the resolution chain supplied the path.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceConfig  Source = "config"
	SourceDefault Source = "default"
)

// Config is computed once per invocation and passed down explicitly.
type Config struct {
	// File is the task file path.
	File string

	// Source tells where File came from.
	Source Source

	// ConfigPath is the TOML file that was read, if any.
	ConfigPath string
}

type fileConfig struct {
	File string `toml:"file"`
}

// Resolve applies the chain: --file flag > TODO_FILE > config file > default.
// The config file is only read when neither flag nor env names a path.
func Resolve(flagFile string) (*Config, error) {
	if flagFile != "" {
		return &Config{File: flagFile, Source: SourceFlag}, nil
	}
	if env := os.Getenv(EnvFile); env != "" {
		return &Config{File: env, Source: SourceEnv}, nil
	}

	cfgPath, err := findConfigFile()
	if err != nil {
		return nil, err
	}
	if cfgPath != "" {
		fc, err := loadConfigFile(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", cfgPath, err)
		}
		if fc.File != "" {
			file := fc.File
			if !filepath.IsAbs(file) {
				file = filepath.Join(filepath.Dir(cfgPath), file)
			}
			return &Config{File: file, Source: SourceConfig, ConfigPath: cfgPath}, nil
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getwd: %w", err)
	}
	return &Config{
		File:       filepath.Join(wd, DefaultFileName),
		Source:     SourceDefault,
		ConfigPath: cfgPath,
	}, nil
}

// DefaultConfigDir returns the user config directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

// findConfigFile returns the project config file if present, else the user
// config file if present, else "".
func findConfigFile() (string, error) {
	candidates := []string{ProjectConfigFile}
	if dir := DefaultConfigDir(); dir != "" {
		candidates = append(candidates, filepath.Join(dir, UserConfigFile))
	}
	for _, p := range candidates {
		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			if abs, err := filepath.Abs(p); err == nil {
				p = abs
			}
			return p, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("stat config file: %w", err)
		}
	}
	return "", nil
}

func loadConfigFile(path string) (*fileConfig, error) {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return nil, err
	}
	return &fc, nil
}
