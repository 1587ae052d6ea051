package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	FileName        = "leadtrack.yaml"
	DefaultHTTPAddr = "127.0.0.1:8787"
	DefaultLogLevel = "info"
)

type Config struct {
	WorkspacePath string `yaml:"-"`
	DBPath        string `yaml:"db_path"`
	NotesPath     string `yaml:"notes_path"`
	HTTPAddr      string `yaml:"http_addr"`
	LogLevel      string `yaml:"log_level"`
	// Operator pre-fills the operator name for shift start when no flag is given.
	Operator string `yaml:"operator"`
}

// New builds the workspace defaults and applies leadtrack.yaml when present.
// Relative paths in the file resolve against the workspace.
func New(workspacePath string) (Config, error) {
	if workspacePath == "" {
		return Config{}, fmt.Errorf("workspace path is required")
	}
	cfg := Config{
		WorkspacePath: workspacePath,
		DBPath:        filepath.Join(workspacePath, ".leadtrack", "leadtrack.db"),
		NotesPath:     filepath.Join(workspacePath, "shifts"),
		HTTPAddr:      DefaultHTTPAddr,
		LogLevel:      DefaultLogLevel,
	}

	payload, err := os.ReadFile(filepath.Join(workspacePath, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	file := Config{}
	if err := yaml.Unmarshal(payload, &file); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if file.DBPath != "" {
		cfg.DBPath = resolve(workspacePath, file.DBPath)
	}
	if file.NotesPath != "" {
		cfg.NotesPath = resolve(workspacePath, file.NotesPath)
	}
	if file.HTTPAddr != "" {
		cfg.HTTPAddr = file.HTTPAddr
	}
	if file.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(file.LogLevel)
	}
	cfg.Operator = strings.TrimSpace(file.Operator)
	return cfg, nil
}

func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
