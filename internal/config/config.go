// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads and validates the pdf-to-md configuration file.
// Settings come from a YAML file, overridden by PDF_TO_MD_* environment
// variables. A missing config file is not an error: defaults apply.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/omriariav/pdf-to-md/internal/logging"
	"github.com/omriariav/pdf-to-md/pkg/types"
)

const (
	configName = "pdf-to-md"
	envPrefix  = "PDF_TO_MD"
)

// DefaultPath returns the default config file location,
// ~/.config/pdf-to-md/pdf-to-md.yaml.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", configName, configName+".yaml")
}

// defaults returns the default value for every config key.
func defaults() map[string]any {
	home, _ := os.UserHomeDir()
	return map[string]any{
		"watch_directory":   filepath.Join(home, "Downloads"),
		"output_directory":  filepath.Join(home, "AI_Context", "pdfs"),
		"conversion_method": string(types.MethodText),
		"log_file":          filepath.Join(home, "Library", "Logs", "pdf-to-md.log"),
		"log_level":         "info",
		"debounce_seconds":  2.0,
		"max_file_size_mb":  0,
		"front_matter":      false,
	}
}

// Load reads the config file at cfgFile into a fresh viper instance and
// returns validated settings. When cfgFile is empty, it searches for
// pdf-to-md.yaml in the current directory and ~/.config/pdf-to-md/; if no
// file is found, defaults apply.
func Load(cfgFile string) (*types.Settings, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		slog.Warn("no config file found, using defaults")
	}

	return FromViper(v)
}

// FromViper builds validated settings from an initialized viper instance,
// applying defaults for missing keys and expanding the path keys.
func FromViper(v *viper.Viper) (*types.Settings, error) {
	for key, value := range defaults() {
		v.SetDefault(key, value)
	}

	var set types.Settings
	if err := v.Unmarshal(&set); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	for _, p := range []*string{&set.WatchDirectory, &set.OutputDirectory, &set.LogFile} {
		expanded, err := expandPath(*p)
		if err != nil {
			return nil, err
		}
		*p = expanded
	}

	if err := validate(&set); err != nil {
		return nil, err
	}
	return &set, nil
}

// expandPath expands a leading ~ and environment variables, then makes the
// path absolute.
func expandPath(p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("path keys must not be empty")
	}

	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	p = os.ExpandEnv(p)

	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolving path %s: %w", p, err)
	}
	return abs, nil
}

func validate(set *types.Settings) error {
	valid := false
	for _, m := range types.Methods() {
		if set.ConversionMethod == m {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unsupported conversion_method %q: use text or ocr", set.ConversionMethod)
	}

	if _, err := logging.ParseLevel(set.LogLevel); err != nil {
		return err
	}

	if set.DebounceSeconds < 0 {
		return fmt.Errorf("debounce_seconds must not be negative, got %v", set.DebounceSeconds)
	}
	if set.MaxFileSizeMB < 0 {
		return fmt.Errorf("max_file_size_mb must not be negative, got %d", set.MaxFileSizeMB)
	}
	return nil
}

// exampleConfig is the commented config file written by WriteExample.
// Values shown are the defaults.
const exampleConfig = `# pdf-to-md configuration

# Directory monitored for new PDF files.
watch_directory: ~/Downloads

# Directory where converted Markdown files are written.
output_directory: ~/AI_Context/pdfs

# Conversion backend.
#   text - embedded text layer extraction (fast, no OCR)
#   ocr  - MuPDF rendering with Tesseract fallback for scanned pages
conversion_method: text

# Append-only log destination.
log_file: ~/Library/Logs/pdf-to-md.log

# Minimum level logged: debug, info, warn, or error.
log_level: info

# Seconds a new file must stay quiet before it is converted.
debounce_seconds: 2

# Skip PDFs larger than this many megabytes (0 = no limit).
max_file_size_mb: 0

# Prepend a YAML front matter block to converted output.
front_matter: false
`

// WriteExample writes a commented example config to path. It refuses to
// overwrite an existing file unless force is set.
func WriteExample(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(exampleConfig), 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
