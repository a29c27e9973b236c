package types

import "time"

// Settings holds the runtime configuration for the watcher and the
// conversion pipeline. It is loaded once at startup and never mutated.
type Settings struct {
	// WatchDirectory is the directory monitored for new PDF files.
	WatchDirectory string `mapstructure:"watch_directory" json:"watch_directory" yaml:"watch_directory"`

	// OutputDirectory is where converted Markdown files are written.
	OutputDirectory string `mapstructure:"output_directory" json:"output_directory" yaml:"output_directory"`

	// ConversionMethod selects the conversion backend: text or ocr.
	ConversionMethod ConversionMethod `mapstructure:"conversion_method" json:"conversion_method" yaml:"conversion_method"`

	// LogFile is the append-only log destination.
	LogFile string `mapstructure:"log_file" json:"log_file" yaml:"log_file"`

	// LogLevel is the minimum level logged: debug, info, warn, or error.
	LogLevel string `mapstructure:"log_level" json:"log_level" yaml:"log_level"`

	// DebounceSeconds is how long a newly seen file must stay quiet before
	// it is processed. Duplicate filesystem events re-arm the timer.
	DebounceSeconds float64 `mapstructure:"debounce_seconds" json:"debounce_seconds" yaml:"debounce_seconds"`

	// MaxFileSizeMB skips input PDFs larger than this. Zero disables the cap.
	MaxFileSizeMB int `mapstructure:"max_file_size_mb" json:"max_file_size_mb" yaml:"max_file_size_mb"`

	// FrontMatter prepends a YAML front matter block to converted output.
	FrontMatter bool `mapstructure:"front_matter" json:"front_matter" yaml:"front_matter"`
}

// Debounce returns DebounceSeconds as a duration.
func (s *Settings) Debounce() time.Duration {
	return time.Duration(s.DebounceSeconds * float64(time.Second))
}

// MaxFileSizeBytes returns the input size cap in bytes, or 0 when disabled.
func (s *Settings) MaxFileSizeBytes() int64 {
	return int64(s.MaxFileSizeMB) * 1024 * 1024
}
