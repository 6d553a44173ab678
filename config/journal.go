package config

import "fmt"

// JournalConfig defines settings for the operation journal and its rotation.
type JournalConfig struct {
	// Enabled turns journaling on.
	Enabled bool `json:"enabled"`
	// Path is the file location of the journal.
	Path string `json:"path"`
	// MaxSizeMB triggers rotation when the file exceeds this size in megabytes.
	MaxSizeMB int `json:"max_size_mb"`
	// MaxBackups limits the number of rotated files to keep.
	MaxBackups int `json:"max_backups"`
	// MaxAgeDays removes rotated files older than this number of days.
	MaxAgeDays int `json:"max_age_days"`
}

// SetDefaults applies sane defaults.
func (c *JournalConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "garage_journal.jsonl"
	}
	if c.MaxSizeMB == 0 {
		c.MaxSizeMB = 10
	}
}

// Validate checks mandatory fields.
func (c JournalConfig) Validate() error {
	if c.Enabled && c.Path == "" {
		return fmt.Errorf("journal path is required")
	}
	if c.MaxSizeMB < 0 || c.MaxBackups < 0 || c.MaxAgeDays < 0 {
		return fmt.Errorf("journal rotation settings must not be negative")
	}
	return nil
}
