package config

import "fmt"

// DefaultQuotaBytes caps the fleet store at 5 MiB, roughly the budget a
// browser grants a single origin's local storage.
const DefaultQuotaBytes = 5 * 1024 * 1024

// StorageConfig selects and sizes the fleet document store.
type StorageConfig struct {
	// Backend selects the store type: "file" or "memory".
	Backend string `json:"backend"`
	// Path is the directory file-backed documents live in.
	Path string `json:"path"`
	// QuotaBytes caps the total stored bytes. Zero means unlimited; absent
	// means the default quota.
	QuotaBytes *int64 `json:"quota_bytes"`
}

// SetDefaults applies sane defaults.
func (c *StorageConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "file"
	}
	if c.Path == "" {
		c.Path = "garage_data"
	}
	if c.QuotaBytes == nil {
		quota := int64(DefaultQuotaBytes)
		c.QuotaBytes = &quota
	}
}

// Validate checks mandatory fields.
func (c StorageConfig) Validate() error {
	if c.Backend != "file" && c.Backend != "memory" {
		return fmt.Errorf("unknown storage backend %s", c.Backend)
	}
	if c.Backend == "file" && c.Path == "" {
		return fmt.Errorf("storage path is required for the file backend")
	}
	if c.QuotaBytes != nil && *c.QuotaBytes < 0 {
		return fmt.Errorf("storage quota must not be negative")
	}
	return nil
}

// Quota returns the effective quota in bytes.
func (c StorageConfig) Quota() int64 {
	if c.QuotaBytes == nil {
		return DefaultQuotaBytes
	}
	return *c.QuotaBytes
}
