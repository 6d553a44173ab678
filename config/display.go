package config

import (
	"fmt"

	"golang.org/x/text/language"
)

// DisplayConfig controls how record costs and dates are rendered.
type DisplayConfig struct {
	// Locale is a BCP 47 tag such as "en-US" or "fr-FR". It selects both the
	// number formatting and the currency of cost displays.
	Locale string `json:"locale"`
}

// SetDefaults applies sane defaults.
func (c *DisplayConfig) SetDefaults() {
	if c.Locale == "" {
		c.Locale = "en-US"
	}
}

// Validate checks mandatory fields.
func (c DisplayConfig) Validate() error {
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("unknown display locale %s", c.Locale)
	}
	return nil
}
