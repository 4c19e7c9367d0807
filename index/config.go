package index

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every configuration error.
var ErrInvalidConfig = errors.New("index: invalid configuration")

// ConfigError names a configuration field and the value it rejected.
type ConfigError struct {
	Field string
	Token string
}

func (e *ConfigError) Error() string {
	switch e.Field {
	case "max_links", "ef_construction":
		return fmt.Sprintf("index: invalid %s: %q (must be positive)", e.Field, e.Token)
	default:
		return fmt.Sprintf("index: unknown %s: %q", e.Field, e.Token)
	}
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// Config selects an index variant and its graph parameters.
// Nil fields keep the graph defaults.
type Config struct {
	Metric         string  `toml:"metric" json:"metric"`
	MaxLinks       *int    `toml:"max_links,omitempty" json:"max_links,omitempty"`
	EFConstruction *int    `toml:"ef_construction,omitempty" json:"ef_construction,omitempty"`
	InsertMethod   *string `toml:"insert_method,omitempty" json:"insert_method,omitempty"`
	RemoveMethod   *string `toml:"remove_method,omitempty" json:"remove_method,omitempty"`
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}

// String returns a pointer to v.
func String(v string) *string {
	return &v
}
