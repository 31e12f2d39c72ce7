package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrNilConfig is returned when merging into a nil *Config.
var ErrNilConfig = errors.New("nil target *Config")

// section returns a pointer to the zeroed Config section named key, or false
// for keys that are not Config sections.
func (c *Config) section(key string) (any, bool) {
	switch key {
	case "output":
		c.Output = OutputConfig{}
		return &c.Output, true
	case "logging":
		c.Logging = LoggingConfig{}
		return &c.Logging, true
	case "factors":
		c.Factors = FactorsConfig{}
		return &c.Factors, true
	default:
		return nil, false
	}
}

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// target. A section present in the overlay replaces the whole section in
// target; absent sections are left unchanged and unknown keys are ignored.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return ErrNilConfig
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	// Decode into a scratch copy so a bad section leaves target untouched.
	merged := *target
	for key, node := range overlay {
		dst, ok := merged.section(key)
		if !ok {
			continue
		}
		if err = node.Decode(dst); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}

	*target = merged
	return nil
}
