package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level config keys.
const (
	keyVersion = "version"
	keySource  = "source"
	keyCache   = "cache"
	keyStore   = "store"
	keyView    = "view"
	keyLogging = "logging"
)

//nolint:gochecknoglobals // Constant lookup table
var knownTopLevelKeys = map[string]bool{
	keyVersion: true,
	keySource:  true,
	keyCache:   true,
	keyStore:   true,
	keyView:    true,
	keyLogging: true,
}

// ShallowMergeYAML overlays the YAML file at overlayPath onto target. Each
// top-level key present in the overlay replaces the whole section; keys the
// overlay omits keep their values. Unknown keys are ignored.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]any
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, value := range overlay {
		if !knownTopLevelKeys[key] {
			continue
		}

		sectionBytes, marshalErr := yaml.Marshal(value)
		if marshalErr != nil {
			return fmt.Errorf("re-marshalling overlay section %q: %w", key, marshalErr)
		}
		if err = unmarshalSection(target, key, sectionBytes); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}
	return nil
}

// unmarshalSection decodes data into a fresh value for key so the section is
// replaced rather than merged.
func unmarshalSection(target *Config, key string, data []byte) error {
	switch key {
	case keyVersion:
		var v string
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Version = v
	case keySource:
		var v SourceConfig
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Source = v
	case keyCache:
		var v CacheConfig
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Cache = v
	case keyStore:
		var v StoreConfig
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Store = v
	case keyView:
		var v ViewConfig
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.View = v
	case keyLogging:
		var v LoggingConfig
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Logging = v
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
