package windowtable

import (
	"errors"
	"fmt"
	"os"

	"github.com/henderiw/unioninterval/pkg/interval"
	"gopkg.in/yaml.v3"
)

// Config is the file format of a window table:
//
//	entries:
//	- name: backup
//	  labels:
//	    kind: maintenance
//	  window: "[1, 3)∪[10, 12)"
type Config struct {
	Entries []EntryConfig `yaml:"entries"`
}

type EntryConfig struct {
	Name   string            `yaml:"name"`
	Labels map[string]string `yaml:"labels,omitempty"`
	Window string            `yaml:"window"`
}

// LoadConfig decodes a YAML config and parses every window in domain d.
func LoadConfig[T any](b []byte, d interval.Domain[T], parse interval.ParseFunc[T]) (Entries[T], error) {
	cfg := Config{}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("cannot decode window table config: %w", err)
	}

	var errm error
	entries := Entries[T]{}
	for i, ec := range cfg.Entries {
		if ec.Name == "" {
			errm = errors.Join(errm, fmt.Errorf("entry %d has no name", i))
			continue
		}
		window, err := d.Parse(ec.Window, parse)
		if err != nil {
			errm = errors.Join(errm, fmt.Errorf("entry %s: %w", ec.Name, err))
			continue
		}
		entries = append(entries, NewEntry(ec.Name, window, ec.Labels))
	}
	if errm != nil {
		return nil, errm
	}
	return entries, nil
}

func LoadFile[T any](path string, d interval.Domain[T], parse interval.ParseFunc[T]) (Entries[T], error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadConfig(b, d, parse)
}

// Marshal renders entries in the format read by LoadConfig.
func Marshal[T any](entries Entries[T]) ([]byte, error) {
	cfg := Config{Entries: make([]EntryConfig, 0, len(entries))}
	for _, e := range entries {
		cfg.Entries = append(cfg.Entries, EntryConfig{
			Name:   e.Name(),
			Labels: e.Labels(),
			Window: e.Window().String(),
		})
	}
	return yaml.Marshal(cfg)
}
