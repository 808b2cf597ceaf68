// Package keyset holds the expected top-level key sets of each payload format
// and compares payload keys against them.
package keyset

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed keysets.yaml
var manifestYAML []byte

// Set lists the keys a payload may carry (Superset) and must carry (Minimum).
type Set struct {
	Minimum  []string `yaml:"minimum"`
	Superset []string `yaml:"superset"`
}

// Manifest holds one Set per format.
type Manifest struct {
	Original        Set `yaml:"original"`
	ActivityStreams Set `yaml:"activity_streams"`
}

// Parse decodes a YAML manifest. Every minimum key must also be in its superset.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("keyset: %w", err)
	}
	for name, s := range map[string]Set{"original": m.Original, "activity_streams": m.ActivityStreams} {
		if len(s.Superset) == 0 {
			return nil, fmt.Errorf("keyset: %s: empty superset", name)
		}
		for _, k := range s.Minimum {
			if !slices.Contains(s.Superset, k) {
				return nil, fmt.Errorf("keyset: %s: minimum key %q missing from superset", name, k)
			}
		}
	}
	return &m, nil
}

var (
	defaultOnce     sync.Once
	defaultManifest *Manifest
	defaultErr      error
)

// Default returns the embedded manifest.
func Default() (*Manifest, error) {
	defaultOnce.Do(func() {
		defaultManifest, defaultErr = Parse(manifestYAML)
	})
	return defaultManifest, defaultErr
}

// Check compares keys against s. Both results are sorted.
func (s Set) Check(keys []string) (missing, unexpected []string) {
	for _, k := range s.Minimum {
		if !slices.Contains(keys, k) {
			missing = append(missing, k)
		}
	}
	for _, k := range keys {
		if !slices.Contains(s.Superset, k) {
			unexpected = append(unexpected, k)
		}
	}
	slices.Sort(missing)
	slices.Sort(unexpected)
	return missing, unexpected
}
