package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultTargetFile is the instruction file forge manages when the
// project config does not name one.
const DefaultTargetFile = "AGENTS.md"

// ProjectConfig holds project-level settings loaded from forge.yml.
type ProjectConfig struct {
	// TargetFile is the instruction file to generate/merge, relative
	// to the project root. Defaults to AGENTS.md.
	TargetFile string `yaml:"targetFile,omitempty"`

	// AddMarkers wraps init output in FORGE/USER sentinel comments.
	AddMarkers bool `yaml:"addMarkers,omitempty"`

	// ConfidenceThreshold and SimilarityThreshold override the merge
	// engine defaults when non-zero.
	ConfidenceThreshold float64 `yaml:"confidenceThreshold,omitempty"`
	SimilarityThreshold float64 `yaml:"similarityThreshold,omitempty"`

	// ExtraKeywords are appended to the built-in header taxonomy.
	ExtraKeywords KeywordConfig `yaml:"extraKeywords,omitempty"`
}

// KeywordConfig lists additional header phrases per category.
type KeywordConfig struct {
	Preserve []string `yaml:"preserve,omitempty"`
	Replace  []string `yaml:"replace,omitempty"`
	Merge    []string `yaml:"merge,omitempty"`
}

// Load attempts to read forge.yml or forge.yaml from the given
// directory. Returns a zero-value config (not an error) if no config
// file exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"forge.yml", "forge.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}

// Target returns the configured instruction filename or the default.
func (c *ProjectConfig) Target() string {
	if c.TargetFile != "" {
		return c.TargetFile
	}
	return DefaultTargetFile
}
