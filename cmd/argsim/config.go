package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	argsimilarity "github.com/baditaflorin/go_argument_similarity"
)

// runConfig is the optional YAML run file accepted by the evaluate
// subcommand; flags override its fields.
type runConfig struct {
	Input                string         `yaml:"input"`
	OutputDir            string         `yaml:"output_dir"`
	FoldCount            int            `yaml:"fold_count"`
	TopicColumn          string         `yaml:"topic_column"`
	GoldColumn           string         `yaml:"gold_column"`
	ContinuousGoldColumn string         `yaml:"continuous_gold_column"`
	Schemes              []schemeConfig `yaml:"schemes"`
}

type schemeConfig struct {
	Name   string     `yaml:"name"`
	Column string     `yaml:"column"`
	Mix    *mixConfig `yaml:"mix"`
}

type mixConfig struct {
	Proposition string  `yaml:"proposition"`
	Complement  string  `yaml:"complement"`
	Weight      float64 `yaml:"weight"`
}

// loadRunConfig parses the YAML run file.
func loadRunConfig(path string) (*runConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg runConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// toSchemes converts the config scheme list to the facade's scheme type.
func (c *runConfig) toSchemes() []argsimilarity.Scheme {
	schemes := make([]argsimilarity.Scheme, 0, len(c.Schemes))
	for _, sc := range c.Schemes {
		scheme := argsimilarity.Scheme{Name: sc.Name, Column: sc.Column}
		if sc.Mix != nil {
			scheme.Mix = &argsimilarity.Mix{
				Proposition: sc.Mix.Proposition,
				Complement:  sc.Mix.Complement,
				Weight:      sc.Mix.Weight,
			}
		}
		schemes = append(schemes, scheme)
	}
	return schemes
}
