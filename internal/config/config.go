// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mia-platform/tetl/internal/table"
	"github.com/mia-platform/tetl/internal/transform"
)

var (
	// ErrParsing reports failures that occur while decoding a configuration file.
	ErrParsing = errors.New("error parsing")
	// ErrInvalidConfig reports a configuration that decoded but fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config is the whole pipeline configuration document. It is parsed once at
// run start and read-only afterwards.
type Config struct {
	Source          Source          `yaml:"source"`
	Destination     Destination     `yaml:"destination"`
	Transformations Transformations `yaml:"transformations"`
}

// Source selects the source adapter type and the named tables it must load.
type Source struct {
	Type string                  `yaml:"type"`
	Data map[string]SourceParams `yaml:"data"`
}

// SourceParams holds the adapter-specific parameters of one named source
// entry. A scalar entry is shorthand for {path: value}.
type SourceParams map[string]any

// UnmarshalYAML accepts either a parameter mapping or a bare path scalar.
func (p *SourceParams) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var path string
		if err := value.Decode(&path); err != nil {
			return err
		}
		*p = SourceParams{"path": path}
		return nil
	}

	var params map[string]any
	if err := value.Decode(&params); err != nil {
		return err
	}
	*p = params
	return nil
}

// Destination selects the destination adapter type, its credentials and the
// name of the target store object.
type Destination struct {
	Type            string         `yaml:"type"`
	Credentials     map[string]any `yaml:"credentials"`
	DestinationName string         `yaml:"destination_name"`
}

// Transformations holds the ordered per-table transformation chains and the
// join operations of one pipeline.
type Transformations struct {
	Tables []TableSpec `yaml:"tables"`
	Join   []JoinSpec  `yaml:"join"`
}

// TableSpec is the ordered transformation chain of one named table.
type TableSpec struct {
	TableName       string `yaml:"table_name"`
	Transformations []Step `yaml:"transformations"`
}

// Step names a registered transformation and carries its parameters.
type Step struct {
	Name       string               `yaml:"name"`
	Parameters transform.Parameters `yaml:"parameters"`
}

// JoinSpec describes one relational join between two named tables.
type JoinSpec struct {
	Source1 string     `yaml:"source_1"`
	Source2 string     `yaml:"source_2"`
	On      StringList `yaml:"on"`
	How     string     `yaml:"how"`
}

// Kind returns the join kind configured in How.
func (j JoinSpec) Kind() (table.JoinKind, error) {
	return table.JoinKindFromString(j.How)
}

// StringList decodes either a single scalar or a sequence of strings, so the
// join "on" key can be written both ways.
type StringList []string

// UnmarshalYAML accepts a scalar or a sequence node.
func (l *StringList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var single string
		if err := value.Decode(&single); err != nil {
			return err
		}
		*l = StringList{single}
		return nil
	}

	var many []string
	if err := value.Decode(&many); err != nil {
		return err
	}
	*l = many
	return nil
}

// NewConfigFromPath parses and validates the configuration file at path.
// The decoder is strict about unknown fields; the file can be YAML or JSON.
func NewConfigFromPath(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	config := new(Config)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrParsing, path, err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidConfig, path, err)
	}

	return config, nil
}

// validate collects every problem in the document into a single error.
func (c *Config) validate() error {
	problems := []string{}

	if c.Source.Type == "" {
		problems = append(problems, "missing source type")
	}
	if len(c.Source.Data) == 0 {
		problems = append(problems, "no source data entries configured")
	}

	if c.Destination.Type == "" {
		problems = append(problems, "missing destination type")
	}
	if c.Destination.DestinationName == "" {
		problems = append(problems, "missing destination_name")
	}

	for i, spec := range c.Transformations.Tables {
		if spec.TableName == "" {
			problems = append(problems, fmt.Sprintf("table spec %d: missing table_name", i))
		}
		for j, step := range spec.Transformations {
			if step.Name == "" {
				problems = append(problems, fmt.Sprintf("table spec %d step %d: missing transformation name", i, j))
			}
		}
	}

	for i, join := range c.Transformations.Join {
		if join.Source1 == "" || join.Source2 == "" {
			problems = append(problems, fmt.Sprintf("join %d: both source_1 and source_2 are required", i))
		}
		if len(join.On) == 0 {
			problems = append(problems, fmt.Sprintf("join %d: missing join key", i))
		}
		if _, err := join.Kind(); err != nil {
			problems = append(problems, fmt.Sprintf("join %d: %s", i, err))
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
