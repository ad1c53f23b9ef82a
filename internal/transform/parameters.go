// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package transform

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Param is a single transformation parameter entry.
type Param struct {
	Key   string
	Value any
}

// Parameters holds the parameters of one transformation step, preserving the
// order the keys have in the configuration document. Go maps would lose that
// order, and set_types must process columns in it.
type Parameters []Param

// UnmarshalYAML decodes a mapping node into ordered parameter entries.
func (p *Parameters) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("parameters must be a mapping, got %s", nodeKindName(value.Kind))
	}

	params := make(Parameters, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var key string
		if err := value.Content[i].Decode(&key); err != nil {
			return err
		}

		var paramValue any
		if err := value.Content[i+1].Decode(&paramValue); err != nil {
			return err
		}

		params = append(params, Param{Key: key, Value: paramValue})
	}

	*p = params
	return nil
}

// Get returns the value for key, or false if the key is absent.
func (p Parameters) Get(key string) (any, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}
	return nil, false
}

// nodeKindName names a yaml node kind for error messages.
func nodeKindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
