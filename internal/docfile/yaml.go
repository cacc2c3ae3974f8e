package docfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"gopkg.in/yaml.v3"
)

var entryKeys = []string{"name", "type", "value", "compute", "location", "partial"}

type yamlDocument struct {
	Uniforms []yaml.Node `yaml:"uniforms"`
}

func decodeYAML(_ string, data []byte) ([]entry, error) {
	var doc yamlDocument
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}

	entries := make([]entry, 0, len(doc.Uniforms))
	for i := range doc.Uniforms {
		node := &doc.Uniforms[i]
		if node.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: uniform must be a mapping", node.Line)
		}
		for k := 0; k+1 < len(node.Content); k += 2 {
			if key := node.Content[k].Value; !slices.Contains(entryKeys, key) {
				return nil, fmt.Errorf("line %d: field %s not found in uniform", node.Content[k].Line, key)
			}
		}

		var e entry
		if err := node.Decode(&e); err != nil {
			return nil, err
		}
		e.pos = hcl.Pos{Line: node.Line, Column: node.Column}
		entries = append(entries, e)
	}
	return entries, nil
}
