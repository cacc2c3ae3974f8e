package docfile

import (
	"bytes"

	"github.com/hashicorp/hcl/v2"
	"github.com/pelletier/go-toml/v2"
)

type tomlDocument struct {
	Uniforms []entry `toml:"uniforms"`
}

// decodeTOML reads `[[uniforms]]` tables. TOML carries no positions, so
// entries point at the start of the file.
func decodeTOML(_ string, data []byte) ([]entry, error) {
	var doc tomlDocument
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	for i := range doc.Uniforms {
		doc.Uniforms[i].pos = hcl.InitialPos
	}
	return doc.Uniforms, nil
}
