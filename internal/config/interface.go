package config

import (
	"context"
)

// Loader is the interface for a format-specific definition loader.
type Loader interface {
	// Extensions lists the file extensions the loader reads, with the dot.
	Extensions() []string

	// Load reads the given files, translates them into the format-agnostic
	// model and returns it. Uniforms keep the order of the paths and their
	// order within each file.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
