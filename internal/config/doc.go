// Package config defines the format-agnostic model of a uniform grid
// definition, along with the Loader interface implemented by the HCL, YAML
// and TOML loaders.
//
// The `config.Model` is the single source of truth for the `builder`
// package. Concrete loaders live in separate packages.
package config
