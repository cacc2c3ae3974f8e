// Package hcl provides the HCL implementation of config.Loader. It parses
// `uniform "<name>" { ... }` blocks from .hcl files and translates them into
// the format-agnostic configuration model.
package hcl
