// Package registry provides the central "glue" for the module system.
//
// The Registry maps the sink kinds accepted on the command line (e.g.
// "glprint") to the compiled Go code that opens a sink session. Modules
// register themselves at startup; the app then opens exactly one session
// per run and asks it for a sink for every transmitted uniform.
package registry
