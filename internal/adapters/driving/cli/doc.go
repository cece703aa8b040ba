// Package cli provides the cobra command tree of wsimport.
//
// # Architectural Position
//
// The CLI is a driving adapter. Commands call core services through the
// driving ports only. Services are installed with SetServices, or built on
// first use by the Bootstrap registered with SetBootstrap once the global
// flags are parsed.
package cli
