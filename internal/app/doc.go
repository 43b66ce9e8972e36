// Package app contains the core application logic. It wires configuration,
// logging, event sinks and metrics around one topic map and exposes the
// operations the command line drives: loading fixtures, resolving locators
// and reporting metrics. It is decoupled from any specific entrypoint.
package app
