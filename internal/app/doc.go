// Package app wires application dependencies for the CLI.
//
// It builds the key set store, transport crypto, logger, metrics and key
// manager from Config, exposing them via the Wire struct for commands to use.
package app
