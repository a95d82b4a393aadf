// Package commands defines the transportkeys CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - derive   Derive and store a key set for a contact and transport
//   - rotate   Rotate stored key sets to the current time period
//   - tag      Compute the tag of one stream
//   - header   Encrypt or decrypt a stream header
//   - status   List key sets, locally or from a running daemon
//   - daemon   Keep key sets rotated and serve status and metrics over HTTP
//
// # Implementation
//
// The root command resolves Config from flags and environment and builds the
// dependency graph (store, transport crypto, key manager) before any
// subcommand that needs stored state runs. Commands that only compute
// (tag, header) skip the store entirely.
package commands
