// Package statusapi exposes a running key manager over HTTP and provides a
// client for it.
//
// HTTP API
//
//	GET /keysets
//	    Return a summary of every key set. Keys are never sent; only their
//	    BLAKE3 fingerprints.
//
//	POST /rotate
//	    Rotate every key set to the current period and return the summaries.
//
// Non-2xx statuses are returned by the client as errors carrying the method,
// path and status text.
package statusapi
