// Package transport derives, windows and rotates the symmetric keys of a
// transport connection between two peers.
//
// Each peer holds, per transport, a tag key and a header key for three
// consecutive incoming time periods (previous, current, next) and for the
// current outgoing period. Tag keys produce the pseudorandom tag that opens
// every stream; header keys protect the stream header.
//
// Two key chains are supported:
//
//   - Ephemeral (TransportKeys): period p+1 keys are derived from period p
//     keys only, so a compromised key does not reveal earlier periods.
//   - Static (StaticTransportKeys): every period is derived directly from the
//     root key and the period number, so a peer can jump to any period.
//
// The two directions use distinct labels (alice/bob), so they never share key
// material even though both derive from the same root key.
//
// Concurrency: every function here is pure and operates on values; Crypto is
// safe for concurrent use.
package transport
