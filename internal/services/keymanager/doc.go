// Package keymanager keeps the live transport key sets of every contact and
// turns them into stream contexts.
//
// It derives key sets when a contact is added, rotates them as the clock
// crosses time-period boundaries, allocates outgoing stream numbers, and
// recognises incoming tags against a reordering window of 32 streams for
// each of the three incoming periods. Every change is written through to the
// KeySetStore before the call returns.
package keymanager
