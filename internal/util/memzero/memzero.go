// Package memzero wipes secret material from memory on a best-effort basis.
package memzero

import (
	"crypto/subtle"
	"runtime"
)

// Zero overwrites b with zeros in a constant-time friendly way.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	zero := make([]byte, len(b))
	subtle.ConstantTimeCopy(1, b, zero)
	runtime.KeepAlive(&b)
}

// Keys zeroes each 32-byte key in place. Nil entries are skipped.
func Keys(keys ...*[32]byte) {
	for _, k := range keys {
		if k != nil {
			Zero(k[:])
		}
	}
}
