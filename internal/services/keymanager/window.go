package keymanager

import (
	"fmt"

	"transportkeys/internal/domain"
	"transportkeys/internal/protocol/transport"
)

// markSeen records stream as seen and slides the window. Afterwards every
// slot in the upper half of the window is unseen, and the base is past the
// lowest run of seen streams. Streams that fall off the bottom unseen are
// given up as lost.
func markSeen(w domain.ReorderingWindow, stream uint64) (domain.ReorderingWindow, error) {
	if stream < w.Base || stream-w.Base >= domain.ReorderingWindowSize {
		return w, fmt.Errorf("stream %d outside window [%d, %d)", stream, w.Base, w.Base+domain.ReorderingWindowSize)
	}
	offset := stream - w.Base
	bit := uint32(1) << offset
	if w.Seen&bit != 0 {
		return w, fmt.Errorf("stream %d already seen", stream)
	}
	w.Seen |= bit
	if slide := offset + 1; slide > domain.ReorderingWindowSize/2 {
		slide -= domain.ReorderingWindowSize / 2
		w.Seen >>= slide
		w.Base += slide
	}
	for w.Seen&1 == 1 {
		w.Seen >>= 1
		w.Base++
	}
	return w, nil
}

// unseen returns the stream numbers in w that may still arrive.
func unseen(w domain.ReorderingWindow) []uint64 {
	out := make([]uint64, 0, domain.ReorderingWindowSize)
	for i := uint64(0); i < domain.ReorderingWindowSize; i++ {
		stream := w.Base + i
		if stream > transport.MaxStreamNumber {
			break
		}
		if w.Seen&(uint32(1)<<i) == 0 {
			out = append(out, stream)
		}
	}
	return out
}
