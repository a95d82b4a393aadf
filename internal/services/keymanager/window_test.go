package keymanager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transportkeys/internal/domain"
	"transportkeys/internal/protocol/transport"
)

func TestMarkSeen_InOrderSlides(t *testing.T) {
	var w domain.ReorderingWindow
	for i := uint64(0); i < 5; i++ {
		var err error
		w, err = markSeen(w, i)
		require.NoError(t, err)
	}
	assert.Equal(t, domain.ReorderingWindow{Base: 5}, w)
}

func TestMarkSeen_OutOfOrder(t *testing.T) {
	w, err := markSeen(domain.ReorderingWindow{}, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), w.Base)
	assert.Equal(t, uint32(0b100), w.Seen)

	w, err = markSeen(w, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), w.Base)

	w, err = markSeen(w, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.ReorderingWindow{Base: 3}, w)
}

func TestMarkSeen_Rejects(t *testing.T) {
	w := domain.ReorderingWindow{Base: 10, Seen: 0b10}

	_, err := markSeen(w, 9)
	assert.Error(t, err, "below base")
	_, err = markSeen(w, 10+domain.ReorderingWindowSize)
	assert.Error(t, err, "beyond window")
	_, err = markSeen(w, 11)
	assert.Error(t, err, "replay")
}

func TestUnseen(t *testing.T) {
	got := unseen(domain.ReorderingWindow{Base: 4, Seen: 0b101})
	require.Len(t, got, domain.ReorderingWindowSize-2)
	assert.Equal(t, uint64(5), got[0])
	assert.Equal(t, uint64(7), got[1])
	assert.Equal(t, uint64(4+domain.ReorderingWindowSize-1), got[len(got)-1])
}

func TestUnseen_StopsAtMaxStreamNumber(t *testing.T) {
	got := unseen(domain.ReorderingWindow{Base: transport.MaxStreamNumber - 1})
	assert.Equal(t, []uint64{transport.MaxStreamNumber - 1, transport.MaxStreamNumber}, got)
}

func TestMarkSeen_SlidesPastLostStream(t *testing.T) {
	// Stream 0 never arrives.
	var w domain.ReorderingWindow
	for stream := uint64(1); stream < 40; stream++ {
		var err error
		w, err = markSeen(w, stream)
		require.NoError(t, err, "stream %d", stream)
	}
	assert.Equal(t, domain.ReorderingWindow{Base: 40}, w)
}

func TestMarkSeen_UpperHalfStaysUnseen(t *testing.T) {
	w, err := markSeen(domain.ReorderingWindow{Base: 100}, 100+domain.ReorderingWindowSize-1)
	require.NoError(t, err)
	assert.Equal(t, uint64(100+domain.ReorderingWindowSize/2), w.Base)
	assert.Equal(t, uint32(1)<<(domain.ReorderingWindowSize/2-1), w.Seen)
	assert.Zero(t, w.Seen>>(domain.ReorderingWindowSize/2))
}
