package audio

import (
	"bytes"
	"testing"
)

func TestAccumulatorReadySignal(t *testing.T) {
	tests := []struct {
		name      string
		threshold int
		frames    []int // frame sizes appended in order
		wantReady []bool
	}{
		{
			name:      "single frame below threshold",
			threshold: 100,
			frames:    []int{99},
			wantReady: []bool{false},
		},
		{
			name:      "exact threshold",
			threshold: 100,
			frames:    []int{100},
			wantReady: []bool{true},
		},
		{
			name:      "crossing in steps",
			threshold: 100,
			frames:    []int{60, 30, 20},
			wantReady: []bool{false, false, true},
		},
		{
			name:      "ready fires once until drained",
			threshold: 100,
			frames:    []int{150, 10},
			wantReady: []bool{true, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAccumulator(tt.threshold)
			for i, size := range tt.frames {
				got := a.Append(make([]byte, size))
				if got != tt.wantReady[i] {
					t.Errorf("frame %d (size %d): ready = %v, want %v", i, size, got, tt.wantReady[i])
				}
			}
		})
	}
}

func TestAccumulatorDrainResetsAndPreservesBytes(t *testing.T) {
	a := NewAccumulator(4)

	a.Append([]byte{1, 2})
	a.Append([]byte{3, 4, 5})

	got := a.Drain()
	if !bytes.Equal(got, []byte{1, 2, 3, 4, 5}) {
		t.Fatalf("Drain = %v, want bytes in append order", got)
	}
	if a.Len() != 0 {
		t.Fatalf("Len after Drain = %d, want 0", a.Len())
	}

	// Remainder accumulation restarts from zero.
	if ready := a.Append([]byte{9, 9, 9}); ready {
		t.Fatal("ready after drain with sub-threshold append")
	}
	if ready := a.Append([]byte{9}); !ready {
		t.Fatal("not ready after re-crossing threshold")
	}
}

func TestAccumulatorDrainEmpty(t *testing.T) {
	a := NewAccumulator(10)
	if got := a.Drain(); len(got) != 0 {
		t.Fatalf("Drain on empty accumulator = %v, want empty", got)
	}
}

func TestAccumulatorDefaultThreshold(t *testing.T) {
	a := NewAccumulator(0)
	if a.Threshold() != DefaultChunkThreshold {
		t.Fatalf("Threshold = %d, want %d", a.Threshold(), DefaultChunkThreshold)
	}
}
