package audio

// DefaultChunkThreshold is 5 seconds of 16 kHz, 16-bit mono PCM.
const DefaultChunkThreshold = 16000 * 2 * 5

// Accumulator buffers raw PCM frames for one stream and reports when enough
// audio has piled up for a chunk analysis. It is owned by a single stream
// handler goroutine and is not safe for concurrent use.
type Accumulator struct {
	threshold int
	buf       []byte
}

func NewAccumulator(thresholdBytes int) *Accumulator {
	if thresholdBytes <= 0 {
		thresholdBytes = DefaultChunkThreshold
	}
	return &Accumulator{threshold: thresholdBytes}
}

// Append adds incoming frames to the buffer. It returns true exactly when the
// buffered size crosses the threshold; the caller is expected to Drain before
// appending more. Sub-threshold remainders are retained for the next cycle.
func (a *Accumulator) Append(data []byte) bool {
	before := len(a.buf)
	a.buf = append(a.buf, data...)
	return before < a.threshold && len(a.buf) >= a.threshold
}

// Drain returns the buffered audio and resets the buffer. The retrieve and
// reset are a single step so a chunk can neither be processed twice nor
// partially lost between the ready signal and the analysis hand-off.
func (a *Accumulator) Drain() []byte {
	out := a.buf
	a.buf = nil
	return out
}

// Len reports the currently buffered byte count. Used on end-of-stream to
// decide whether a final forced drain is needed.
func (a *Accumulator) Len() int {
	return len(a.buf)
}

// Threshold returns the configured ready threshold in bytes.
func (a *Accumulator) Threshold() int {
	return a.threshold
}
