package audio

import (
	"math"
	"sort"
)

// Features are the prosody measurements extracted from one PCM chunk by the
// local analyzer. Pitch values are in Hz, energies in dB.
type Features struct {
	DurationSeconds float64
	SpeechRatio     float64 // fraction of frames above the speech threshold
	SyllableBursts  int     // noise-to-speech transitions, a rough syllable count
	MeanPitch       float64
	PitchVariance   float64 // coefficient-of-variation based, ~0.5..2.0 for normal speech
	SNR             float64 // 90th minus 10th percentile frame energy, dB
}

const (
	frameMillis = 32
	minPitchHz  = 50
	maxPitchHz  = 400
)

// ExtractFeatures runs the energy/pitch heuristics over raw 16-bit mono PCM.
// Returns zeroed features for chunks too short to frame.
func ExtractFeatures(pcm []byte, sampleRate int) Features {
	samples := decodeInt16(pcm)
	if sampleRate <= 0 || len(samples) == 0 {
		return Features{}
	}

	frameLen := sampleRate * frameMillis / 1000
	if frameLen == 0 || len(samples) < frameLen {
		return Features{DurationSeconds: float64(len(samples)) / float64(sampleRate)}
	}

	var energies []float64
	for i := 0; i+frameLen <= len(samples); i += frameLen {
		energies = append(energies, frameEnergyDB(samples[i:i+frameLen]))
	}

	// Speech threshold sits above the noise floor estimate.
	noiseFloor := percentile(energies, 0.2)
	speechThreshold := noiseFloor + 9 // dB

	var speechFrames, bursts int
	prevSpeech := false
	var pitches []float64
	for i, e := range energies {
		speech := e > speechThreshold
		if speech {
			speechFrames++
			if !prevSpeech {
				bursts++
			}
			start := i * frameLen
			if p := framePitch(samples[start:start+frameLen], sampleRate); p > 0 {
				pitches = append(pitches, p)
			}
		}
		prevSpeech = speech
	}

	mean, variance := pitchStats(pitches)

	return Features{
		DurationSeconds: float64(len(samples)) / float64(sampleRate),
		SpeechRatio:     float64(speechFrames) / float64(len(energies)),
		SyllableBursts:  bursts,
		MeanPitch:       mean,
		PitchVariance:   variance,
		SNR:             percentile(energies, 0.9) - percentile(energies, 0.1),
	}
}

func decodeInt16(pcm []byte) []float64 {
	n := len(pcm) / 2
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		s := int16(pcm[2*i]) | int16(pcm[2*i+1])<<8
		out[i] = float64(s) / 32768.0
	}
	return out
}

func frameEnergyDB(frame []float64) float64 {
	var sum float64
	for _, s := range frame {
		sum += s * s
	}
	rms := math.Sqrt(sum / float64(len(frame)))
	if rms < 1e-9 {
		rms = 1e-9
	}
	return 20 * math.Log10(rms)
}

// framePitch estimates the fundamental frequency of one frame by normalized
// autocorrelation over the plausible voice lag range. Returns 0 when no lag
// correlates strongly enough to call the frame voiced.
func framePitch(frame []float64, sampleRate int) float64 {
	minLag := sampleRate / maxPitchHz
	maxLag := sampleRate / minPitchHz
	if maxLag >= len(frame) {
		maxLag = len(frame) - 1
	}
	if minLag < 1 || minLag >= maxLag {
		return 0
	}

	var energy float64
	for _, s := range frame {
		energy += s * s
	}
	if energy == 0 {
		return 0
	}

	bestLag, bestCorr := 0, 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		var corr float64
		for i := 0; i+lag < len(frame); i++ {
			corr += frame[i] * frame[i+lag]
		}
		corr /= energy
		if corr > bestCorr {
			bestCorr = corr
			bestLag = lag
		}
	}

	if bestLag == 0 || bestCorr < 0.3 {
		return 0
	}
	return float64(sampleRate) / float64(bestLag)
}

func pitchStats(pitches []float64) (mean, variance float64) {
	if len(pitches) == 0 {
		return 0, 0
	}
	for _, p := range pitches {
		mean += p
	}
	mean /= float64(len(pitches))

	var sq float64
	for _, p := range pitches {
		d := p - mean
		sq += d * d
	}
	stddev := math.Sqrt(sq / float64(len(pitches)))
	if mean > 0 {
		// Scaled coefficient of variation; lands around 1.0 for typical
		// conversational intonation.
		variance = 10 * stddev / mean
	}
	return mean, variance
}

func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	idx := int(p * float64(len(sorted)-1))
	return sorted[idx]
}
