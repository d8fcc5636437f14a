package audio

import (
	"encoding/binary"
	"math"
	"testing"
)

func sinePCM(freq float64, amplitude float64, sampleRate, samples int) []byte {
	out := make([]byte, samples*2)
	for i := 0; i < samples; i++ {
		v := amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
		s := int16(v * 32767)
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}
	return out
}

func TestExtractFeaturesEmptyInput(t *testing.T) {
	f := ExtractFeatures(nil, 16000)
	if f != (Features{}) {
		t.Errorf("empty input: got %+v, want zero features", f)
	}
}

func TestExtractFeaturesTooShortToFrame(t *testing.T) {
	// 100 samples at 16 kHz is under one 32ms frame.
	f := ExtractFeatures(make([]byte, 200), 16000)
	if f.SpeechRatio != 0 || f.MeanPitch != 0 {
		t.Errorf("short input: got %+v, want duration only", f)
	}
	if f.DurationSeconds == 0 {
		t.Error("short input: duration should still be reported")
	}
}

func TestExtractFeaturesVoicedTone(t *testing.T) {
	const sampleRate = 16000
	// Half a second of silence followed by half a second of a 200 Hz tone.
	silence := make([]byte, sampleRate) // 0.5s of 16-bit zeros
	tone := sinePCM(200, 0.3, sampleRate, sampleRate/2)
	pcm := append(silence, tone...)

	f := ExtractFeatures(pcm, sampleRate)

	if math.Abs(f.DurationSeconds-1.0) > 0.05 {
		t.Errorf("DurationSeconds = %v, want ~1.0", f.DurationSeconds)
	}
	if f.SpeechRatio < 0.3 || f.SpeechRatio > 0.7 {
		t.Errorf("SpeechRatio = %v, want roughly half", f.SpeechRatio)
	}
	if f.SyllableBursts != 1 {
		t.Errorf("SyllableBursts = %d, want 1 for a single contiguous tone", f.SyllableBursts)
	}
	if math.Abs(f.MeanPitch-200) > 15 {
		t.Errorf("MeanPitch = %v, want ~200 Hz", f.MeanPitch)
	}
	if f.SNR <= 0 {
		t.Errorf("SNR = %v, want positive for tone over silence", f.SNR)
	}
}

func TestEncodeWAVHeader(t *testing.T) {
	pcm := []byte{1, 2, 3, 4}
	wav := EncodeWAV(pcm, 16000, 2, 1)

	if len(wav) != 44+len(pcm) {
		t.Fatalf("len = %d, want %d", len(wav), 44+len(pcm))
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Fatal("missing RIFF/WAVE magic")
	}
	if got := binary.LittleEndian.Uint32(wav[24:28]); got != 16000 {
		t.Errorf("sample rate = %d, want 16000", got)
	}
	if got := binary.LittleEndian.Uint16(wav[34:36]); got != 16 {
		t.Errorf("bits per sample = %d, want 16", got)
	}
	if got := binary.LittleEndian.Uint32(wav[40:44]); got != uint32(len(pcm)) {
		t.Errorf("data length = %d, want %d", got, len(pcm))
	}
}
