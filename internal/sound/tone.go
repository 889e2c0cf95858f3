package sound

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/zjrosen/breathe/internal/breathing"
)

// Tone shape: a soft sine with a short fade in and a long exponential release.
const (
	SampleRate   = 44100
	ToneLength   = 2500 * time.Millisecond
	attackLength = 100 * time.Millisecond
	peakGain     = 0.15
	floorGain    = 0.001
	baseHz       = 220.0
)

var phaseHz = map[breathing.Phase]float64{
	breathing.Inhale:  261.63, // C4
	breathing.HoldIn:  329.63, // E4
	breathing.Exhale:  196.00, // G3
	breathing.HoldOut: 220.00, // A3
}

// Frequency returns the pitch used for phase.
func Frequency(phase breathing.Phase) float64 {
	if hz, ok := phaseHz[phase]; ok {
		return hz
	}
	return baseHz
}

// Gain returns the envelope level at offset t into the tone.
func Gain(t time.Duration) float64 {
	switch {
	case t <= 0:
		return 0
	case t < attackLength:
		return peakGain * float64(t) / float64(attackLength)
	case t >= ToneLength:
		return floorGain
	default:
		// Exponential ramp from peakGain at the end of the attack to floorGain at the end.
		frac := float64(t-attackLength) / float64(ToneLength-attackLength)
		return peakGain * math.Pow(floorGain/peakGain, frac)
	}
}

// Synthesize returns the samples of the tone for phase in [-1, 1].
func Synthesize(phase breathing.Phase) []float64 {
	hz := Frequency(phase)
	n := int(ToneLength.Seconds() * SampleRate)
	samples := make([]float64, n)
	for i := range samples {
		t := time.Duration(float64(i) / SampleRate * float64(time.Second))
		samples[i] = Gain(t) * math.Sin(2*math.Pi*hz*float64(i)/SampleRate)
	}
	return samples
}

// wavHeader is the canonical 44-byte RIFF header for 16-bit mono PCM.
type wavHeader struct {
	ChunkID       [4]byte
	ChunkSize     uint32
	Format        [4]byte
	Subchunk1ID   [4]byte
	Subchunk1Size uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Subchunk2ID   [4]byte
	Subchunk2Size uint32
}

// EncodeWAV writes samples as a 16-bit mono PCM WAV stream.
func EncodeWAV(w io.Writer, samples []float64) error {
	dataSize := uint32(len(samples) * 2)
	header := wavHeader{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + dataSize,
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1,
		NumChannels:   1,
		SampleRate:    SampleRate,
		ByteRate:      SampleRate * 2,
		BlockAlign:    2,
		BitsPerSample: 16,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: dataSize,
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("writing wav header: %w", err)
	}

	pcm := make([]int16, len(samples))
	for i, s := range samples {
		s = math.Max(-1, math.Min(1, s))
		pcm[i] = int16(math.Round(s * math.MaxInt16))
	}
	if err := binary.Write(w, binary.LittleEndian, pcm); err != nil {
		return fmt.Errorf("writing wav samples: %w", err)
	}
	return nil
}

// WAV returns the encoded tone for phase.
func WAV(phase breathing.Phase) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeWAV(&buf, Synthesize(phase)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
