package gemini

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// EncodePCM16 converts float32 samples in [-1, 1] to base64 16-bit
// little-endian PCM, the outbound frame format of the live session.
func EncodePCM16(samples []float32) string {
	buf := make([]byte, len(samples)*2)
	for i, sample := range samples {
		if sample > 1 {
			sample = 1
		} else if sample < -1 {
			sample = -1
		}
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(int16(sample*32767)))
	}
	return base64.StdEncoding.EncodeToString(buf)
}

// DecodePCM16 converts base64 16-bit little-endian PCM back to float32
// samples.
func DecodePCM16(b64 string) ([]float32, error) {
	buf, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 audio frame: %w", err)
	}
	if len(buf)%2 != 0 {
		return nil, fmt.Errorf("PCM16 frame has odd length %d", len(buf))
	}

	samples := make([]float32, len(buf)/2)
	for i := range samples {
		samples[i] = float32(int16(binary.LittleEndian.Uint16(buf[i*2:]))) / 32767
	}
	return samples, nil
}

// Downsample reduces the sample rate of a float32 frame by plain
// decimation. fromRate must be a positive multiple of toRate; capture
// devices commonly deliver 48kHz frames that the live session needs at
// 16kHz.
func Downsample(samples []float32, fromRate, toRate int) ([]float32, error) {
	if fromRate <= 0 || toRate <= 0 || fromRate%toRate != 0 {
		return nil, fmt.Errorf("cannot downsample from %dHz to %dHz", fromRate, toRate)
	}

	step := fromRate / toRate
	out := make([]float32, 0, len(samples)/step+1)
	for i := 0; i < len(samples); i += step {
		out = append(out, samples[i])
	}
	return out, nil
}
