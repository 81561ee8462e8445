package sound

import (
	"encoding/binary"
	"math"

	"github.com/gopxl/beep"
)

// EncodePCM drains up to n samples from s into signed 16-bit little-endian
// interleaved stereo, the format ebiten/audio players consume. It stops
// early when s is exhausted.
func EncodePCM(s beep.Streamer, n int) []byte {
	out := make([]byte, 0, n*4)
	buf := make([][2]float64, 512)
	for n > 0 {
		chunk := buf
		if n < len(chunk) {
			chunk = chunk[:n]
		}
		got, ok := s.Stream(chunk)
		for _, frame := range chunk[:got] {
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(frame[0])))
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(frame[1])))
		}
		n -= got
		if !ok || got == 0 {
			break
		}
	}
	return out
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(math.Round(v * math.MaxInt16))
}
