package tonnetz

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Wav encodes the buffer as a stereo .wav file, either as 16-bit integer or
// as 32-bit float samples.
func (b AudioBuffer) Wav(sampleRate int, pcm16 bool) ([]byte, error) {
	buf := new(bytes.Buffer)
	wavHeader(len(b)*2, sampleRate, pcm16, buf)
	if err := b.rawToBuffer(pcm16, buf); err != nil {
		return nil, fmt.Errorf("Wav failed: %v", err)
	}
	return buf.Bytes(), nil
}

// Raw encodes the buffer as interleaved little-endian samples with no header.
func (b AudioBuffer) Raw(pcm16 bool) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := b.rawToBuffer(pcm16, buf); err != nil {
		return nil, fmt.Errorf("Raw failed: %v", err)
	}
	return buf.Bytes(), nil
}

func (b AudioBuffer) rawToBuffer(pcm16 bool, buf *bytes.Buffer) error {
	var err error
	if pcm16 {
		int16data := make([][2]int16, len(b))
		for i, frame := range b {
			for c, v := range frame {
				int16data[i][c] = int16(min(max(math.Round(float64(v)*math.MaxInt16), math.MinInt16), math.MaxInt16))
			}
		}
		err = binary.Write(buf, binary.LittleEndian, int16data)
	} else {
		err = binary.Write(buf, binary.LittleEndian, b)
	}
	if err != nil {
		return fmt.Errorf("could not binary write data to binary buffer: %v", err)
	}
	return nil
}

// wavHeader writes the RIFF header of a stereo .wav file holding numSamples
// samples (two per frame). Float files carry the fact chunk that the format
// requires for non-PCM data.
func wavHeader(numSamples, sampleRate int, pcm16 bool, buf *bytes.Buffer) {
	// Refer to: http://www-mmsp.ece.mcgill.ca/Documents/AudioFormats/WAVE/WAVE.html
	const numChannels = 2
	bytesPerSample, fmtChunkSize, waveFormat := 4, 18, 3 // IEEE float
	chunkSize := 50 + bytesPerSample*numSamples
	if pcm16 {
		bytesPerSample, fmtChunkSize, waveFormat = 2, 16, 1 // PCM
		chunkSize = 36 + bytesPerSample*numSamples
	}
	w := func(v any) { binary.Write(buf, binary.LittleEndian, v) }
	buf.WriteString("RIFF")
	w(uint32(chunkSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	w(uint32(fmtChunkSize))
	w(uint16(waveFormat))
	w(uint16(numChannels))
	w(uint32(sampleRate))
	w(uint32(sampleRate * numChannels * bytesPerSample)) // avgBytesPerSec
	w(uint16(numChannels * bytesPerSample))              // blockAlign
	w(uint16(8 * bytesPerSample))                        // bits per sample
	if !pcm16 {
		w(uint16(0)) // size of extension
		buf.WriteString("fact")
		w(uint32(4))
		w(uint32(numSamples / numChannels)) // frames per channel
	}
	buf.WriteString("data")
	w(uint32(bytesPerSample * numSamples))
}
