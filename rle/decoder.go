package rle

import (
	"encoding/binary"
	"fmt"

	"github.com/cktk/dwv/codec"
)

// headerSize is the fixed RLE header: 16 little-endian uint32 values, the
// segment count followed by up to 15 segment offsets.
const headerSize = 64

// maxSegments is the Annex G limit on byte segments per frame.
const maxSegments = 15

// Decode decodes one RLE Lossless frame. The number of byte segments must
// equal samplesPerPixel * bytesPerSample; each segment unpacks to exactly
// sliceSize bytes. Segments are ordered sample by sample, most significant
// byte first. Output samples are little-endian, interleaved or planar per
// info.PlanarConfiguration.
func Decode(data []byte, info codec.FrameInfo) ([]byte, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("rle: header truncated (%d bytes): %w", len(data), codec.ErrCorruptStream)
	}

	numSegments := int(binary.LittleEndian.Uint32(data[0:4]))
	if numSegments < 1 || numSegments > maxSegments {
		return nil, fmt.Errorf("rle: %d segments: %w", numSegments, codec.ErrCorruptStream)
	}

	bytesPerSample := info.BytesPerSample()
	if numSegments != info.SamplesPerPixel*bytesPerSample {
		return nil, fmt.Errorf("rle: %d segments for %d samples of %d bits: %w",
			numSegments, info.SamplesPerPixel, info.BitsAllocated, codec.ErrCorruptStream)
	}

	segments := make([][]byte, numSegments)
	for i := 0; i < numSegments; i++ {
		start := int(binary.LittleEndian.Uint32(data[4*(i+1) : 4*(i+2)]))
		end := len(data)
		if i+1 < numSegments {
			end = int(binary.LittleEndian.Uint32(data[4*(i+2) : 4*(i+3)]))
		}
		if start < headerSize || end > len(data) || start > end {
			return nil, fmt.Errorf("rle: segment %d bounds [%d:%d]: %w", i, start, end, codec.ErrCorruptStream)
		}

		plane, err := unpackBits(data[start:end], info.SliceSize)
		if err != nil {
			return nil, fmt.Errorf("rle: segment %d: %w", i, err)
		}
		segments[i] = plane
	}

	return composeFrame(segments, info), nil
}

// unpackBits expands one PackBits-encoded segment to exactly want bytes.
func unpackBits(seg []byte, want int) ([]byte, error) {
	out := make([]byte, 0, want)
	pos := 0

	for len(out) < want {
		if pos >= len(seg) {
			return nil, fmt.Errorf("segment exhausted at %d of %d bytes: %w", len(out), want, codec.ErrCorruptStream)
		}
		n := seg[pos]
		pos++

		switch {
		case n <= 127:
			// Literal run of n+1 bytes.
			count := int(n) + 1
			if pos+count > len(seg) {
				return nil, fmt.Errorf("literal run overruns segment: %w", codec.ErrCorruptStream)
			}
			out = append(out, seg[pos:pos+count]...)
			pos += count
		case n >= 129:
			// Replicate run of 257-n copies of the next byte.
			count := 257 - int(n)
			if pos >= len(seg) {
				return nil, fmt.Errorf("replicate run overruns segment: %w", codec.ErrCorruptStream)
			}
			for j := 0; j < count; j++ {
				out = append(out, seg[pos])
			}
			pos++
		default:
			// 128 is a no-op per Annex G.
		}
	}

	if len(out) > want {
		out = out[:want]
	}
	return out, nil
}

// composeFrame recombines decoded byte planes into the output sample stream.
// Sixteen-bit samples are rebuilt from their MSB and LSB planes and written
// little-endian.
func composeFrame(segments [][]byte, info codec.FrameInfo) []byte {
	bytesPerSample := info.BytesPerSample()
	out := make([]byte, info.FrameSize())

	for s := 0; s < info.SamplesPerPixel; s++ {
		for p := 0; p < info.SliceSize; p++ {
			var offset int
			if info.PlanarConfiguration == 1 {
				offset = (s*info.SliceSize + p) * bytesPerSample
			} else {
				offset = (p*info.SamplesPerPixel + s) * bytesPerSample
			}

			if bytesPerSample == 1 {
				out[offset] = segments[s][p]
			} else {
				msb := segments[s*2][p]
				lsb := segments[s*2+1][p]
				binary.LittleEndian.PutUint16(out[offset:offset+2], uint16(msb)<<8|uint16(lsb))
			}
		}
	}

	return out
}
