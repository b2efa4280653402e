package rle

import (
	"encoding/binary"
	"fmt"

	"github.com/cktk/dwv/codec"
)

// Encode encodes one uncompressed frame to RLE Lossless. The input is the
// little-endian sample stream Decode produces; planar configuration and
// sample layout are taken from info.
func Encode(pixelData []byte, info codec.FrameInfo) ([]byte, error) {
	if len(pixelData) != info.FrameSize() {
		return nil, fmt.Errorf("rle: frame is %d bytes, expected %d: %w",
			len(pixelData), info.FrameSize(), codec.ErrInvalidFrameInfo)
	}

	bytesPerSample := info.BytesPerSample()
	numSegments := info.SamplesPerPixel * bytesPerSample
	if numSegments > maxSegments {
		return nil, fmt.Errorf("rle: %d segments exceed the Annex G limit: %w",
			numSegments, codec.ErrInvalidFrameInfo)
	}

	packed := make([][]byte, 0, numSegments)
	for s := 0; s < info.SamplesPerPixel; s++ {
		for b := 0; b < bytesPerSample; b++ {
			seg := packBits(extractPlane(pixelData, info, s, b))
			if len(seg)%2 != 0 {
				seg = append(seg, 0)
			}
			packed = append(packed, seg)
		}
	}

	size := headerSize
	for _, seg := range packed {
		size += len(seg)
	}

	out := make([]byte, headerSize, size)
	binary.LittleEndian.PutUint32(out[0:4], uint32(numSegments))
	offset := headerSize
	for i, seg := range packed {
		binary.LittleEndian.PutUint32(out[4*(i+1):4*(i+2)], uint32(offset))
		offset += len(seg)
	}
	for _, seg := range packed {
		out = append(out, seg...)
	}
	return out, nil
}

// extractPlane pulls one byte plane out of the little-endian sample stream.
// Plane order within a sample is most significant byte first, as Annex G
// requires.
func extractPlane(pixelData []byte, info codec.FrameInfo, sample, byteIndex int) []byte {
	bytesPerSample := info.BytesPerSample()
	plane := make([]byte, info.SliceSize)

	for p := 0; p < info.SliceSize; p++ {
		var offset int
		if info.PlanarConfiguration == 1 {
			offset = (sample*info.SliceSize + p) * bytesPerSample
		} else {
			offset = (p*info.SamplesPerPixel + sample) * bytesPerSample
		}
		// Little-endian input: MSB-first plane index maps to the last byte
		// of the sample first.
		plane[p] = pixelData[offset+(bytesPerSample-1-byteIndex)]
	}

	return plane
}

// packBits encodes one byte plane with the PackBits scheme used by Annex G.
func packBits(plane []byte) []byte {
	out := make([]byte, 0, len(plane)/2)
	i := 0

	for i < len(plane) {
		// Measure the run starting here.
		run := 1
		for i+run < len(plane) && run < 128 && plane[i+run] == plane[i] {
			run++
		}

		if run >= 2 {
			out = append(out, byte(257-run), plane[i])
			i += run
			continue
		}

		// Literal: collect bytes until the next replicate run (or 128 bytes).
		start := i
		i++
		for i < len(plane) && i-start < 128 {
			if i+1 < len(plane) && plane[i] == plane[i+1] {
				break
			}
			i++
		}
		out = append(out, byte(i-start-1))
		out = append(out, plane[start:i]...)
	}

	return out
}
