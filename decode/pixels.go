package decode

import (
	"encoding/binary"
	"fmt"

	"github.com/cktk/dwv/codec"
)

// PixelBuffer is a typed pixel array: 8 or 16 bits per sample, signed or
// unsigned.
type PixelBuffer interface {
	// Len returns the number of samples.
	Len() int

	// BitsAllocated returns the sample width in bits.
	BitsAllocated() int

	// Signed reports the sample signedness.
	Signed() bool
}

// Uint8Buffer holds unsigned 8-bit samples.
type Uint8Buffer []uint8

func (b Uint8Buffer) Len() int           { return len(b) }
func (b Uint8Buffer) BitsAllocated() int { return 8 }
func (b Uint8Buffer) Signed() bool       { return false }

// Int8Buffer holds signed 8-bit samples.
type Int8Buffer []int8

func (b Int8Buffer) Len() int           { return len(b) }
func (b Int8Buffer) BitsAllocated() int { return 8 }
func (b Int8Buffer) Signed() bool       { return true }

// Uint16Buffer holds unsigned 16-bit samples.
type Uint16Buffer []uint16

func (b Uint16Buffer) Len() int           { return len(b) }
func (b Uint16Buffer) BitsAllocated() int { return 16 }
func (b Uint16Buffer) Signed() bool       { return false }

// Int16Buffer holds signed 16-bit samples.
type Int16Buffer []int16

func (b Int16Buffer) Len() int           { return len(b) }
func (b Int16Buffer) BitsAllocated() int { return 16 }
func (b Int16Buffer) Signed() bool       { return true }

// newPixelBuffer views a little-endian sample stream as the typed buffer the
// frame metadata calls for.
func newPixelBuffer(raw []byte, bits int, signed bool) (PixelBuffer, error) {
	switch bits {
	case 8:
		if !signed {
			return Uint8Buffer(raw), nil
		}
		out := make(Int8Buffer, len(raw))
		for i, v := range raw {
			out[i] = int8(v)
		}
		return out, nil
	case 16:
		if len(raw)%2 != 0 {
			return nil, fmt.Errorf("odd byte count %d for 16-bit samples: %w",
				len(raw), codec.ErrCorruptStream)
		}
		if signed {
			out := make(Int16Buffer, len(raw)/2)
			for i := range out {
				out[i] = int16(binary.LittleEndian.Uint16(raw[2*i:]))
			}
			return out, nil
		}
		out := make(Uint16Buffer, len(raw)/2)
		for i := range out {
			out[i] = binary.LittleEndian.Uint16(raw[2*i:])
		}
		return out, nil
	default:
		return nil, fmt.Errorf("bits allocated %d: %w", bits, codec.ErrInvalidFrameInfo)
	}
}
