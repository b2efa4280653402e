package decode

import (
	"errors"
	"testing"

	"github.com/cktk/dwv/codec"
)

func TestNewPixelBuffer(t *testing.T) {
	tests := []struct {
		name    string
		raw     []byte
		bits    int
		signed  bool
		wantLen int
	}{
		{"unsigned 8-bit", []byte{0, 127, 255}, 8, false, 3},
		{"signed 8-bit", []byte{0, 0x80, 0xFF}, 8, true, 3},
		{"unsigned 16-bit", []byte{0x34, 0x12, 0xFF, 0xFF}, 16, false, 2},
		{"signed 16-bit", []byte{0x00, 0x80, 0x01, 0x00}, 16, true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := newPixelBuffer(tt.raw, tt.bits, tt.signed)
			if err != nil {
				t.Fatalf("newPixelBuffer failed: %v", err)
			}
			if buf.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", buf.Len(), tt.wantLen)
			}
			if buf.BitsAllocated() != tt.bits {
				t.Errorf("BitsAllocated() = %d, want %d", buf.BitsAllocated(), tt.bits)
			}
			if buf.Signed() != tt.signed {
				t.Errorf("Signed() = %v, want %v", buf.Signed(), tt.signed)
			}
		})
	}
}

func TestNewPixelBufferValues(t *testing.T) {
	buf, err := newPixelBuffer([]byte{0x00, 0x80, 0x34, 0x12}, 16, true)
	if err != nil {
		t.Fatalf("newPixelBuffer failed: %v", err)
	}

	got, ok := buf.(Int16Buffer)
	if !ok {
		t.Fatalf("buffer type = %T, want Int16Buffer", buf)
	}
	if got[0] != -32768 || got[1] != 0x1234 {
		t.Errorf("samples = %v, want [-32768 4660]", got)
	}

	signed8, err := newPixelBuffer([]byte{0xFF}, 8, true)
	if err != nil {
		t.Fatalf("newPixelBuffer failed: %v", err)
	}
	if signed8.(Int8Buffer)[0] != -1 {
		t.Errorf("signed 8-bit sample = %d, want -1", signed8.(Int8Buffer)[0])
	}
}

func TestNewPixelBufferErrors(t *testing.T) {
	if _, err := newPixelBuffer([]byte{1, 2, 3}, 16, false); !errors.Is(err, codec.ErrCorruptStream) {
		t.Errorf("odd byte count error = %v, want ErrCorruptStream", err)
	}
	if _, err := newPixelBuffer([]byte{1}, 12, false); !errors.Is(err, codec.ErrInvalidFrameInfo) {
		t.Errorf("bad bit depth error = %v, want ErrInvalidFrameInfo", err)
	}
}
