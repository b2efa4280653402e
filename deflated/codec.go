// Package deflated implements the Deflated Explicit VR Little Endian payload
// codec. Frame payloads are raw-deflate streams whose inflated form is the
// uncompressed little-endian sample data.
package deflated

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"

	"github.com/cktk/dwv/codec"
)

// UID is the Deflated Explicit VR Little Endian transfer syntax.
const UID = "1.2.840.10008.1.2.1.99"

// Codec implements the codec.Decoder interface for deflated payloads.
type Codec struct{}

// NewCodec creates a new deflated payload codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Decode inflates one frame payload.
func (c *Codec) Decode(data []byte, info codec.FrameInfo) (*codec.Result, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}

	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()

	pixelData, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("deflated: %v: %w", err, codec.ErrCorruptStream)
	}
	if len(pixelData) != info.FrameSize() {
		return nil, fmt.Errorf("deflated: inflated to %d bytes, expected %d: %w",
			len(pixelData), info.FrameSize(), codec.ErrCorruptStream)
	}

	return &codec.Result{
		PixelData:  pixelData,
		Components: info.SamplesPerPixel,
		BitDepth:   info.BitsAllocated,
		Signed:     info.IsSigned,
	}, nil
}

// Encode deflates one uncompressed frame.
func (c *Codec) Encode(pixelData []byte, info codec.FrameInfo) ([]byte, error) {
	if len(pixelData) != info.FrameSize() {
		return nil, fmt.Errorf("deflated: frame is %d bytes, expected %d: %w",
			len(pixelData), info.FrameSize(), codec.ErrInvalidFrameInfo)
	}

	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(pixelData); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Algorithm returns the codec family identity.
func (c *Codec) Algorithm() codec.Algorithm {
	return codec.Deflated
}

// UID returns the Deflated Explicit VR Little Endian transfer syntax UID.
func (c *Codec) UID() string {
	return UID
}

func init() {
	codec.Register(NewCodec())
}
