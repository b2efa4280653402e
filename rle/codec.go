// Package rle implements the DICOM RLE Lossless codec (PS3.5 Annex G).
//
// RLE is the one codec family the pipeline implements directly; it needs no
// external engine and is always available.
package rle

import (
	"github.com/cocosip/go-dicom/pkg/dicom/transfer"

	"github.com/cktk/dwv/codec"
)

// Codec implements the codec.Decoder interface for DICOM RLE Lossless.
type Codec struct{}

// NewCodec creates a new RLE codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Decode decodes RLE Lossless data into an uncompressed sample stream.
func (c *Codec) Decode(data []byte, info codec.FrameInfo) (*codec.Result, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}

	pixelData, err := Decode(data, info)
	if err != nil {
		return nil, err
	}

	return &codec.Result{
		PixelData:  pixelData,
		Components: info.SamplesPerPixel,
		BitDepth:   info.BitsAllocated,
		Signed:     info.IsSigned,
	}, nil
}

// Encode encodes an uncompressed sample stream to RLE Lossless.
func (c *Codec) Encode(pixelData []byte, info codec.FrameInfo) ([]byte, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	return Encode(pixelData, info)
}

// Algorithm returns the codec family identity.
func (c *Codec) Algorithm() codec.Algorithm {
	return codec.RLE
}

// UID returns the DICOM Transfer Syntax UID for RLE Lossless.
func (c *Codec) UID() string {
	return transfer.RLELossless.UID().UID()
}

func init() {
	codec.Register(NewCodec())
}
