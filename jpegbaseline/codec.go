// Package jpegbaseline registers the standard library JPEG decoder as the
// pluggable JPEG Baseline engine. Hosts opt in with a blank import:
//
//	import _ "github.com/cktk/dwv/jpegbaseline"
//
// Presence in the codec registry is what the pipeline probes for at decoder
// construction; without this import (or another registered engine) baseline
// tasks fail with codec.ErrMissingCodec.
package jpegbaseline

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/cocosip/go-dicom/pkg/dicom/transfer"

	"github.com/cktk/dwv/codec"
)

// Codec implements the codec.Decoder interface for JPEG Baseline Process 1.
type Codec struct{}

// NewCodec creates a new JPEG Baseline codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Decode decodes JPEG Baseline data to a full-resolution 8-bit raster.
func (c *Codec) Decode(data []byte, info codec.FrameInfo) (*codec.Result, error) {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("jpeg-baseline: %v: %w", err, codec.ErrCorruptStream)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	var pixelData []byte
	components := 3

	switch im := img.(type) {
	case *image.Gray:
		components = 1
		pixelData = make([]byte, width*height)
		for y := 0; y < height; y++ {
			copy(pixelData[y*width:], im.Pix[y*im.Stride:y*im.Stride+width])
		}
	default:
		pixelData = make([]byte, width*height*3)
		i := 0
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				r, g, b, _ := img.At(x, y).RGBA()
				pixelData[i] = byte(r >> 8)
				pixelData[i+1] = byte(g >> 8)
				pixelData[i+2] = byte(b >> 8)
				i += 3
			}
		}
	}

	return &codec.Result{
		PixelData:  pixelData,
		Width:      width,
		Height:     height,
		Components: components,
		BitDepth:   8, // Baseline is always 8-bit
	}, nil
}

// Algorithm returns the codec family identity.
func (c *Codec) Algorithm() codec.Algorithm {
	return codec.JPEGBaseline
}

// UID returns the DICOM Transfer Syntax UID for JPEG Baseline Process 1.
func (c *Codec) UID() string {
	return transfer.JPEGBaseline8Bit.UID().UID()
}

func init() {
	codec.Register(NewCodec())
}
