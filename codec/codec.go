package codec

import (
	"fmt"

	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"
)

// Algorithm identifies a transfer-syntax codec family.
type Algorithm string

const (
	// RLE is DICOM RLE Lossless (PS3.5 Annex G). Always available.
	RLE Algorithm = "rle"

	// JPEGBaseline is JPEG Baseline Process 1 (8-bit lossy).
	JPEGBaseline Algorithm = "jpeg-baseline"

	// JPEGLossless covers JPEG Lossless Process 14 and its SV1 variant.
	JPEGLossless Algorithm = "jpeg-lossless"

	// JPEG2000 covers JPEG 2000 lossless and lossy codestreams.
	JPEG2000 Algorithm = "jpeg2000"

	// Deflated is the Deflated Explicit VR Little Endian raw-deflate
	// payload. Always available.
	Deflated Algorithm = "deflated"
)

// deflatedUID is the Deflated Explicit VR Little Endian transfer syntax.
// go-dicom's transfer package does not export a constant for it.
const deflatedUID = "1.2.840.10008.1.2.1.99"

// FromTransferSyntax maps a DICOM transfer syntax UID to the algorithm that
// decodes it. The second return value is false for transfer syntaxes this
// pipeline has no codec family for.
func FromTransferSyntax(uid string) (Algorithm, bool) {
	switch uid {
	case transfer.RLELossless.UID().UID():
		return RLE, true
	case transfer.JPEGBaseline8Bit.UID().UID():
		return JPEGBaseline, true
	case transfer.JPEGLossless.UID().UID(), transfer.JPEGLosslessSV1.UID().UID():
		return JPEGLossless, true
	case transfer.JPEG2000Lossless.UID().UID(), transfer.JPEG2000.UID().UID():
		return JPEG2000, true
	case deflatedUID:
		return Deflated, true
	}
	return "", false
}

// FrameInfo carries the per-frame decode parameters supplied by the
// container's metadata.
type FrameInfo struct {
	BitsAllocated       int  // 8 or 16
	IsSigned            bool // pixel representation
	SamplesPerPixel     int  // 1 for grayscale, 3 for color
	PlanarConfiguration int  // 0 = interleaved, 1 = planar
	SliceSize           int  // pixels per sample plane (rows * columns)
}

// Validate checks the frame parameters against the ranges the codecs accept.
func (fi FrameInfo) Validate() error {
	if fi.BitsAllocated != 8 && fi.BitsAllocated != 16 {
		return fmt.Errorf("bits allocated %d: %w", fi.BitsAllocated, ErrInvalidFrameInfo)
	}
	if fi.SamplesPerPixel < 1 {
		return fmt.Errorf("samples per pixel %d: %w", fi.SamplesPerPixel, ErrInvalidFrameInfo)
	}
	if fi.PlanarConfiguration != 0 && fi.PlanarConfiguration != 1 {
		return fmt.Errorf("planar configuration %d: %w", fi.PlanarConfiguration, ErrInvalidFrameInfo)
	}
	if fi.SliceSize <= 0 {
		return fmt.Errorf("slice size %d: %w", fi.SliceSize, ErrInvalidFrameInfo)
	}
	return nil
}

// BytesPerSample returns the sample width in bytes.
func (fi FrameInfo) BytesPerSample() int {
	return fi.BitsAllocated / 8
}

// FrameSize returns the expected uncompressed frame size in bytes.
func (fi FrameInfo) FrameSize() int {
	return fi.SliceSize * fi.SamplesPerPixel * fi.BytesPerSample()
}

// FromImageFrameInfo converts go-dicom frame metadata to the pipeline's
// decode parameters.
func FromImageFrameInfo(fi *imagetypes.FrameInfo) FrameInfo {
	return FrameInfo{
		BitsAllocated:       int(fi.BitsAllocated),
		IsSigned:            fi.PixelRepresentation != 0,
		SamplesPerPixel:     int(fi.SamplesPerPixel),
		PlanarConfiguration: int(fi.PlanarConfiguration),
		SliceSize:           int(fi.Width) * int(fi.Height),
	}
}

// Result contains the result of decoding one frame. PixelData holds
// little-endian samples.
type Result struct {
	PixelData  []byte // decoded sample stream, little-endian
	Width      int    // image width, 0 when the codec cannot know it
	Height     int    // image height, 0 when the codec cannot know it
	Components int    // number of color components
	BitDepth   int    // bits per sample (8 or 16)
	Signed     bool   // sample signedness
}

// Decoder is the contract every codec engine satisfies. RLE and Deflated are
// implemented in this module; the JPEG families are pluggable engines a host
// registers before first use.
type Decoder interface {
	// Decode decodes one compressed frame buffer.
	Decode(data []byte, info FrameInfo) (*Result, error)

	// Algorithm returns the codec family identity.
	Algorithm() Algorithm

	// UID returns the primary DICOM Transfer Syntax UID.
	UID() string
}
