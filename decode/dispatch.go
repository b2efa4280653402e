package decode

import (
	"context"
	"fmt"

	"github.com/cktk/dwv/codec"
)

// runTask executes one decode task against the engine set. The context is
// consulted before the codec call; engines themselves are not interruptible,
// so cancellation granularity is one frame.
func runTask(ctx context.Context, engines map[codec.Algorithm]codec.Decoder, t Task) (PixelBuffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch t.Algorithm {
	case codec.RLE, codec.Deflated, codec.JPEGBaseline, codec.JPEGLossless, codec.JPEG2000:
	default:
		return nil, fmt.Errorf("%q: %w", t.Algorithm, codec.ErrUnsupportedAlgorithm)
	}

	if err := t.Info.Validate(); err != nil {
		return nil, err
	}

	eng, ok := engines[t.Algorithm]
	if !ok {
		return nil, fmt.Errorf("%s: %w", t.Algorithm, codec.ErrMissingCodec)
	}

	res, err := eng.Decode(t.Data, t.Info)
	if err != nil {
		return nil, fmt.Errorf("%s frame %d: %w", t.Algorithm, t.Index, err)
	}

	return resultBuffer(t.Algorithm, res, t.Info)
}

// resultBuffer applies the per-family output semantics:
//
//   - jpeg-baseline: full-resolution 8-bit raster
//   - jpeg2000: signed 16-bit samples from the first decoded tile
//   - jpeg-lossless, rle, deflated: width and signedness from frame metadata
func resultBuffer(alg codec.Algorithm, res *codec.Result, info codec.FrameInfo) (PixelBuffer, error) {
	switch alg {
	case codec.JPEGBaseline:
		return Uint8Buffer(res.PixelData), nil
	case codec.JPEG2000:
		return newPixelBuffer(res.PixelData, 16, true)
	default:
		return newPixelBuffer(res.PixelData, info.BitsAllocated, info.IsSigned)
	}
}
