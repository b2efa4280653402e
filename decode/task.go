package decode

import "github.com/cktk/dwv/codec"

// BatchInfo positions one frame within its batch.
type BatchInfo struct {
	Index int // sequence index of this frame
	Total int // expected frame count for the whole batch
}

// Task is one unit of decode work. Immutable after creation; owned by
// whichever executor runs it.
type Task struct {
	Algorithm codec.Algorithm
	Data      []byte
	Info      codec.FrameInfo
	Index     int
	Total     int
}

// Frame is one decoded frame, tagged with its originating sequence index.
// Ownership of the pixel buffer transfers to the caller on delivery.
type Frame struct {
	Index  int
	Pixels PixelBuffer
}
