package decode_test

import (
	"testing"

	"github.com/cktk/dwv/codec"
	"github.com/cktk/dwv/decode"
)

func TestModeSelection(t *testing.T) {
	tests := []struct {
		name     string
		register bool
		want     decode.Mode
	}{
		{"worker script registered", true, decode.ModeWorkerPool},
		{"no worker script", false, decode.ModeSynchronous},
	}

	info := codec.FrameInfo{BitsAllocated: 8, SamplesPerPixel: 1, SliceSize: 64}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scripts := decode.NewScriptRegistry()
			if tt.register {
				scripts.Register(codec.RLE, "decoders/rle.js")
			}

			d := decode.New(decode.Config{Algorithm: codec.RLE, Scripts: scripts})
			rec := newRecorder()
			rec.attach(d)

			if d.Mode() != decode.ModeIdle {
				t.Errorf("Mode() before first call = %q, want %q", d.Mode(), decode.ModeIdle)
			}

			compressed, _ := encodeRLEFrames(t, 1, info)
			d.Decode(compressed[0], info, decode.BatchInfo{Index: 0, Total: 1})

			if d.Mode() != tt.want {
				t.Errorf("Mode() = %q, want %q", d.Mode(), tt.want)
			}
			rec.waitEnd(t)
		})
	}
}

// The routing decision and callback binding happen once per instance;
// handlers swapped mid-batch are never observed.
func TestCallbackBindingIsIdempotent(t *testing.T) {
	info := codec.FrameInfo{BitsAllocated: 8, SamplesPerPixel: 1, SliceSize: 64}
	compressed, _ := encodeRLEFrames(t, 2, info)

	d := decode.New(decode.Config{
		Algorithm: codec.RLE,
		Scripts:   decode.NewScriptRegistry(),
	})
	rec := newRecorder()
	rec.attach(d)

	d.Decode(compressed[0], info, decode.BatchInfo{Index: 0, Total: 2})

	hijacked := 0
	d.Events = decode.Events{ItemDecoded: func(decode.Frame) { hijacked++ }}

	d.Decode(compressed[1], info, decode.BatchInfo{Index: 1, Total: 2})

	if hijacked != 0 {
		t.Errorf("handler attached mid-batch saw %d frames, want 0", hijacked)
	}
	if rec.count("item") != 2 {
		t.Errorf("original handler saw %d frames, want 2", rec.count("item"))
	}
	if rec.count("end") != 1 {
		t.Errorf("decode-end fired %d times, want 1", rec.count("end"))
	}
}

// An injected engine set is always completed with the built-in families.
func TestBuiltinEnginesAlwaysPresent(t *testing.T) {
	info := codec.FrameInfo{BitsAllocated: 8, SamplesPerPixel: 1, SliceSize: 64}
	compressed, raw := encodeRLEFrames(t, 1, info)

	d := decode.New(decode.Config{
		Algorithm: codec.RLE,
		Engines:   map[codec.Algorithm]codec.Decoder{}, // deliberately empty
		Scripts:   decode.NewScriptRegistry(),
	})
	rec := newRecorder()
	rec.attach(d)

	d.Decode(compressed[0], info, decode.BatchInfo{Index: 0, Total: 1})

	pixels, ok := rec.frames[0].(decode.Uint8Buffer)
	if !ok {
		t.Fatalf("frame type = %T, want Uint8Buffer", rec.frames[0])
	}
	if len(pixels) != len(raw[0]) {
		t.Errorf("frame length = %d, want %d", len(pixels), len(raw[0]))
	}
}
