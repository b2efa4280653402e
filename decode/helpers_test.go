package decode_test

import (
	"sync"
	"testing"
	"time"

	"github.com/cktk/dwv/codec"
	"github.com/cktk/dwv/decode"
)

// recorder collects lifecycle events for assertions. Handlers append under a
// mutex because worker-pool events arrive from the collector goroutine.
type recorder struct {
	mu     sync.Mutex
	order  []string
	frames map[int]decode.PixelBuffer
	errs   map[int]error
	ended  chan struct{}
}

func newRecorder() *recorder {
	return &recorder{
		frames: make(map[int]decode.PixelBuffer),
		errs:   make(map[int]error),
		ended:  make(chan struct{}, 1),
	}
}

func (r *recorder) attach(d *decode.Decoder) {
	d.Events = decode.Events{
		DecodeStart: func() { r.record("start") },
		ItemDecoded: func(f decode.Frame) {
			r.mu.Lock()
			r.order = append(r.order, "item")
			r.frames[f.Index] = f.Pixels
			r.mu.Unlock()
		},
		AllDecoded: func() { r.record("all") },
		DecodeEnd: func() {
			r.record("end")
			select {
			case r.ended <- struct{}{}:
			default:
			}
		},
		Error: func(index int, err error) {
			r.mu.Lock()
			r.order = append(r.order, "error")
			r.errs[index] = err
			r.mu.Unlock()
		},
		Abort: func() { r.record("abort") },
	}
}

func (r *recorder) record(ev string) {
	r.mu.Lock()
	r.order = append(r.order, ev)
	r.mu.Unlock()
}

func (r *recorder) events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *recorder) count(ev string) int {
	n := 0
	for _, e := range r.events() {
		if e == ev {
			n++
		}
	}
	return n
}

func (r *recorder) waitEnd(t *testing.T) {
	t.Helper()
	select {
	case <-r.ended:
	case <-time.After(5 * time.Second):
		t.Fatalf("decode-end event never fired; events so far: %v", r.events())
	}
}

func equalEvents(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// stubEngine is a canned codec engine for exercising the dispatch table
// without a real bitstream.
type stubEngine struct {
	alg codec.Algorithm
	res *codec.Result
	err error
}

func (s *stubEngine) Decode(data []byte, info codec.FrameInfo) (*codec.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.res, nil
}

func (s *stubEngine) Algorithm() codec.Algorithm { return s.alg }
func (s *stubEngine) UID() string                { return "1.2.840.10008.9999." + string(s.alg) }

// encodeRLEFrames produces n distinct RLE-compressed 8-bit frames.
func encodeRLEFrames(t *testing.T, n int, info codec.FrameInfo) ([][]byte, [][]byte) {
	t.Helper()

	c, err := codec.Get(string(codec.RLE))
	if err != nil {
		t.Fatalf("RLE codec missing from registry: %v", err)
	}
	enc := c.(interface {
		Encode([]byte, codec.FrameInfo) ([]byte, error)
	})

	compressed := make([][]byte, n)
	raw := make([][]byte, n)
	for i := 0; i < n; i++ {
		frame := make([]byte, info.FrameSize())
		for j := range frame {
			frame[j] = byte((j + i*31) % 256)
		}
		raw[i] = frame

		compressed[i], err = enc.Encode(frame, info)
		if err != nil {
			t.Fatalf("Encode frame %d failed: %v", i, err)
		}
	}
	return compressed, raw
}
