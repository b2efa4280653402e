package decode

import (
	"context"
	"log/slog"

	"github.com/cktk/dwv/codec"
)

// batch lifecycle states.
type state int

const (
	stateIdle state = iota
	stateDecoding
	stateAborted
	stateEnded
)

// syncDecoder decodes one buffer per call, inline on the calling goroutine.
// Single-threaded by contract: all calls for a batch come from one
// goroutine, so counters are plain ints.
type syncDecoder struct {
	engines map[codec.Algorithm]codec.Decoder
	events  *events
	log     *slog.Logger

	state     state
	delivered int
	finished  int
}

func newSyncDecoder(engines map[codec.Algorithm]codec.Decoder, ev *events, log *slog.Logger) *syncDecoder {
	return &syncDecoder{engines: engines, events: ev, log: log}
}

func (d *syncDecoder) decode(t Task) {
	if d.state == stateEnded || d.state == stateAborted {
		return
	}
	if d.state == stateIdle {
		d.state = stateDecoding
		d.events.start()
	}

	pixels, err := runTask(context.Background(), d.engines, t)
	d.finished++
	if err != nil {
		d.log.Debug("frame decode failed", "index", t.Index, "error", err)
		d.events.fail(t.Index, err)
	} else {
		d.delivered++
		d.events.item(Frame{Index: t.Index, Pixels: pixels})
		if d.delivered == t.Total {
			d.events.all()
		}
	}

	if d.finished == t.Total {
		d.state = stateEnded
		d.events.end()
	}
}

// abort has no in-flight work to cancel on this path, but still emits abort
// then decode-end so observers see deterministic termination.
func (d *syncDecoder) abort() {
	if d.state == stateEnded || d.state == stateAborted {
		return
	}
	d.state = stateAborted
	d.log.Info("decode aborted")
	d.events.abort()
	d.state = stateEnded
	d.events.end()
}
