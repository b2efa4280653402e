package decode

// Events holds the six lifecycle callbacks a caller may attach before the
// first Decode call. A nil field is a silent no-op. One handler per event;
// handlers attached after the first Decode are ignored (the set is bound to
// the active executor exactly once).
type Events struct {
	// DecodeStart fires once, before the first frame is dispatched.
	DecodeStart func()

	// ItemDecoded fires per decoded frame, in completion order.
	ItemDecoded func(Frame)

	// AllDecoded fires once, when the delivered count reaches the batch's
	// expected total.
	AllDecoded func()

	// DecodeEnd fires exactly once per batch and is always the last event.
	DecodeEnd func()

	// Error fires per failed task, scoped to that task's sequence index.
	Error func(index int, err error)

	// Abort fires once if the batch is aborted. Abort is not an error.
	Abort func()
}

// events is the bound form: every callback non-nil, so executors emit
// without nil checks.
type events struct {
	start func()
	item  func(Frame)
	all   func()
	end   func()
	fail  func(index int, err error)
	abort func()
}

func (e Events) bind() *events {
	b := &events{
		start: e.DecodeStart,
		item:  e.ItemDecoded,
		all:   e.AllDecoded,
		end:   e.DecodeEnd,
		fail:  e.Error,
		abort: e.Abort,
	}
	if b.start == nil {
		b.start = func() {}
	}
	if b.item == nil {
		b.item = func(Frame) {}
	}
	if b.all == nil {
		b.all = func() {}
	}
	if b.end == nil {
		b.end = func() {}
	}
	if b.fail == nil {
		b.fail = func(int, error) {}
	}
	if b.abort == nil {
		b.abort = func() {}
	}
	return b
}
