package decode

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/cktk/dwv/codec"
	"github.com/cktk/dwv/deflated"
	"github.com/cktk/dwv/rle"
)

// Mode identifies the execution path a decoder selected.
type Mode string

const (
	// ModeIdle means no Decode call has been made yet.
	ModeIdle Mode = "idle"

	// ModeSynchronous decodes inline on the calling goroutine.
	ModeSynchronous Mode = "synchronous"

	// ModeWorkerPool decodes on the bounded background pool.
	ModeWorkerPool Mode = "worker-pool"
)

// executor is the decode-task-executing contract both modes satisfy.
type executor interface {
	decode(t Task)
	abort()
}

// Config configures one Decoder instance.
type Config struct {
	// Algorithm is the codec family for every frame of the batch,
	// normally derived from the container's declared transfer syntax via
	// codec.FromTransferSyntax.
	Algorithm codec.Algorithm

	// Workers is the pool capacity in worker-pool mode. Zero means
	// DefaultWorkers.
	Workers int

	// Engines is the injected engine set. Nil snapshots the process-wide
	// codec registry. The built-in RLE and deflated engines are always
	// filled in.
	Engines map[codec.Algorithm]codec.Decoder

	// Scripts is the worker-script registry consulted for mode selection.
	// Nil means the process-wide registry.
	Scripts *ScriptRegistry

	// Logger receives batch lifecycle records. Nil means slog.Default().
	Logger *slog.Logger
}

// Decoder presents one asynchronous decode contract over both execution
// modes. It holds a single batch; a new batch requires a new instance.
type Decoder struct {
	// Events must be populated before the first Decode or Abort call;
	// later changes are not observed.
	Events Events

	cfg   Config
	batch string

	mu       sync.Mutex
	mode     Mode
	delegate executor
}

// New creates a decoder for one batch of frames.
func New(cfg Config) *Decoder {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Scripts == nil {
		cfg.Scripts = defaultScripts
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	engines := make(map[codec.Algorithm]codec.Decoder)
	if cfg.Engines == nil {
		cfg.Engines = codec.DefaultEngines()
	}
	for alg, eng := range cfg.Engines {
		engines[alg] = eng
	}
	// The built-in families need no registration.
	if _, ok := engines[codec.RLE]; !ok {
		engines[codec.RLE] = rle.NewCodec()
	}
	if _, ok := engines[codec.Deflated]; !ok {
		engines[codec.Deflated] = deflated.NewCodec()
	}
	cfg.Engines = engines

	return &Decoder{
		cfg:   cfg,
		batch: uuid.NewString(),
		mode:  ModeIdle,
	}
}

// Decode submits one frame buffer. The call is asynchronous in effect: all
// observable results arrive through the attached Events, tagged with
// batch.Index.
func (d *Decoder) Decode(data []byte, info codec.FrameInfo, batch BatchInfo) {
	d.bind().decode(Task{
		Algorithm: d.cfg.Algorithm,
		Data:      data,
		Info:      info,
		Index:     batch.Index,
		Total:     batch.Total,
	})
}

// Abort forwards unconditionally to the active delegate. Every abort path
// terminates the batch with an abort event followed by decode-end.
func (d *Decoder) Abort() {
	d.bind().abort()
}

// Mode reports the selected execution mode, or ModeIdle before the first
// call.
func (d *Decoder) Mode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// bind selects the execution mode from the worker-script registry and wires
// the lifecycle callbacks to the delegate. Both happen exactly once per
// instance; repeated calls return the existing delegate.
func (d *Decoder) bind() executor {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.delegate != nil {
		return d.delegate
	}

	ev := d.Events.bind()
	log := d.cfg.Logger.With("batch", d.batch, "algorithm", string(d.cfg.Algorithm))

	if script, ok := d.cfg.Scripts.Lookup(d.cfg.Algorithm); ok {
		log.Debug("worker script registered, decoding on pool", "script", script)
		d.mode = ModeWorkerPool
		d.delegate = newWorkerPool(d.cfg.Engines, ev, d.cfg.Workers, log)
	} else {
		d.mode = ModeSynchronous
		d.delegate = newSyncDecoder(d.cfg.Engines, ev, log)
	}
	return d.delegate
}
