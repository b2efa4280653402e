package codec

import "sync"

// Registry manages the available codec engines.
type Registry struct {
	mu      sync.RWMutex
	engines map[string]Decoder // key can be either algorithm name or UID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{engines: make(map[string]Decoder)}
}

var defaultRegistry = NewRegistry()

// Register registers an engine with the process-wide registry using both its
// algorithm name and UID.
func Register(d Decoder) {
	defaultRegistry.Register(d)
}

// Get retrieves an engine from the process-wide registry by algorithm name
// or UID.
func Get(nameOrUID string) (Decoder, error) {
	return defaultRegistry.Get(nameOrUID)
}

// Available reports whether an engine is registered for the algorithm.
func Available(alg Algorithm) bool {
	return defaultRegistry.Available(alg)
}

// List returns all engines registered with the process-wide registry.
func List() []Decoder {
	return defaultRegistry.List()
}

// DefaultEngines snapshots the process-wide registry as an
// algorithm-to-engine map suitable for decoder construction.
func DefaultEngines() map[Algorithm]Decoder {
	return defaultRegistry.Engines()
}

// Register registers an engine using both its algorithm name and UID.
func (r *Registry) Register(d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.engines[string(d.Algorithm())] = d
	r.engines[d.UID()] = d
}

// Get retrieves an engine by algorithm name or UID.
func (r *Registry) Get(nameOrUID string) (Decoder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.engines[nameOrUID]
	if !ok {
		return nil, ErrMissingCodec
	}
	return d, nil
}

// Available reports whether an engine is registered for the algorithm.
func (r *Registry) Available(alg Algorithm) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.engines[string(alg)]
	return ok
}

// List returns all registered engines (deduplicated).
func (r *Registry) List() []Decoder {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[Decoder]bool)
	engines := make([]Decoder, 0)

	for _, d := range r.engines {
		if !seen[d] {
			seen[d] = true
			engines = append(engines, d)
		}
	}

	return engines
}

// Engines returns the registered engines keyed by algorithm.
func (r *Registry) Engines() map[Algorithm]Decoder {
	r.mu.RLock()
	defer r.mu.RUnlock()

	engines := make(map[Algorithm]Decoder, len(r.engines))
	for _, d := range r.engines {
		engines[d.Algorithm()] = d
	}
	return engines
}
