package decode

import (
	"sync"

	"github.com/cktk/dwv/codec"
)

// ScriptRegistry maps algorithm identities to the decoder worker script a
// host has provisioned. Presence of an entry routes that algorithm to the
// worker pool; absence routes it to the synchronous decoder. Hosts populate
// it before the first Decode call; the pipeline only reads it.
type ScriptRegistry struct {
	mu      sync.RWMutex
	scripts map[codec.Algorithm]string
}

// NewScriptRegistry creates an empty registry.
func NewScriptRegistry() *ScriptRegistry {
	return &ScriptRegistry{scripts: make(map[codec.Algorithm]string)}
}

var defaultScripts = NewScriptRegistry()

// RegisterWorkerScript maps an algorithm to a worker script in the
// process-wide registry.
func RegisterWorkerScript(alg codec.Algorithm, script string) {
	defaultScripts.Register(alg, script)
}

// WorkerScript looks an algorithm up in the process-wide registry.
func WorkerScript(alg codec.Algorithm) (string, bool) {
	return defaultScripts.Lookup(alg)
}

// Register maps an algorithm to a worker script.
func (r *ScriptRegistry) Register(alg codec.Algorithm, script string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scripts[alg] = script
}

// Unregister removes an algorithm's worker script, routing it back to the
// synchronous decoder for decoders constructed afterwards.
func (r *ScriptRegistry) Unregister(alg codec.Algorithm) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.scripts, alg)
}

// Lookup returns the worker script registered for the algorithm.
func (r *ScriptRegistry) Lookup(alg codec.Algorithm) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	script, ok := r.scripts[alg]
	return script, ok
}
