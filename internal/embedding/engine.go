// Package embedding converts relational schema text and metadata into
// fixed-length normalized vectors, using a deterministic vocabulary index and
// modulo hashing instead of a learned embedding space. Three differently
// weighted signal generators share one algorithm skeleton; a combiner blends
// their outputs into the final embedding.
package embedding

import (
	"fmt"
	"sort"

	"github.com/schemalens/schemalens/internal/port"
)

// Engine holds the validated configuration and the registered generator
// variants (Strategy Pattern).
type Engine struct {
	cfg        Config
	generators map[string]Generator
}

// NewEngine validates cfg and builds the three hash generator variants.
// Configuration problems surface here, before any generation.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	generators := map[string]Generator{}
	for _, g := range []Generator{
		NewEnhancedGenerator(cfg),
		NewPrimaryKeyAwareGenerator(cfg),
		NewForeignKeyAwareGenerator(cfg),
	} {
		generators[g.Name()] = g
	}

	return &Engine{cfg: cfg, generators: generators}, nil
}

// Size returns the configured embedding dimensionality.
func (e *Engine) Size() int {
	return e.cfg.Size
}

// Available returns the registered generator names, sorted.
func (e *Engine) Available() []string {
	names := make([]string, 0, len(e.generators))
	for name := range e.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns generator name -> description for every variant.
func (e *Engine) Describe() map[string]string {
	out := make(map[string]string, len(e.generators))
	for name, g := range e.generators {
		out[name] = g.Description()
	}
	return out
}

// Run executes the named generator against a word index and request.
func (e *Engine) Run(name string, idx *WordIndex, req Request) ([]float32, error) {
	g, ok := e.generators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", port.ErrGeneratorNotFound, name)
	}
	return g.Generate(idx, req), nil
}

// RunAll executes every registered generator against one shared word index,
// so identical words map to identical slots across the variants destined for
// combination. The index is mutated single-writer; callers wanting parallel
// generation should use an independent index per generator instead.
func (e *Engine) RunAll(idx *WordIndex, req Request) map[string][]float32 {
	out := make(map[string][]float32, len(e.generators))
	for name, g := range e.generators {
		out[name] = g.Generate(idx, req)
	}
	return out
}

// Combine blends named generator outputs using the configured generator
// weights. Generators absent from the weights map contribute nothing.
func (e *Engine) Combine(vectors map[string][]float32) ([]float32, error) {
	parts := make([]WeightedVector, 0, len(vectors))
	for _, name := range sortedKeys(vectors) {
		parts = append(parts, WeightedVector{
			Name:   name,
			Vector: vectors[name],
			Weight: e.cfg.GeneratorWeights[name],
		})
	}
	return Combine(e.cfg.Size, parts)
}

func sortedKeys(m map[string][]float32) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
