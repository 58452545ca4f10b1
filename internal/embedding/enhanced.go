package embedding

import "strings"

// EnhancedGenerator is the general-purpose variant: moderate key bonuses, a
// strong entity signal, and a sliding-window spread on the primary key extra
// weight that smears a fraction of the weight into the neighboring slots,
// modeling positional locality. The other variants do no smoothing.
type EnhancedGenerator struct {
	size            int
	weights         WeightTable
	decay           float32
	removeStopWords bool
}

// NewEnhancedGenerator builds the variant from a validated config.
func NewEnhancedGenerator(cfg Config) *EnhancedGenerator {
	return &EnhancedGenerator{
		size:            cfg.Size,
		weights:         cfg.weightTable(GeneratorEnhanced),
		decay:           cfg.WindowDecay,
		removeStopWords: cfg.RemoveStopWords,
	}
}

// Name returns the variant name.
func (g *EnhancedGenerator) Name() string { return GeneratorEnhanced }

// Description returns what this variant weights.
func (g *EnhancedGenerator) Description() string {
	return "balanced weighting of keys and entities with sliding-window locality smoothing"
}

// Generate projects the schema into a normalized vector.
func (g *EnhancedGenerator) Generate(idx *WordIndex, req Request) []float32 {
	vec := make([]float32, g.size)
	seen := basePass(vec, idx, req, g.weights, g.removeStopWords)
	if len(seen) == 0 {
		// Empty token stream: the zero vector is the defined result, and
		// every remaining step is skipped.
		return vec
	}

	if req.PrimaryKey != "" {
		slot := idx.GetOrAdd(strings.ToLower(req.PrimaryKey))
		g.spread(vec, slot, g.weights.PrimaryKeyExtra)
	}

	for _, fk := range req.ForeignKeys {
		Accumulate(vec, idx.GetOrAdd(strings.ToLower(fk.Column)), g.weights.ForeignKeyExtra)
	}

	accumulateEntities(vec, idx, req.Entities, g.weights.Entity)
	return Normalize(vec)
}

// spread assigns weight at slot and decay*weight at the two neighboring
// slots, wrapping modulo the vector length.
func (g *EnhancedGenerator) spread(vec []float32, slot int, weight float32) {
	n := len(vec)
	s := slot % n
	Accumulate(vec, s, weight)
	if g.decay == 0 {
		return
	}
	Accumulate(vec, (s+1)%n, g.decay*weight)
	Accumulate(vec, (s+n-1)%n, g.decay*weight)
}
