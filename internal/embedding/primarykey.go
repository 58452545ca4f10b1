package embedding

import "strings"

// Domain keywords biased into every primary-key-aware embedding, present in
// the schema text or not.
var primaryKeyDomainWords = []string{"primary", "key", "id", "identifier"}

// Common primary key data types, weighted only when they occur in the text.
var primaryKeyTypeWords = []string{"int", "bigint", "uuid", "guid"}

// PrimaryKeyAwareGenerator weights primary key signals heavily: the key
// token, the key as a whole unit, and a fixed primary-key vocabulary.
type PrimaryKeyAwareGenerator struct {
	size            int
	weights         WeightTable
	removeStopWords bool
}

// NewPrimaryKeyAwareGenerator builds the variant from a validated config.
func NewPrimaryKeyAwareGenerator(cfg Config) *PrimaryKeyAwareGenerator {
	return &PrimaryKeyAwareGenerator{
		size:            cfg.Size,
		weights:         cfg.weightTable(GeneratorPrimaryKey),
		removeStopWords: cfg.RemoveStopWords,
	}
}

// Name returns the variant name.
func (g *PrimaryKeyAwareGenerator) Name() string { return GeneratorPrimaryKey }

// Description returns what this variant weights.
func (g *PrimaryKeyAwareGenerator) Description() string {
	return "heavy primary key weighting with identifier vocabulary and key-type bonuses"
}

// Generate projects the schema into a normalized vector.
func (g *PrimaryKeyAwareGenerator) Generate(idx *WordIndex, req Request) []float32 {
	vec := make([]float32, g.size)
	seen := basePass(vec, idx, req, g.weights, g.removeStopWords)
	if len(seen) == 0 {
		// Empty token stream: the zero vector is the defined result. The
		// domain bias below applies only when there is input at all.
		return vec
	}

	// Primary key as a whole unit. A missing key skips the step, it is not
	// an error.
	if req.PrimaryKey != "" {
		Accumulate(vec, idx.GetOrAdd(strings.ToLower(req.PrimaryKey)), g.weights.PrimaryKeyExtra)
	}

	accumulateKeywords(vec, idx, primaryKeyDomainWords, g.weights.DomainKeyword)

	for _, word := range primaryKeyTypeWords {
		if _, ok := seen[word]; ok {
			Accumulate(vec, idx.GetOrAdd(word), g.weights.Conditional)
		}
	}

	accumulateEntities(vec, idx, req.Entities, g.weights.Entity)
	return Normalize(vec)
}
