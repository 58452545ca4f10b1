package embedding

import "strings"

// Domain keywords biased into every foreign-key-aware embedding.
var foreignKeyDomainWords = []string{"foreign", "key", "references", "constraint"}

// Referential action words, weighted only when they occur in the text.
var relationshipWords = []string{"on", "delete", "cascade", "set", "null", "update"}

// Naming patterns that mark join columns.
var joinPatterns = []string{"_id", "_fk"}

// ForeignKeyAwareGenerator weights relationship signals heavily: foreign key
// tokens and units, referenced entities, referential action vocabulary, and
// join-column naming patterns.
type ForeignKeyAwareGenerator struct {
	size            int
	weights         WeightTable
	removeStopWords bool
}

// NewForeignKeyAwareGenerator builds the variant from a validated config.
func NewForeignKeyAwareGenerator(cfg Config) *ForeignKeyAwareGenerator {
	return &ForeignKeyAwareGenerator{
		size:            cfg.Size,
		weights:         cfg.weightTable(GeneratorForeignKey),
		removeStopWords: cfg.RemoveStopWords,
	}
}

// Name returns the variant name.
func (g *ForeignKeyAwareGenerator) Name() string { return GeneratorForeignKey }

// Description returns what this variant weights.
func (g *ForeignKeyAwareGenerator) Description() string {
	return "heavy foreign key and relationship weighting with join-pattern bonuses"
}

// Generate projects the schema into a normalized vector.
func (g *ForeignKeyAwareGenerator) Generate(idx *WordIndex, req Request) []float32 {
	vec := make([]float32, g.size)
	seen := basePass(vec, idx, req, g.weights, g.removeStopWords)
	if len(seen) == 0 {
		// Empty token stream: the zero vector is the defined result. The
		// domain bias below applies only when there is input at all.
		return vec
	}

	for _, fk := range req.ForeignKeys {
		column := strings.ToLower(fk.Column)
		slot := idx.GetOrAdd(column)
		Accumulate(vec, slot, g.weights.ForeignKeyExtra)

		if fk.Referenced != "" {
			Accumulate(vec, idx.GetOrAdd(strings.ToLower(fk.Referenced)), g.weights.ReferencedExtra)
		}

		// Join-pattern bonus lands once per matching foreign key, not once
		// per occurrence of the column name in the text.
		for _, pattern := range joinPatterns {
			if strings.Contains(column, pattern) {
				Accumulate(vec, slot, g.weights.Conditional)
			}
		}
	}

	accumulateKeywords(vec, idx, foreignKeyDomainWords, g.weights.DomainKeyword)

	for _, word := range relationshipWords {
		if _, ok := seen[word]; ok {
			Accumulate(vec, idx.GetOrAdd(word), g.weights.Conditional)
		}
	}

	accumulateEntities(vec, idx, req.Entities, g.weights.Entity)
	return Normalize(vec)
}
