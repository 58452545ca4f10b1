package embedding

import "strings"

// Generator names. GeneratorLearned is reserved for a pretrained text
// embedder blended in by the service; it has no hash variant here.
const (
	GeneratorEnhanced   = "enhanced"
	GeneratorPrimaryKey = "primary_key"
	GeneratorForeignKey = "foreign_key"
	GeneratorLearned    = "learned"
)

// ForeignKey names a foreign key column and, when known, the entity it
// references ("table.column" or a bare entity name).
type ForeignKey struct {
	Column     string `json:"column"`
	Referenced string `json:"referenced,omitempty"`
}

// Request carries one schema into a generator: the rendered CREATE TABLE
// text plus the structured metadata driving the extra weights.
type Request struct {
	SchemaText  string       `json:"schema_text"`
	Entities    []string     `json:"entities"`
	PrimaryKey  string       `json:"primary_key"`
	ForeignKeys []ForeignKey `json:"foreign_keys"`
}

// Generator produces one embedding variant from one weighting strategy.
// Implementations are pure: the same index state and request always yield
// the same vector, and the only error conditions are caught at engine
// construction time.
type Generator interface {
	// Name returns the unique name of this variant (e.g. "primary_key").
	Name() string

	// Description returns a human-readable description of the weighting.
	Description() string

	// Generate projects the schema into a normalized fixed-size vector,
	// registering every word it touches in idx.
	Generate(idx *WordIndex, req Request) []float32
}

// basePass runs the per-token step shared by every variant: each token of the
// schema text accumulates the base weight, plus the primary key token bonus
// when it equals the primary key, plus the foreign key token bonus when it
// names a foreign key column. Returns the set of tokens seen, for conditional
// keyword checks.
func basePass(vec []float32, idx *WordIndex, req Request, weights WeightTable, removeStopWords bool) map[string]struct{} {
	tokens := Tokenize(req.SchemaText)
	if removeStopWords {
		tokens = StripStopWords(tokens)
	}

	primaryKey := strings.ToLower(req.PrimaryKey)
	foreignKeys := make(map[string]struct{}, len(req.ForeignKeys))
	for _, fk := range req.ForeignKeys {
		foreignKeys[strings.ToLower(fk.Column)] = struct{}{}
	}

	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		slot := idx.GetOrAdd(tok)
		weight := weights.Base
		if primaryKey != "" && tok == primaryKey {
			weight += weights.PrimaryKeyToken
		}
		if _, ok := foreignKeys[tok]; ok {
			weight += weights.ForeignKeyToken
		}
		Accumulate(vec, slot, weight)
		seen[tok] = struct{}{}
	}
	return seen
}

// accumulateEntities adds the entity weight at each table/column name's slot.
func accumulateEntities(vec []float32, idx *WordIndex, entities []string, weight float32) {
	for _, entity := range entities {
		Accumulate(vec, idx.GetOrAdd(strings.ToLower(entity)), weight)
	}
}

// accumulateKeywords adds weight at each keyword's slot unconditionally —
// a constant domain bias, applied whether or not the word appears in the
// schema text.
func accumulateKeywords(vec []float32, idx *WordIndex, words []string, weight float32) {
	for _, word := range words {
		Accumulate(vec, idx.GetOrAdd(word), weight)
	}
}
