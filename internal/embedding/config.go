package embedding

import (
	"fmt"
	"math"

	"github.com/schemalens/schemalens/internal/port"
)

// Defaults for embedding configuration.
const (
	DefaultSize        = 3072
	DefaultWindowDecay = 0.5
)

// WeightTable holds the per-signal weights of one generator variant.
type WeightTable struct {
	Base            float32 `json:"base"`
	PrimaryKeyToken float32 `json:"primary_key_token"`
	ForeignKeyToken float32 `json:"foreign_key_token"`
	PrimaryKeyExtra float32 `json:"primary_key_extra"`
	ForeignKeyExtra float32 `json:"foreign_key_extra"`
	ReferencedExtra float32 `json:"referenced_extra"`
	DomainKeyword   float32 `json:"domain_keyword"`
	Conditional     float32 `json:"conditional"`
	Entity          float32 `json:"entity"`
}

// Default weight tables per variant.
var defaultWeightTables = map[string]WeightTable{
	GeneratorEnhanced: {
		Base:            1,
		PrimaryKeyToken: 3,
		ForeignKeyToken: 2,
		PrimaryKeyExtra: 5,
		ForeignKeyExtra: 3,
		Entity:          4,
	},
	GeneratorPrimaryKey: {
		Base:            1,
		PrimaryKeyToken: 10,
		ForeignKeyToken: 3,
		PrimaryKeyExtra: 15,
		DomainKeyword:   5,
		Conditional:     3,
		Entity:          2,
	},
	GeneratorForeignKey: {
		Base:            1,
		PrimaryKeyToken: 3,
		ForeignKeyToken: 10,
		ForeignKeyExtra: 15,
		ReferencedExtra: 5,
		DomainKeyword:   5,
		Conditional:     3,
		Entity:          2,
	},
}

// Config holds every knob of the embedding engine. Weights are configuration,
// not derived data; nothing here is learned.
type Config struct {
	// Size is the fixed length of every generated vector.
	Size int

	// WindowDecay is the fraction of a weight spread to neighboring slots by
	// the enhanced generator's sliding window. Must be in [0, 1).
	WindowDecay float32

	// RemoveStopWords enables fixed-list stop-word removal after tokenizing.
	RemoveStopWords bool

	// GeneratorWeights maps generator name to its scalar weight in the
	// combined embedding. Unlisted generators get weight 0 and are excluded.
	GeneratorWeights map[string]float32

	// WeightOverrides replaces the default weight table of the named variant.
	WeightOverrides map[string]WeightTable
}

// DefaultConfig returns the standard configuration: 3072-dimensional vectors
// and the three hash generators blended at equal weight.
func DefaultConfig() Config {
	return Config{
		Size:        DefaultSize,
		WindowDecay: DefaultWindowDecay,
		GeneratorWeights: map[string]float32{
			GeneratorEnhanced:   1,
			GeneratorPrimaryKey: 1,
			GeneratorForeignKey: 1,
		},
	}
}

// Validate fails fast with port.ErrConfiguration before any generation.
func (c Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("%w: size must be positive, got %d", port.ErrConfiguration, c.Size)
	}
	if c.WindowDecay < 0 || c.WindowDecay >= 1 || isNaN32(c.WindowDecay) {
		return fmt.Errorf("%w: window decay must be in [0, 1), got %v", port.ErrConfiguration, c.WindowDecay)
	}
	for name, weight := range c.GeneratorWeights {
		if !knownGenerator(name) {
			return fmt.Errorf("%w: unknown generator %q in generator weights", port.ErrConfiguration, name)
		}
		if weight < 0 || isNaN32(weight) || math.IsInf(float64(weight), 0) {
			return fmt.Errorf("%w: generator %q has invalid weight %v", port.ErrConfiguration, name, weight)
		}
	}
	for name, table := range c.WeightOverrides {
		if _, ok := defaultWeightTables[name]; !ok {
			return fmt.Errorf("%w: unknown generator %q in weight overrides", port.ErrConfiguration, name)
		}
		if err := table.validate(); err != nil {
			return fmt.Errorf("%w: generator %q: %v", port.ErrConfiguration, name, err)
		}
	}
	return nil
}

// weightTable returns the effective table for a variant, honoring overrides.
func (c Config) weightTable(name string) WeightTable {
	if table, ok := c.WeightOverrides[name]; ok {
		return table
	}
	return defaultWeightTables[name]
}

func (t WeightTable) validate() error {
	for _, w := range []float32{
		t.Base, t.PrimaryKeyToken, t.ForeignKeyToken, t.PrimaryKeyExtra,
		t.ForeignKeyExtra, t.ReferencedExtra, t.DomainKeyword, t.Conditional, t.Entity,
	} {
		if w < 0 || isNaN32(w) || math.IsInf(float64(w), 0) {
			return fmt.Errorf("invalid table weight %v", w)
		}
	}
	return nil
}

func knownGenerator(name string) bool {
	if name == GeneratorLearned {
		return true
	}
	_, ok := defaultWeightTables[name]
	return ok
}

func isNaN32(f float32) bool {
	return f != f
}
