package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemalens/schemalens/internal/domain"
	"github.com/schemalens/schemalens/internal/embedding"
)

func newTestService(t *testing.T, learned *stubEmbedder) *EmbeddingService {
	t.Helper()
	cfg := embedding.DefaultConfig()
	cfg.Size = 64
	engine, err := embedding.NewEngine(cfg)
	require.NoError(t, err)
	if learned == nil {
		return NewEmbeddingService(engine, nil, nil)
	}
	return NewEmbeddingService(engine, learned, nil)
}

// stubEmbedder is a canned port.TextEmbedder for tests.
type stubEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (s *stubEmbedder) ModelName() string { return "stub" }
func (s *stubEmbedder) Dimension() int    { return len(s.vector) }

func (s *stubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	s.calls++
	return s.vector, s.err
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		vec, err := s.Embed(ctx, texts[i])
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func TestEmbedSchema_HashOnly(t *testing.T) {
	svc := newTestService(t, nil)

	result, err := svc.EmbedSchema(context.Background(), embedding.Request{
		SchemaText: "create table users ( id bigint primary key, email text )",
		Entities:   []string{"users"},
		PrimaryKey: "id",
	})
	require.NoError(t, err)

	assert.Len(t, result.Combined, 64)
	assert.Greater(t, result.Words, 0)
	assert.Len(t, result.Generators, 3)

	var sumSq float64
	for _, v := range result.Combined {
		sumSq += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sumSq), 1e-5)
}

func TestEmbedSchema_LearnedIncluded(t *testing.T) {
	learned := &stubEmbedder{vector: make([]float32, 64)}
	learned.vector[0] = 1

	svc := newTestService(t, learned)

	result, err := svc.EmbedSchema(context.Background(), embedding.Request{
		SchemaText: "create table orders ( id bigint primary key )",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, learned.calls)
	assert.Contains(t, result.Generators, embedding.GeneratorLearned)
}

func TestEmbedSchema_LearnedError(t *testing.T) {
	learned := &stubEmbedder{err: errors.New("endpoint down")}
	svc := newTestService(t, learned)

	_, err := svc.EmbedSchema(context.Background(), embedding.Request{SchemaText: "create table t ( id int )"})
	assert.ErrorContains(t, err, "learned embed")
}

func TestRequestFromSchema(t *testing.T) {
	schema := domain.TableSchema{
		Name: "orders",
		Columns: []domain.Column{
			{Table: "orders", Name: "id", DataType: "bigint", IsPrimaryKey: true},
			{Table: "orders", Name: "user_id", DataType: "bigint", IsForeignKey: true, ReferencedTable: "users", ReferencedColumn: "id"},
		},
	}

	req := requestFromSchema("create table orders (...)", schema)

	assert.Equal(t, "create table orders (...)", req.SchemaText)
	assert.Equal(t, "id", req.PrimaryKey)
	assert.Contains(t, req.Entities, "orders")
	require.Len(t, req.ForeignKeys, 1)
	assert.Equal(t, "user_id", req.ForeignKeys[0].Column)
	assert.Equal(t, "users.id", req.ForeignKeys[0].Referenced)
}
