package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/schemalens/schemalens/internal/adapter/introspect"
	"github.com/schemalens/schemalens/internal/adapter/render"
	"github.com/schemalens/schemalens/internal/adapter/store"
	"github.com/schemalens/schemalens/internal/domain"
	"github.com/schemalens/schemalens/internal/embedding"
	"github.com/schemalens/schemalens/internal/port"
)

// ingestConcurrency caps how many tables are embedded in parallel during a
// source ingest. Each table gets its own word index, so no state is shared.
const ingestConcurrency = 4

// EmbeddingService orchestrates the embedding pipeline: render schema text,
// run every generator over one shared word index, blend the outputs, and
// persist the result for similarity search.
type EmbeddingService struct {
	engine      *embedding.Engine
	learned     port.TextEmbedder // nil = hash-only pipeline
	vectorStore *store.VectorStore
}

// EmbedResult is one embedding run: the blended vector plus the per-generator
// outputs it was built from.
type EmbedResult struct {
	Combined   []float32            `json:"combined"`
	Generators map[string][]float32 `json:"generators"`
	Words      int                  `json:"words"`
}

// NewEmbeddingService creates a new embedding service. learned may be nil.
func NewEmbeddingService(engine *embedding.Engine, learned port.TextEmbedder, vectorStore *store.VectorStore) *EmbeddingService {
	return &EmbeddingService{engine: engine, learned: learned, vectorStore: vectorStore}
}

// Size returns the embedding dimensionality.
func (s *EmbeddingService) Size() int {
	return s.engine.Size()
}

// Generators returns name -> description for every hash generator variant.
func (s *EmbeddingService) Generators() map[string]string {
	return s.engine.Describe()
}

// EmbedSchema runs every generator against one request. The hash generators
// share a single word index created for this call, so identical words land on
// identical slots across the variants being combined; the index is written by
// one goroutine only.
func (s *EmbeddingService) EmbedSchema(ctx context.Context, req embedding.Request) (*EmbedResult, error) {
	idx := embedding.NewWordIndex()
	vectors := s.engine.RunAll(idx, req)

	if s.learned != nil {
		vec, err := s.learned.Embed(ctx, req.SchemaText)
		if err != nil {
			return nil, fmt.Errorf("learned embed: %w", err)
		}
		vectors[embedding.GeneratorLearned] = vec
	}

	combined, err := s.engine.Combine(vectors)
	if err != nil {
		return nil, err
	}

	return &EmbedResult{
		Combined:   combined,
		Generators: vectors,
		Words:      idx.Count(),
	}, nil
}

// EmbedTable renders one table schema to text, embeds it, and persists the
// combined vector.
func (s *EmbeddingService) EmbedTable(ctx context.Context, sourceID string, schema domain.TableSchema) (*domain.SchemaEmbedding, error) {
	text := render.CreateTable(schema)

	result, err := s.EmbedSchema(ctx, requestFromSchema(text, schema))
	if err != nil {
		return nil, fmt.Errorf("embed table %s: %w", schema.Name, err)
	}

	emb := &domain.SchemaEmbedding{
		ID:         uuid.NewString(),
		SourceID:   sourceID,
		TableName:  schema.Name,
		SchemaText: text,
		Generator:  "combined",
		Vector:     result.Combined,
	}
	if err := s.vectorStore.StoreEmbedding(ctx, emb); err != nil {
		return nil, err
	}
	return emb, nil
}

// IngestSource introspects every table of a source and embeds them
// concurrently. progress may be nil.
func (s *EmbeddingService) IngestSource(ctx context.Context, src *domain.SchemaSource, progress func(table string, done, total int)) (int, error) {
	slog.Info("ingesting source", "source_id", src.ID, "driver", src.Driver)

	insp, err := introspect.Open(src.Driver, src.DSN)
	if err != nil {
		return 0, fmt.Errorf("open source: %w", err)
	}
	defer insp.Close()

	schemas, err := insp.IntrospectAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("introspect source: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(ingestConcurrency)

	var mu sync.Mutex
	done := 0
	for _, schema := range schemas {
		g.Go(func() error {
			if _, err := s.EmbedTable(ctx, src.ID, schema); err != nil {
				return err
			}
			mu.Lock()
			done++
			d := done
			mu.Unlock()
			if progress != nil {
				progress(schema.Name, d, len(schemas))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return done, err
	}
	slog.Info("source ingested", "source_id", src.ID, "tables", len(schemas))
	return len(schemas), nil
}

// Search embeds an ad-hoc schema request and returns the most similar stored
// schemas. An empty sourceID searches across every source.
func (s *EmbeddingService) Search(ctx context.Context, req embedding.Request, sourceID string, limit int) ([]domain.SimilarSchema, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	result, err := s.EmbedSchema(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	return s.vectorStore.SearchSimilar(ctx, sourceID, result.Combined, limit)
}

// requestFromSchema maps an introspected table onto an embedding request.
func requestFromSchema(text string, schema domain.TableSchema) embedding.Request {
	refs := schema.ForeignKeys()
	fks := make([]embedding.ForeignKey, len(refs))
	for i, ref := range refs {
		fks[i] = embedding.ForeignKey{Column: ref.Column, Referenced: ref.Referenced}
	}
	return embedding.Request{
		SchemaText:  text,
		Entities:    schema.Entities(),
		PrimaryKey:  schema.PrimaryKey(),
		ForeignKeys: fks,
	}
}
