package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/schemalens/schemalens/internal/domain"
)

// VectorStore handles pgvector-specific operations for schema embeddings.
type VectorStore struct {
	store     *PostgresStore
	dimension int
}

// NewVectorStore creates a vector store backed by the given Postgres store.
func NewVectorStore(store *PostgresStore, dimension int) *VectorStore {
	return &VectorStore{store: store, dimension: dimension}
}

// StoreEmbedding persists a single schema embedding with its vector, replacing
// any previous embedding of the same source table and generator.
func (v *VectorStore) StoreEmbedding(ctx context.Context, e *domain.SchemaEmbedding) error {
	vectorStr := vectorToString(e.Vector)
	del := `DELETE FROM schema_embeddings WHERE source_id = $1 AND table_name = $2 AND generator = $3`
	if _, err := v.store.db.ExecContext(ctx, del, e.SourceID, e.TableName, e.Generator); err != nil {
		return fmt.Errorf("replace embedding: %w", err)
	}

	query := `INSERT INTO schema_embeddings (id, source_id, table_name, schema_text, generator, vector)
	          VALUES ($1, $2, $3, $4, $5, $6::vector)`

	_, err := v.store.db.ExecContext(ctx, query,
		e.ID, e.SourceID, e.TableName, e.SchemaText, e.Generator, vectorStr,
	)
	if err != nil {
		return fmt.Errorf("store embedding: %w", err)
	}
	return nil
}

// StoreBatchEmbeddings persists multiple embeddings efficiently.
func (v *VectorStore) StoreBatchEmbeddings(ctx context.Context, embeddings []domain.SchemaEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}

	tx, err := v.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO schema_embeddings (id, source_id, table_name, schema_text, generator, vector)
		 VALUES ($1, $2, $3, $4, $5, $6::vector)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, e := range embeddings {
		vectorStr := vectorToString(e.Vector)
		if _, err := stmt.ExecContext(ctx,
			e.ID, e.SourceID, e.TableName, e.SchemaText, e.Generator, vectorStr,
		); err != nil {
			return fmt.Errorf("insert embedding: %w", err)
		}
	}

	return tx.Commit()
}

// SearchSimilar performs a cosine similarity search over stored schema
// embeddings. An empty sourceID searches across every source.
func (v *VectorStore) SearchSimilar(ctx context.Context, sourceID string, queryVector []float32, limit int) ([]domain.SimilarSchema, error) {
	vectorStr := vectorToString(queryVector)

	query := `SELECT e.id, e.source_id, e.table_name, e.schema_text, e.generator, e.created_at,
	                 1 - (e.vector <=> $1::vector) AS similarity
	          FROM schema_embeddings e`
	args := []interface{}{vectorStr}
	if sourceID != "" {
		query += ` WHERE e.source_id = $2`
		args = append(args, sourceID)
	}
	query += fmt.Sprintf(` ORDER BY e.vector <=> $1::vector LIMIT %d`, limit)

	rows, err := v.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search similar: %w", err)
	}
	defer rows.Close()

	var results []domain.SimilarSchema
	for rows.Next() {
		var sc domain.SimilarSchema
		if err := rows.Scan(
			&sc.ID, &sc.SourceID, &sc.TableName, &sc.SchemaText,
			&sc.Generator, &sc.CreatedAt, &sc.Similarity,
		); err != nil {
			return nil, fmt.Errorf("scan similar: %w", err)
		}
		results = append(results, sc)
	}
	return results, rows.Err()
}

// DeleteEmbeddingsBySource deletes all embeddings for a source.
func (v *VectorStore) DeleteEmbeddingsBySource(ctx context.Context, sourceID string) error {
	query := `DELETE FROM schema_embeddings WHERE source_id = $1`
	_, err := v.store.db.ExecContext(ctx, query, sourceID)
	return err
}

// CountBySource returns the number of stored embeddings per source.
func (v *VectorStore) CountBySource(ctx context.Context, sourceID string) (int, error) {
	var count int
	err := v.store.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM schema_embeddings WHERE source_id = $1`, sourceID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count embeddings: %w", err)
	}
	return count, nil
}

// vectorToString converts a float32 slice to pgvector string format: [0.1,0.2,0.3].
func vectorToString(v []float32) string {
	parts := make([]string, len(v))
	for i, val := range v {
		parts[i] = fmt.Sprintf("%g", val)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
