package domain

import "time"

// SchemaEmbedding represents a vectorized table schema stored in pgvector.
type SchemaEmbedding struct {
	ID         string    `json:"id"          db:"id"`
	SourceID   string    `json:"source_id"   db:"source_id"`
	TableName  string    `json:"table_name"  db:"table_name"`
	SchemaText string    `json:"schema_text" db:"schema_text"`
	Generator  string    `json:"generator"   db:"generator"` // "combined" or a single variant
	Vector     []float32 `json:"-"           db:"vector"`
	CreatedAt  time.Time `json:"created_at"  db:"created_at"`
}

// SimilarSchema is returned by similarity search, including cosine score.
type SimilarSchema struct {
	SchemaEmbedding
	Similarity float64 `json:"similarity"`
}
