package port

import "errors"

// Sentinel errors used across ports.
var (
	ErrWordNotFound      = errors.New("word index not assigned")
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	ErrConfiguration     = errors.New("invalid embedding configuration")
	ErrGeneratorNotFound = errors.New("embedding generator not found")
	ErrSourceNotFound    = errors.New("schema source not found")
	ErrSchemaNotFound    = errors.New("table schema not found")
	ErrUnauthorized      = errors.New("unauthorized")
)
