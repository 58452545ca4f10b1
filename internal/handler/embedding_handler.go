package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/schemalens/schemalens/internal/embedding"
	"github.com/schemalens/schemalens/internal/port"
	"github.com/schemalens/schemalens/internal/service"
)

// EmbeddingHandler handles ad-hoc embedding and similarity search endpoints.
type EmbeddingHandler struct {
	embeddings *service.EmbeddingService
}

// NewEmbeddingHandler creates a new embedding handler.
func NewEmbeddingHandler(embeddings *service.EmbeddingService) *EmbeddingHandler {
	return &EmbeddingHandler{embeddings: embeddings}
}

// Register sets up embedding routes on a protected group.
func (h *EmbeddingHandler) Register(api fiber.Router) {
	api.Post("/embed", h.Embed)
	api.Post("/search", h.Search)
	api.Get("/generators", h.Generators)
}

// schemaBody is the wire form of an embedding request.
type schemaBody struct {
	SchemaText  string   `json:"schema_text"`
	Entities    []string `json:"entities"`
	PrimaryKey  string   `json:"primary_key"`
	ForeignKeys []struct {
		Column     string `json:"column"`
		Referenced string `json:"referenced"`
	} `json:"foreign_keys"`
}

func (b schemaBody) toRequest() embedding.Request {
	fks := make([]embedding.ForeignKey, len(b.ForeignKeys))
	for i, fk := range b.ForeignKeys {
		fks[i] = embedding.ForeignKey{Column: fk.Column, Referenced: fk.Referenced}
	}
	return embedding.Request{
		SchemaText:  b.SchemaText,
		Entities:    b.Entities,
		PrimaryKey:  b.PrimaryKey,
		ForeignKeys: fks,
	}
}

// Embed runs the full generator pipeline over a schema description and
// returns the combined vector plus each generator's output.
func (h *EmbeddingHandler) Embed(c fiber.Ctx) error {
	var body schemaBody
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(body.SchemaText) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "schema_text is required"})
	}

	result, err := h.embeddings.EmbedSchema(c.Context(), body.toRequest())
	if err != nil {
		if errors.Is(err, port.ErrDimensionMismatch) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"size":   h.embeddings.Size(),
		"words":  result.Words,
		"vector": result.Combined,
	})
}

// Search embeds a schema description and returns the most similar stored
// schemas, optionally scoped to one source.
func (h *EmbeddingHandler) Search(c fiber.Ctx) error {
	var body struct {
		schemaBody
		SourceID string `json:"source_id"`
		Limit    int    `json:"limit"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(body.SchemaText) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "schema_text is required"})
	}

	results, err := h.embeddings.Search(c.Context(), body.toRequest(), body.SourceID, body.Limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"results": results, "count": len(results)})
}

// Generators lists the available generator variants.
func (h *EmbeddingHandler) Generators(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"generators": h.embeddings.Generators(),
		"size":       h.embeddings.Size(),
	})
}
