package handler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/schemalens/schemalens/internal/adapter/store"
	"github.com/schemalens/schemalens/internal/domain"
	"github.com/schemalens/schemalens/internal/port"
	"github.com/schemalens/schemalens/internal/service"
)

// ingestTimeout bounds a background ingest run once the HTTP request has
// already been answered.
const ingestTimeout = 10 * time.Minute

// SourceHandler handles schema source registration and ingestion.
type SourceHandler struct {
	sources     *service.SourceService
	embeddings  *service.EmbeddingService
	vectorStore *store.VectorStore
	tracker     *JobTracker
}

// NewSourceHandler creates a new source handler.
func NewSourceHandler(sources *service.SourceService, embeddings *service.EmbeddingService, vectorStore *store.VectorStore, tracker *JobTracker) *SourceHandler {
	return &SourceHandler{
		sources:     sources,
		embeddings:  embeddings,
		vectorStore: vectorStore,
		tracker:     tracker,
	}
}

// Register sets up source routes on a protected group.
func (h *SourceHandler) Register(api fiber.Router) {
	sources := api.Group("/sources")
	sources.Get("/", h.List)
	sources.Post("/", h.Create)
	sources.Get("/:id", h.Get)
	sources.Get("/:id/tables", h.Tables)
	sources.Post("/:id/ingest", h.Ingest)
}

// List returns all registered sources.
func (h *SourceHandler) List(c fiber.Ctx) error {
	sources, err := h.sources.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"sources": sources, "count": len(sources)})
}

// Create registers a new schema source after verifying connectivity.
func (h *SourceHandler) Create(c fiber.Ctx) error {
	var body struct {
		Name   string `json:"name"`
		Driver string `json:"driver"`
		DSN    string `json:"dsn"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	src, err := h.sources.Register(c.Context(), body.Name, body.Driver, body.DSN)
	if err != nil {
		if errors.Is(err, port.ErrConfiguration) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(src)
}

// Get returns one source with its stored embedding count.
func (h *SourceHandler) Get(c fiber.Ctx) error {
	src, err := h.sources.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, port.ErrSourceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "source not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	count, err := h.vectorStore.CountBySource(c.Context(), src.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"source": src, "embeddings": count})
}

// Tables lists the tables visible in a source's database.
func (h *SourceHandler) Tables(c fiber.Ctx) error {
	tables, err := h.sources.Tables(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, port.ErrSourceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "source not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"tables": tables, "count": len(tables)})
}

// Ingest introspects and embeds every table of a source asynchronously,
// returning a job ID for progress tracking.
func (h *SourceHandler) Ingest(c fiber.Ctx) error {
	src, err := h.sources.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, port.ErrSourceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "source not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	jobID := uuid.NewString()
	h.tracker.CreateJob(jobID, src.ID)

	go h.runIngest(jobID, src)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "ingest started",
		"job_id":  jobID,
	})
}

func (h *SourceHandler) runIngest(jobID string, src *domain.SchemaSource) {
	ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
	defer cancel()

	total, err := h.embeddings.IngestSource(ctx, src, func(table string, done, tables int) {
		h.tracker.UpdateJob(jobID, table, done, tables, "running")
	})
	if err != nil {
		slog.Error("ingest failed", "job_id", jobID, "source_id", src.ID, "error", err)
		h.tracker.FailJob(jobID, err.Error())
		return
	}

	h.tracker.UpdateJob(jobID, "", total, total, "complete")
}
