package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/schemalens/schemalens/internal/adapter/introspect"
	"github.com/schemalens/schemalens/internal/adapter/store"
	"github.com/schemalens/schemalens/internal/domain"
	"github.com/schemalens/schemalens/internal/port"
)

// SourceService manages registered schema sources.
type SourceService struct {
	store *store.PostgresStore
}

// NewSourceService creates a new source service.
func NewSourceService(store *store.PostgresStore) *SourceService {
	return &SourceService{store: store}
}

// Register validates connectivity to a database and records it as a source.
func (s *SourceService) Register(ctx context.Context, name, driver, dsn string) (*domain.SchemaSource, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: source name is required", port.ErrConfiguration)
	}

	insp, err := introspect.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	insp.Close()

	src, err := s.store.CreateSource(ctx, &domain.SchemaSource{
		Name:   name,
		Driver: driver,
		DSN:    dsn,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("source registered", "source_id", src.ID, "name", name, "driver", driver)
	return src, nil
}

// Get fetches one source by ID.
func (s *SourceService) Get(ctx context.Context, id string) (*domain.SchemaSource, error) {
	return s.store.GetSource(ctx, id)
}

// List returns all registered sources.
func (s *SourceService) List(ctx context.Context) ([]domain.SchemaSource, error) {
	return s.store.ListSources(ctx)
}

// Tables lists the tables visible in a source's database.
func (s *SourceService) Tables(ctx context.Context, id string) ([]string, error) {
	src, err := s.store.GetSource(ctx, id)
	if err != nil {
		return nil, err
	}

	insp, err := introspect.Open(src.Driver, src.DSN)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer insp.Close()

	return insp.ListTables(ctx)
}
