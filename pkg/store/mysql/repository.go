package mysql

import (
	"context"
	"fmt"

	"tailorshop/pkg/store/mysql/model"
)

// Repository aggregates all MySQL repositories
type Repository struct {
	ds *Datastore

	Worker *WorkerRepository
}

// NewRepository creates a new MySQL repository with all sub-repositories
func NewRepository(dsn string) (*Repository, error) {
	ds, err := NewDatastore(dsn)
	if err != nil {
		return nil, err
	}
	return NewRepositoryWithDatastore(ds), nil
}

// NewRepositoryWithDatastore builds the repositories on an existing datastore
func NewRepositoryWithDatastore(ds *Datastore) *Repository {
	return &Repository{
		ds:     ds,
		Worker: NewWorkerRepository(ds),
	}
}

// Migrate creates or updates the tables
func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.ds.DB(ctx).AutoMigrate(&model.Worker{}); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}
	return nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.ds.Close()
}
