package mysql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tailorshop/pkg/logger"
	"tailorshop/pkg/store/mysql/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultSearchLimit caps name search results
const DefaultSearchLimit = 50

// WorkerRepository handles tailor database operations
type WorkerRepository struct {
	ds *Datastore
}

// NewWorkerRepository creates a new worker repository
func NewWorkerRepository(ds *Datastore) *WorkerRepository {
	return &WorkerRepository{ds: ds}
}

// NewWorkerID generates a public worker ID such as W-1A2B3C4D
func NewWorkerID() string {
	return "W-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}

// List returns all workers in join order
func (r *WorkerRepository) List(ctx context.Context) ([]*model.Worker, error) {
	var workers []*model.Worker
	err := r.ds.DB(ctx).Order("id ASC").Find(&workers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	return workers, nil
}

// Get returns the worker with the given public ID, or nil when absent
func (r *WorkerRepository) Get(ctx context.Context, workerID string) (*model.Worker, error) {
	var worker model.Worker
	err := r.ds.DB(ctx).Where("worker_id = ?", workerID).First(&worker).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get worker: %w", err)
	}
	return &worker, nil
}

// Create inserts a worker, assigning a public ID when none is set
func (r *WorkerRepository) Create(ctx context.Context, worker *model.Worker) error {
	if worker.WorkerID == "" {
		worker.WorkerID = NewWorkerID()
	}
	if worker.Status == "" {
		worker.Status = "active"
	}
	now := time.Now()
	worker.CreatedAt = now
	worker.UpdatedAt = now

	if err := r.ds.DB(ctx).Create(worker).Error; err != nil {
		return fmt.Errorf("failed to create worker: %w", err)
	}
	logger.InfoCtx(ctx, "worker stored, id: %s, name: %s", worker.WorkerID, worker.Name)
	return nil
}

// SearchByName returns workers whose name contains query, case-insensitively
// under the default MySQL collation. limit <= 0 uses DefaultSearchLimit.
func (r *WorkerRepository) SearchByName(ctx context.Context, query string, limit int) ([]*model.Worker, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	var workers []*model.Worker
	err := r.ds.DB(ctx).
		Where("name LIKE ?", "%"+escapeLike(strings.TrimSpace(query))+"%").
		Order("name ASC").
		Limit(limit).
		Find(&workers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search workers: %w", err)
	}
	return workers, nil
}

// escapeLike escapes LIKE wildcards so user input matches literally
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
