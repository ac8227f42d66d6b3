package rosterd

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"tailorshop/internal/roster"
	"tailorshop/pkg/logger"
	"tailorshop/pkg/store/mysql"
	"tailorshop/pkg/store/mysql/model"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// WorkerStore persistence used by the handler
type WorkerStore interface {
	List(ctx context.Context) ([]*model.Worker, error)
	Get(ctx context.Context, workerID string) (*model.Worker, error)
	Create(ctx context.Context, worker *model.Worker) error
	SearchByName(ctx context.Context, query string, limit int) ([]*model.Worker, error)
}

// Handler serves the roster service API
type Handler struct {
	store WorkerStore
}

// NewHandler creates a new roster service handler
func NewHandler(store WorkerStore) *Handler {
	return &Handler{store: store}
}

// ListWorkers GET /api/workers
func (h *Handler) ListWorkers(c *gin.Context) {
	rows, err := h.store.List(c.Request.Context())
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), "failed to list workers: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list workers"})
		return
	}

	workers := mysql.ToWorkersDomain(rows)
	records := make([]WorkerRecord, 0, len(workers))
	for _, w := range workers {
		records = append(records, toWorkerRecord(w))
	}
	c.JSON(http.StatusOK, gin.H{"workers": records})
}

// GetWorker GET /api/workers/:id
func (h *Handler) GetWorker(c *gin.Context) {
	id := c.Param("id")

	row, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), "failed to get worker %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get worker"})
		return
	}
	if row == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "worker not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"worker": toWorkerRecord(*mysql.ToWorkerDomain(row))})
}

// CreateWorker POST /api/workers
func (h *Handler) CreateWorker(c *gin.Context) {
	var req CreateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Fields: fieldErrors(verrs)})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	worker := req.toDomain()
	if err := roster.ValidateGarmentRates(worker.GarmentRates); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:  "validation failed",
			Fields: map[string]string{"garmentRates": err.Error()},
		})
		return
	}

	row := mysql.FromWorkerDomain(worker)
	if err := h.store.Create(c.Request.Context(), row); err != nil {
		logger.ErrorCtx(c.Request.Context(), "failed to create worker: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create worker"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"worker": toWorkerRecord(*mysql.ToWorkerDomain(row))})
}

// SearchWorkers GET /api/workers/search?q=
func (h *Handler) SearchWorkers(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusOK, gin.H{"workers": []SearchRecord{}})
		return
	}

	limit := 0
	if l := c.Query("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil {
			limit = n
		}
	}

	rows, err := h.store.SearchByName(c.Request.Context(), query, limit)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), "failed to search workers: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to search workers"})
		return
	}

	workers := mysql.ToWorkersDomain(rows)
	records := make([]SearchRecord, 0, len(workers))
	for _, w := range workers {
		records = append(records, toSearchRecord(w))
	}
	c.JSON(http.StatusOK, gin.H{"workers": records})
}

// fieldErrors keys validation failures by JSON field name
func fieldErrors(verrs validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := jsonName(fe.StructNamespace())
		if _, seen := fields[name]; seen {
			continue
		}
		if fe.Param() != "" {
			fields[name] = "failed " + fe.Tag() + "=" + fe.Param()
		} else {
			fields[name] = "failed " + fe.Tag()
		}
	}
	return fields
}

// jsonName maps CreateWorkerRequest.GarmentRates[0].Rate to garmentRates
func jsonName(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	top := parts[0]
	if i := strings.IndexByte(top, '['); i >= 0 {
		top = top[:i]
	}
	r := []rune(top)
	if len(r) > 0 {
		r[0] = unicode.ToLower(r[0])
	}
	return string(r)
}
