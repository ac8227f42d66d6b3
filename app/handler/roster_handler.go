package handler

import (
	"net/http"

	"tailorshop/internal/model"
	"tailorshop/internal/service"
	"tailorshop/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RosterHandler handles the worker roster screen
type RosterHandler struct {
	rosterService *service.RosterService
}

// NewRosterHandler creates a new roster handler
func NewRosterHandler(rosterService *service.RosterService) *RosterHandler {
	return &RosterHandler{rosterService: rosterService}
}

// SearchRequest one keystroke in the search box
type SearchRequest struct {
	Query string `json:"query"`
}

// ListWorkers returns the canonical roster
// @Summary Canonical roster
// @Tags workers
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/workers [get]
func (h *RosterHandler) ListWorkers(c *gin.Context) {
	status, err := h.rosterService.Status()
	resp := gin.H{
		"workers": h.rosterService.Roster(),
		"status":  status,
	}
	if err != nil {
		resp["error"] = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

// DisplayedWorkers returns what the roster screen shows right now
// @Summary Displayed list and view kind
// @Tags workers
// @Produce json
// @Success 200 {object} service.View
// @Router /api/v1/workers/displayed [get]
func (h *RosterHandler) DisplayedWorkers(c *gin.Context) {
	c.JSON(http.StatusOK, h.rosterService.View())
}

// Reload re-fetches the roster from the roster service
// @Summary Reload roster
// @Tags workers
// @Produce json
// @Success 200 {object} service.View
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/workers/reload [post]
func (h *RosterHandler) Reload(c *gin.Context) {
	if err := h.rosterService.Load(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.rosterService.View())
}

// CreateWorker submits a new worker to the roster service
// @Summary Create worker
// @Tags workers
// @Accept json
// @Produce json
// @Param request body model.CreateWorkerRequest true "New worker"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/workers [post]
func (h *RosterHandler) CreateWorker(c *gin.Context) {
	var req model.CreateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	worker, err := h.rosterService.Create(c.Request.Context(), &req)
	if err != nil && worker == nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"worker": worker}
	if err != nil {
		// Created remotely, but the roster could not be refreshed
		resp["refreshError"] = err.Error()
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateWorker applies a local edit
// @Summary Edit worker (local only)
// @Tags workers
// @Accept json
// @Produce json
// @Param id path string true "Worker ID"
// @Param request body model.WorkerPatch true "Changed fields"
// @Success 200 {object} model.Worker
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/workers/{id} [patch]
func (h *RosterHandler) UpdateWorker(c *gin.Context) {
	id := c.Param("id")

	var patch model.WorkerPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	worker, err := h.rosterService.Edit(c.Request.Context(), id, &patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, worker)
}

// DeleteWorker removes a worker locally
// @Summary Delete worker (local only)
// @Tags workers
// @Param id path string true "Worker ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/workers/{id} [delete]
func (h *RosterHandler) DeleteWorker(c *gin.Context) {
	if err := h.rosterService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Search records a keystroke; results show up on /workers/displayed once the quiet period passes
// @Summary Search keystroke
// @Tags workers
// @Accept json
// @Param request body SearchRequest true "Current search box text"
// @Success 202 {object} map[string]interface{}
// @Router /api/v1/workers/search [post]
func (h *RosterHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	seq := h.rosterService.Keystroke(req.Query)
	logger.DebugCtx(c.Request.Context(), "search keystroke %d: %q", seq, req.Query)
	c.JSON(http.StatusAccepted, gin.H{"seq": seq, "query": req.Query})
}
