package handler

import (
	"net/http"

	"tailorshop/internal/model"
	"tailorshop/internal/service"

	"github.com/gin-gonic/gin"
)

// GarmentHandler edits the garment-rate list of a worker form being composed
type GarmentHandler struct {
	rosterService *service.RosterService
}

// NewGarmentHandler creates a new garment handler
func NewGarmentHandler(rosterService *service.RosterService) *GarmentHandler {
	return &GarmentHandler{rosterService: rosterService}
}

// AddGarmentRateRequest draft to append to the form's current list
type AddGarmentRateRequest struct {
	Draft model.GarmentRate   `json:"draft"`
	Rates []model.GarmentRate `json:"rates"`
}

// RemoveGarmentRateRequest garment type to drop from the form's current list
type RemoveGarmentRateRequest struct {
	GarmentType string              `json:"garmentType"`
	Rates       []model.GarmentRate `json:"rates"`
}

// AddGarmentRate validates the draft and returns the updated list.
// On failure the list in the error response is the unchanged input.
// @Summary Add garment rate to draft list
// @Tags garment-rates
// @Accept json
// @Produce json
// @Param request body AddGarmentRateRequest true "Draft and current list"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/garment-rates/add [post]
func (h *GarmentHandler) AddGarmentRate(c *gin.Context) {
	var req AddGarmentRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	rates, err := h.rosterService.AddGarmentRate(req.Draft, req.Rates)
	if err != nil {
		status, code := statusFor(err)
		c.JSON(status, gin.H{
			"error": err.Error(),
			"code":  code,
			"rates": nonNil(rates),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rates": rates})
}

// RemoveGarmentRate returns the list without the given garment type
// @Summary Remove garment rate from draft list
// @Tags garment-rates
// @Accept json
// @Produce json
// @Param request body RemoveGarmentRateRequest true "Garment type and current list"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/garment-rates/remove [post]
func (h *GarmentHandler) RemoveGarmentRate(c *gin.Context) {
	var req RemoveGarmentRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	rates := h.rosterService.RemoveGarmentRate(req.GarmentType, req.Rates)
	c.JSON(http.StatusOK, gin.H{"rates": nonNil(rates)})
}

func nonNil(rates []model.GarmentRate) []model.GarmentRate {
	if rates == nil {
		return []model.GarmentRate{}
	}
	return rates
}
