package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/fiftytwo/internal/core/domain"
	"github.com/comitanigiacomo/fiftytwo/internal/core/services"
)

type ProgressHandler struct {
	svc *services.ProgressService
}

func NewProgressHandler(svc *services.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		svc: svc,
	}
}

type toggleWeekRequest struct {
	IsCompleted *bool `json:"isCompleted" binding:"required"`
}

type depositRequest struct {
	Amount *int `json:"amount" binding:"required,gte=0"`
}

func (h *ProgressHandler) RegisterRoutes(router *gin.RouterGroup) {
	goal := router.Group("/goals/:id")
	{
		goal.GET("/progress", h.List)
		goal.PATCH("/progress/:weekNumber", h.Toggle)
		goal.GET("/stats", h.Stats)
		goal.POST("/deposits", h.Deposit)
	}
}

// List godoc
// @Summary Weekly schedule of a goal
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 200 {array} domain.WeekProgress
// @Failure 404 {object} map[string]any
// @Router /goals/{id}/progress [get]
func (h *ProgressHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	weeks, err := h.svc.List(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, weeks)
}

// Toggle godoc
// @Summary Mark a week as saved or undo it
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Param weekNumber path int true "Week number"
// @Param body body toggleWeekRequest true "Completion state"
// @Success 200 {object} domain.WeekProgress
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /goals/{id}/progress/{weekNumber} [patch]
func (h *ProgressHandler) Toggle(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	weekNumber, err := strconv.Atoi(c.Param("weekNumber"))
	if err != nil || weekNumber < 1 {
		handleError(c, domain.ErrInvalidWeekNumber)
		return
	}

	var req toggleWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	week, err := h.svc.Toggle(c.Request.Context(), services.ToggleWeekInput{
		GoalID:     c.Param("id"),
		UserID:     userID,
		WeekNumber: weekNumber,
		Completed:  *req.IsCompleted,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, week)
}

// Stats godoc
// @Summary Aggregated progress of a goal
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 200 {object} domain.ProgressStats
// @Failure 404 {object} map[string]any
// @Router /goals/{id}/stats [get]
func (h *ProgressHandler) Stats(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	stats, err := h.svc.Stats(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Deposit godoc
// @Summary Record a deposit against the first pending week with that amount
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Param body body depositRequest true "Deposit"
// @Success 200 {object} domain.WeekProgress
// @Failure 404 {object} map[string]any
// @Router /goals/{id}/deposits [post]
func (h *ProgressHandler) Deposit(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req depositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	week, err := h.svc.Deposit(c.Request.Context(), services.DepositInput{
		GoalID: c.Param("id"),
		UserID: userID,
		Amount: *req.Amount,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, week)
}
