package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/fiftytwo/internal/core/services"
)

type GoalHandler struct {
	svc *services.GoalService
}

func NewGoalHandler(svc *services.GoalService) *GoalHandler {
	return &GoalHandler{
		svc: svc,
	}
}

type createGoalRequest struct {
	Title          string `json:"title" binding:"required,max=100"`
	TargetAmount   *int   `json:"targetAmount" binding:"omitempty,gt=0"`
	TotalWeeks     *int   `json:"totalWeeks" binding:"omitempty,gt=0"`
	StartingAmount *int   `json:"startingAmount" binding:"omitempty,gte=0"`
	ImageURL       string `json:"imageUrl" binding:"omitempty,url"`
	Language       string `json:"language"`
	Currency       string `json:"currency"`
	Genre          string `json:"genre"`
	ReminderDay    string `json:"reminderDay"`
}

func (h *GoalHandler) RegisterRoutes(router *gin.RouterGroup) {
	goals := router.Group("/goals")
	{
		goals.GET("", h.List)
		goals.POST("", h.Create)
		goals.GET("/:id", h.Get)
		goals.DELETE("/:id", h.Delete)
	}
}

// List godoc
// @Summary List the caller's goals, newest first
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Goal
// @Router /goals [get]
func (h *GoalHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	list, err := h.svc.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// Create godoc
// @Summary Create a goal and its weekly schedule
// @Description Omitted fields fall back to the classic challenge: 1378 over 52 weeks.
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body createGoalRequest true "Goal"
// @Success 201 {object} domain.Goal
// @Failure 400 {object} map[string]any
// @Router /goals [post]
func (h *GoalHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req createGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	goal, err := h.svc.Create(c.Request.Context(), services.CreateGoalInput{
		UserID:         userID,
		Title:          req.Title,
		TargetAmount:   req.TargetAmount,
		TotalWeeks:     req.TotalWeeks,
		StartingAmount: req.StartingAmount,
		ImageURL:       req.ImageURL,
		Language:       req.Language,
		Currency:       req.Currency,
		Genre:          req.Genre,
		ReminderDay:    req.ReminderDay,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, goal)
}

// Get godoc
// @Summary Fetch one goal
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 200 {object} domain.Goal
// @Failure 404 {object} map[string]any
// @Router /goals/{id} [get]
func (h *GoalHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	goal, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

// Delete godoc
// @Summary Delete a goal with its weeks
// @Tags goals
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 204
// @Failure 404 {object} map[string]any
// @Router /goals/{id} [delete]
func (h *GoalHandler) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
