package schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/ndt123-fs/Code-Gym/internal/api"
	"github.com/ndt123-fs/Code-Gym/internal/auth"
)

type Handler struct {
	svc Service
}

func NewHandler(db *sqlx.DB, dayCap DayCap) *Handler {
	return &Handler{
		svc: NewService(NewRepository(db), dayCap),
	}
}

// CreatePlan godoc
// @Summary      Create a training plan
// @Description  Becomes the member's active plan; the previous active plan is archived.
// @Tags         training-plans
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreatePlanRequest  true  "Plan data"
// @Success      201      {object}  TrainingPlan
// @Failure      404      {object}  api.ErrorResponse
// @Failure      422      {object}  api.ErrorResponse
// @Router       /trainer/training-plans [post]
func (h *Handler) CreatePlan(c *gin.Context) {
	trainerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	plan, err := h.svc.Create(c.Request.Context(), trainerID, req)
	if err != nil {
		h.writeError(c, err, "failed to create training plan")
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// GetPlan godoc
// @Summary      Get training plan by ID
// @Tags         training-plans
// @Security     BearerAuth
// @Produce      json
// @Param        planID  path      int  true  "Plan ID"
// @Success      200     {object}  TrainingPlan
// @Failure      404     {object}  api.ErrorResponse
// @Router       /trainer/training-plans/{planID} [get]
func (h *Handler) GetPlan(c *gin.Context) {
	planID, err := strconv.Atoi(c.Param("planID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid plan ID"})
		return
	}

	plan, err := h.svc.GetByID(c.Request.Context(), planID)
	if err != nil {
		h.writeError(c, err, "failed to load training plan")
		return
	}

	c.JSON(http.StatusOK, plan)
}

// ListMemberPlans godoc
// @Summary      List a member's training plans, newest first
// @Tags         training-plans
// @Security     BearerAuth
// @Produce      json
// @Param        memberID  path     int  true  "Member ID"
// @Success      200       {array}  TrainingPlan
// @Failure      404       {object} api.ErrorResponse
// @Router       /trainer/members/{memberID}/training-plans [get]
func (h *Handler) ListMemberPlans(c *gin.Context) {
	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	plans, err := h.svc.ListByMember(c.Request.Context(), memberID)
	if err != nil {
		h.writeError(c, err, "failed to load training plans")
		return
	}

	c.JSON(http.StatusOK, plans)
}

// UpdatePlan godoc
// @Summary      Update notes and items of an active training plan
// @Tags         training-plans
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        planID   path      int                true  "Plan ID"
// @Param        request  body      UpdatePlanRequest  true  "Plan data"
// @Success      200      {object}  TrainingPlan
// @Failure      404      {object}  api.ErrorResponse
// @Failure      422      {object}  api.ErrorResponse
// @Router       /trainer/training-plans/{planID} [put]
func (h *Handler) UpdatePlan(c *gin.Context) {
	planID, err := strconv.Atoi(c.Param("planID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid plan ID"})
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	plan, err := h.svc.Update(c.Request.Context(), planID, req)
	if err != nil {
		h.writeError(c, err, "failed to update training plan")
		return
	}

	c.JSON(http.StatusOK, plan)
}

// DeleteItem godoc
// @Summary      Remove one item from an active training plan
// @Tags         training-plans
// @Security     BearerAuth
// @Produce      json
// @Param        planID  path      int  true  "Plan ID"
// @Param        itemID  path      int  true  "Item ID"
// @Success      200     {object}  api.MessageResponse
// @Failure      404     {object}  api.ErrorResponse
// @Failure      422     {object}  api.ErrorResponse
// @Router       /trainer/training-plans/{planID}/items/{itemID} [delete]
func (h *Handler) DeleteItem(c *gin.Context) {
	planID, err := strconv.Atoi(c.Param("planID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid plan ID"})
		return
	}
	itemID, err := strconv.Atoi(c.Param("itemID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid item ID"})
		return
	}

	if err := h.svc.DeleteItem(c.Request.Context(), planID, itemID); err != nil {
		h.writeError(c, err, "failed to delete training plan item")
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Item removed"})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrPlanNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Training plan not found"})
	case errors.Is(err, ErrMemberNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
	case errors.Is(err, ErrItemNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Item not found"})
	case errors.Is(err, ErrNoItems), errors.Is(err, ErrInvalidSetsReps), errors.Is(err, ErrInvalidWeekday):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrTooManyTrainingDays),
		errors.Is(err, ErrLastItem),
		errors.Is(err, ErrPlanArchived),
		errors.Is(err, ErrMemberInactive),
		errors.Is(err, ErrUnknownExercise):
		c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: fallback})
	}
}
