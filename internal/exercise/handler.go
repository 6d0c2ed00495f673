package exercise

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/ndt123-fs/Code-Gym/internal/api"
)

type Handler struct {
	svc Service
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{
		svc: NewService(NewRepository(db)),
	}
}

// CreateExercise godoc
// @Summary      Add exercise to the catalog
// @Tags         exercises
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateExerciseRequest  true  "Exercise data"
// @Success      201      {object}  Exercise
// @Failure      400      {object}  api.ErrorResponse
// @Router       /admin/exercises [post]
func (h *Handler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	e, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrNameRequired) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to create exercise"})
		return
	}

	c.JSON(http.StatusCreated, e)
}

// ListExercises godoc
// @Summary      List the exercise catalog
// @Tags         exercises
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  Exercise
// @Router       /exercises [get]
func (h *Handler) ListExercises(c *gin.Context) {
	exercises, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load exercises"})
		return
	}

	c.JSON(http.StatusOK, exercises)
}

// GetExercise godoc
// @Summary      Get exercise by ID
// @Tags         exercises
// @Security     BearerAuth
// @Produce      json
// @Param        exerciseID  path      int  true  "Exercise ID"
// @Success      200         {object}  Exercise
// @Failure      404         {object}  api.ErrorResponse
// @Router       /exercises/{exerciseID} [get]
func (h *Handler) GetExercise(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("exerciseID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid exercise ID"})
		return
	}

	e, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Exercise not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load exercise"})
		return
	}

	c.JSON(http.StatusOK, e)
}

// UpdateExercise godoc
// @Summary      Update exercise
// @Tags         exercises
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        exerciseID  path      int                    true  "Exercise ID"
// @Param        request     body      UpdateExerciseRequest  true  "Exercise data"
// @Success      200         {object}  Exercise
// @Failure      404         {object}  api.ErrorResponse
// @Router       /admin/exercises/{exerciseID} [put]
func (h *Handler) UpdateExercise(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("exerciseID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid exercise ID"})
		return
	}

	var req UpdateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	e, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrExerciseNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Exercise not found"})
		case errors.Is(err, ErrNameRequired):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to update exercise"})
		}
		return
	}

	c.JSON(http.StatusOK, e)
}

// DeleteExercise godoc
// @Summary      Delete exercise
// @Description  Fails while any training plan, current or archived, still references the exercise.
// @Tags         exercises
// @Security     BearerAuth
// @Produce      json
// @Param        exerciseID  path      int  true  "Exercise ID"
// @Success      200         {object}  api.MessageResponse
// @Failure      404         {object}  api.ErrorResponse
// @Failure      409         {object}  api.ErrorResponse
// @Router       /admin/exercises/{exerciseID} [delete]
func (h *Handler) DeleteExercise(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("exerciseID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid exercise ID"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrExerciseNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Exercise not found"})
		case errors.Is(err, ErrExerciseInUse):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to delete exercise"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Exercise deleted"})
}
