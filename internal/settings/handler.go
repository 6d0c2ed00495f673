package settings

import (
	"errors"
	"net/http"

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

// Service exposes the settings service for other packages that need the
// training day cap.
func (h *Handler) Service() Service {
	return h.svc
}

// ListSettings godoc
// @Summary      List system settings
// @Tags         settings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  Setting
// @Router       /admin/settings [get]
func (h *Handler) ListSettings(c *gin.Context) {
	configs, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load settings"})
		return
	}

	c.JSON(http.StatusOK, configs)
}

// UpdateMaxTrainingDays godoc
// @Summary      Set the weekly training day cap
// @Tags         settings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      UpdateMaxTrainingDaysRequest  true  "New cap"
// @Success      200      {object}  api.MessageResponse
// @Failure      400      {object}  api.ErrorResponse
// @Router       /admin/settings/max-training-days [put]
func (h *Handler) UpdateMaxTrainingDays(c *gin.Context) {
	var req UpdateMaxTrainingDaysRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.MaxTrainingDays == nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "max_training_days is required"})
		return
	}

	if err := h.svc.SetMaxTrainingDays(c.Request.Context(), *req.MaxTrainingDays); err != nil {
		if errors.Is(err, ErrInvalidMaxTrainingDays) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to update setting"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Setting updated"})
}
