package member

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/ndt123-fs/Code-Gym/internal/api"
	"github.com/ndt123-fs/Code-Gym/internal/payment"
	"github.com/ndt123-fs/Code-Gym/internal/plan"
)

type Handler struct {
	svc Service
}

func NewHandler(db *sqlx.DB, renewer Renewer, notifier Notifier) *Handler {
	return &Handler{
		svc: NewService(NewRepository(db), renewer, notifier),
	}
}

// Register godoc
// @Summary      Register a member at the front desk
// @Description  Creates the member and records the first plan payment in one transaction.
// @Tags         members
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "Member profile and plan"
// @Success      201      {object}  RegistrationResult
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Failure      422      {object}  api.ErrorResponse
// @Router       /reception/members [post]
func (h *Handler) Register(c *gin.Context) {
	h.register(c, ChannelFrontDesk)
}

// RegisterOnline godoc
// @Summary      Self-service online registration
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "Member profile and plan"
// @Success      201      {object}  RegistrationResult
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Failure      422      {object}  api.ErrorResponse
// @Router       /register [post]
func (h *Handler) RegisterOnline(c *gin.Context) {
	h.register(c, ChannelOnline)
}

func (h *Handler) register(c *gin.Context, channel Channel) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.BindingError(err)})
		return
	}

	result, err := h.svc.Register(c.Request.Context(), req, channel)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidPhone), errors.Is(err, ErrInvalidBirthYear), errors.Is(err, ErrInvalidChannel):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrDuplicateEmail):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, plan.ErrPlanNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Plan not found"})
		case errors.Is(err, ErrPlanInactive):
			c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to register member"})
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

// ListMembers godoc
// @Summary      List members, newest first
// @Tags         members
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  Member
// @Router       /reception/members [get]
func (h *Handler) ListMembers(c *gin.Context) {
	members, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load members"})
		return
	}

	c.JSON(http.StatusOK, members)
}

// GetMember godoc
// @Summary      Get member by ID
// @Tags         members
// @Security     BearerAuth
// @Produce      json
// @Param        memberID  path      int  true  "Member ID"
// @Success      200       {object}  Member
// @Failure      404       {object}  api.ErrorResponse
// @Router       /reception/members/{memberID} [get]
func (h *Handler) GetMember(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	m, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load member"})
		return
	}

	c.JSON(http.StatusOK, m)
}

// AssignTrainer godoc
// @Summary      Assign a trainer to a member
// @Description  Existing training plans keep their original author.
// @Tags         members
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        memberID  path      int                   true  "Member ID"
// @Param        request   body      AssignTrainerRequest  true  "Trainer"
// @Success      200       {object}  Member
// @Failure      404       {object}  api.ErrorResponse
// @Failure      422       {object}  api.ErrorResponse
// @Router       /reception/members/{memberID}/trainer [put]
func (h *Handler) AssignTrainer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	var req AssignTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	m, err := h.svc.AssignTrainer(c.Request.Context(), id, req.TrainerID)
	if err != nil {
		switch {
		case errors.Is(err, ErrMemberNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
		case errors.Is(err, ErrTrainerNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Trainer not found"})
		case errors.Is(err, ErrNotATrainer), errors.Is(err, ErrTrainerInactive):
			c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to assign trainer"})
		}
		return
	}

	c.JSON(http.StatusOK, m)
}

// Renew godoc
// @Summary      Renew a member's subscription
// @Description  Records a payment at the plan's current price and extends the subscription from the later of today and the current expiry.
// @Tags         members
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        memberID  path      int           true  "Member ID"
// @Param        request   body      RenewRequest  true  "Plan to pay for"
// @Success      201       {object}  payment.RenewalResult
// @Failure      404       {object}  api.ErrorResponse
// @Failure      422       {object}  api.ErrorResponse
// @Router       /reception/members/{memberID}/renew [post]
func (h *Handler) Renew(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	var req RenewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.svc.Renew(c.Request.Context(), id, req.PlanID)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrMemberNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
		case errors.Is(err, plan.ErrPlanNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Plan not found"})
		case errors.Is(err, payment.ErrMemberInactive), errors.Is(err, payment.ErrPlanInactive):
			c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to renew subscription"})
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

// DeactivateMember godoc
// @Summary      Deactivate a member
// @Description  Soft delete. Payment history and training plans are preserved.
// @Tags         members
// @Security     BearerAuth
// @Produce      json
// @Param        memberID  path      int  true  "Member ID"
// @Success      200       {object}  api.MessageResponse
// @Failure      404       {object}  api.ErrorResponse
// @Router       /reception/members/{memberID}/deactivate [post]
func (h *Handler) DeactivateMember(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to deactivate member"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Member deactivated"})
}
