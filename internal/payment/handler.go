package payment

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/ndt123-fs/Code-Gym/internal/api"
	"github.com/ndt123-fs/Code-Gym/internal/plan"
)

type Handler struct {
	svc Service
}

func NewHandler(db *sqlx.DB, notifier Notifier) *Handler {
	return &Handler{
		svc: NewService(NewRepository(db), notifier),
	}
}

// RecordPayment godoc
// @Summary      Record a plan payment
// @Description  Charges the plan's current price and extends the member's subscription from the later of today and the current expiry.
// @Tags         payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      RecordPaymentRequest  true  "Payment data"
// @Success      201      {object}  RenewalResult
// @Failure      404      {object}  api.ErrorResponse
// @Failure      422      {object}  api.ErrorResponse
// @Router       /cashier/payments [post]
func (h *Handler) RecordPayment(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.svc.RecordPlanPayment(c.Request.Context(), req.MemberID, req.PlanID)
	if err != nil {
		switch {
		case errors.Is(err, ErrMemberNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
		case errors.Is(err, plan.ErrPlanNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Plan not found"})
		case errors.Is(err, ErrMemberInactive), errors.Is(err, ErrPlanInactive):
			c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to record payment"})
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

// RecordAdjustment godoc
// @Summary      Record a manual adjustment
// @Description  Appends a signed correction entry. Existing entries are never modified.
// @Tags         payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      RecordAdjustmentRequest  true  "Adjustment data"
// @Success      201      {object}  Payment
// @Failure      404      {object}  api.ErrorResponse
// @Router       /cashier/adjustments [post]
func (h *Handler) RecordAdjustment(c *gin.Context) {
	var req RecordAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	p, err := h.svc.RecordAdjustment(c.Request.Context(), req.MemberID, req.Amount, req.Note)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to record adjustment"})
		return
	}

	c.JSON(http.StatusCreated, p)
}

// MemberHistory godoc
// @Summary      Payment history for one member
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Param        memberID  path     int  true  "Member ID"
// @Success      200       {array}  PaymentWithPlan
// @Router       /cashier/members/{memberID}/payments [get]
func (h *Handler) MemberHistory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	history, err := h.svc.History(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load payment history"})
		return
	}

	c.JSON(http.StatusOK, history)
}

// ListPayments godoc
// @Summary      List ledger entries
// @Description  Optionally filtered by member and recording date range.
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Param        member_id   query    int     false  "Member ID"
// @Param        start_date  query    string  false  "From date (YYYY-MM-DD)"
// @Param        end_date    query    string  false  "To date (YYYY-MM-DD)"
// @Success      200         {array}  PaymentWithPlan
// @Failure      400         {object} api.ErrorResponse
// @Router       /cashier/payments [get]
func (h *Handler) ListPayments(c *gin.Context) {
	var filter HistoryFilter

	if raw := c.Query("member_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
			return
		}
		filter.MemberID = &id
	}
	if raw := c.Query("start_date"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid start date, expected YYYY-MM-DD"})
			return
		}
		filter.From = &from
	}
	if raw := c.Query("end_date"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid end date, expected YYYY-MM-DD"})
			return
		}
		// end_date is inclusive
		end := to.AddDate(0, 0, 1)
		filter.To = &end
	}

	history, err := h.svc.HistoryFiltered(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load payments"})
		return
	}

	c.JSON(http.StatusOK, history)
}
