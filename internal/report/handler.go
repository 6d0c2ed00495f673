package report

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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

// ActiveMembers godoc
// @Summary      Count members with a running subscription
// @Description  Defaults to today; the boundary day still counts as active.
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Param        as_of  query     string  false  "Date (YYYY-MM-DD)"
// @Success      200    {object}  ActiveCount
// @Failure      400    {object}  api.ErrorResponse
// @Router       /admin/reports/active-members [get]
func (h *Handler) ActiveMembers(c *gin.Context) {
	now := time.Now()
	asOf := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid as_of date, expected YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	count, err := h.svc.ActiveMemberCount(c.Request.Context(), asOf)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to count active members"})
		return
	}

	c.JSON(http.StatusOK, count)
}

// MonthlyRevenue godoc
// @Summary      Revenue of one calendar month
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Param        year   query     int  true  "Year"
// @Param        month  query     int  true  "Month (1-12)"
// @Success      200    {object}  MonthRevenue
// @Failure      400    {object}  api.ErrorResponse
// @Router       /admin/reports/revenue [get]
func (h *Handler) MonthlyRevenue(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid month"})
		return
	}

	revenue, err := h.svc.MonthlyRevenue(c.Request.Context(), year, month)
	if err != nil {
		if errors.Is(err, ErrInvalidMonth) || errors.Is(err, ErrInvalidYear) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to compute revenue"})
		return
	}

	c.JSON(http.StatusOK, revenue)
}

// RevenueByMonth godoc
// @Summary      Twelve monthly revenue totals for a year
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Param        year  query     int  true  "Year"
// @Success      200   {object}  YearRevenue
// @Failure      400   {object}  api.ErrorResponse
// @Router       /admin/reports/revenue-by-month [get]
func (h *Handler) RevenueByMonth(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid year"})
		return
	}

	revenue, err := h.svc.RevenueByMonth(c.Request.Context(), year)
	if err != nil {
		if errors.Is(err, ErrInvalidYear) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to compute revenue"})
		return
	}

	c.JSON(http.StatusOK, revenue)
}

// ActiveByPlan godoc
// @Summary      Active member count per current plan
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  PlanCount
// @Router       /admin/reports/active-by-plan [get]
func (h *Handler) ActiveByPlan(c *gin.Context) {
	counts, err := h.svc.ActiveByPlan(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load plan counts"})
		return
	}

	c.JSON(http.StatusOK, counts)
}
