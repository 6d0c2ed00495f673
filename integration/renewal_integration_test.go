package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/ndt123-fs/Code-Gym/internal/member"
	"github.com/ndt123-fs/Code-Gym/internal/payment"
	"github.com/ndt123-fs/Code-Gym/internal/plan"
	"github.com/ndt123-fs/Code-Gym/internal/report"
)

func registerMember(t *testing.T, router *gin.Engine, email string, planID int) *member.RegistrationResult {
	reqBody := map[string]interface{}{
		"full_name":  "Tran Van A",
		"birth_year": 1995,
		"phone":      "0912345678",
		"email":      email,
		"plan_id":    planID,
	}
	bodyBytes, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/members", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	result := &member.RegistrationResult{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), result))
	return result
}

func TestRenewMember_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	conn := setupTestDB(t)
	defer conn.Close()

	cleanDatabase(t, conn)

	p := seedPlan(t, conn, "Goi 1 thang", 1, 500000)

	router := memberRouter(conn)
	result := registerMember(t, router, "renew@example.com", p.ID)

	reqBody := map[string]interface{}{"plan_id": p.ID}
	bodyBytes, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", fmt.Sprintf("/members/%d/renew", result.Member.ID), bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var renewal payment.RenewalResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &renewal))
	require.Equal(t, "Goi 1 thang", renewal.PlanName)
	require.Equal(t, int64(500000), renewal.Payment.Amount)

	// Renewal extends from the current expiry, not from today.
	require.True(t, renewal.SubscriptionEnd.After(result.Member.SubscriptionEnd),
		"renewal should push the expiry past the registration window")

	var count int
	require.NoError(t, conn.Get(&count,
		"SELECT COUNT(*) FROM payments WHERE member_id = $1", result.Member.ID))
	require.Equal(t, 2, count)
}

func TestRenewMember_Deactivated_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	conn := setupTestDB(t)
	defer conn.Close()

	cleanDatabase(t, conn)

	p := seedPlan(t, conn, "Goi 1 thang", 1, 500000)

	router := memberRouter(conn)
	result := registerMember(t, router, "lapsed@example.com", p.ID)

	req, _ := http.NewRequest("POST", fmt.Sprintf("/members/%d/deactivate", result.Member.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	reqBody := map[string]interface{}{"plan_id": p.ID}
	bodyBytes, _ := json.Marshal(reqBody)
	req, _ = http.NewRequest("POST", fmt.Sprintf("/members/%d/renew", result.Member.ID), bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPaymentHistory_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	conn := setupTestDB(t)
	defer conn.Close()

	cleanDatabase(t, conn)

	p := seedPlan(t, conn, "Goi 1 thang", 1, 500000)

	memberRoutes := memberRouter(conn)
	result := registerMember(t, memberRoutes, "history@example.com", p.ID)

	paymentHandler := payment.NewHandler(conn, nil)
	router := gin.New()
	router.POST("/adjustments", paymentHandler.RecordAdjustment)
	router.GET("/payments", paymentHandler.ListPayments)
	router.GET("/payments/member/:memberID", paymentHandler.MemberHistory)

	reqBody := map[string]interface{}{
		"member_id": result.Member.ID,
		"amount":    -50000,
		"note":      "overcharge refund",
	}
	bodyBytes, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/adjustments", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req, _ = http.NewRequest("GET", fmt.Sprintf("/payments/member/%d", result.Member.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var history []payment.Payment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Len(t, history, 2)
	require.Equal(t, payment.KindPlanPayment, history[0].Kind)
	require.Equal(t, payment.KindAdjustment, history[1].Kind)
	require.Equal(t, int64(-50000), history[1].Amount)

	// Date filters bound the ledger listing.
	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	req, _ = http.NewRequest("GET", "/payments?member_id="+fmt.Sprint(result.Member.ID)+"&start_date="+tomorrow, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var filtered []payment.Payment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &filtered))
	require.Empty(t, filtered)
}

func TestRenewMember_Concurrent_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	conn := setupTestDB(t)
	defer conn.Close()

	cleanDatabase(t, conn)

	p := seedPlan(t, conn, "Goi 1 thang", 1, 500000)

	router := memberRouter(conn)
	result := registerMember(t, router, "race@example.com", p.ID)

	// Two cashiers submit the same renewal at once. The member row lock
	// serializes them, so both payments land and both extensions stack.
	var wg sync.WaitGroup
	codes := make([]int, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			reqBody := map[string]interface{}{"plan_id": p.ID}
			bodyBytes, _ := json.Marshal(reqBody)
			req, _ := http.NewRequest("POST", fmt.Sprintf("/members/%d/renew", result.Member.ID), bytes.NewBuffer(bodyBytes))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			codes[slot] = w.Code
		}(i)
	}
	wg.Wait()

	require.Equal(t, http.StatusCreated, codes[0])
	require.Equal(t, http.StatusCreated, codes[1])

	var count int
	require.NoError(t, conn.Get(&count,
		"SELECT COUNT(*) FROM payments WHERE member_id = $1 AND kind = 'plan_payment'", result.Member.ID))
	require.Equal(t, 3, count, "registration plus exactly two renewal payments")

	var end time.Time
	require.NoError(t, conn.Get(&end,
		"SELECT subscription_end FROM members WHERE id = $1", result.Member.ID))
	expected := plan.AddMonths(plan.AddMonths(result.Member.SubscriptionEnd, 1), 1)
	require.True(t, end.Equal(expected),
		"expiry should reflect both renewals, got %s want %s", end, expected)

	// Active membership only shrinks as time moves forward with no further
	// renewals: the count on the final expiry day is at least the count after it.
	reports := report.NewHandler(conn)
	reportRouter := gin.New()
	reportRouter.GET("/reports/active-members", reports.ActiveMembers)

	onExpiry := activeCountAsOf(t, reportRouter, end.Format("2006-01-02"))
	afterExpiry := activeCountAsOf(t, reportRouter, end.AddDate(0, 0, 1).Format("2006-01-02"))
	require.GreaterOrEqual(t, onExpiry, afterExpiry)
	require.Equal(t, 0, afterExpiry)
}

func activeCountAsOf(t *testing.T, router *gin.Engine, asOf string) int {
	t.Helper()
	req, _ := http.NewRequest("GET", "/reports/active-members?as_of="+asOf, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var active report.ActiveCount
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &active))
	return active.Count
}
