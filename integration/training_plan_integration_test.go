package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/ndt123-fs/Code-Gym/internal/auth"
	"github.com/ndt123-fs/Code-Gym/internal/exercise"
	"github.com/ndt123-fs/Code-Gym/internal/schedule"
	"github.com/ndt123-fs/Code-Gym/internal/settings"
	"github.com/ndt123-fs/Code-Gym/internal/user"
)

func seedTrainer(t *testing.T, conn *sqlx.DB) *user.User {
	hash, err := auth.HashPassword("trainer-pass")
	require.NoError(t, err)

	u, err := user.NewRepository(conn).Create(context.Background(),
		"Coach Binh", "coach@example.com", hash, auth.RoleTrainer)
	require.NoError(t, err)
	return u
}

func seedExercise(t *testing.T, conn *sqlx.DB, name, bodyPart string) *exercise.Exercise {
	ex, err := exercise.NewRepository(conn).Create(context.Background(), name, bodyPart, "")
	require.NoError(t, err)
	return ex
}

func trainingPlanRouter(conn *sqlx.DB, trainerID int) *gin.Engine {
	dayCap := settings.NewService(settings.NewRepository(conn))
	handler := schedule.NewHandler(conn, dayCap)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", trainerID)
	})
	router.POST("/training-plans", handler.CreatePlan)
	router.GET("/training-plans/:planID", handler.GetPlan)
	router.GET("/members/:memberID/training-plans", handler.ListMemberPlans)
	router.PUT("/training-plans/:planID", handler.UpdatePlan)
	router.DELETE("/training-plans/:planID/items/:itemID", handler.DeleteItem)
	return router
}

func TestCreateTrainingPlan_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	conn := setupTestDB(t)
	defer conn.Close()

	cleanDatabase(t, conn)

	p := seedPlan(t, conn, "Goi 3 thang", 3, 1300000)
	m := registerMember(t, memberRouter(conn), "lifter@example.com", p.ID)
	trainer := seedTrainer(t, conn)
	squat := seedExercise(t, conn, "Squat", "legs")
	bench := seedExercise(t, conn, "Bench Press", "chest")

	router := trainingPlanRouter(conn, trainer.ID)

	reqBody := map[string]interface{}{
		"member_id": m.Member.ID,
		"notes":     "strength block",
		"items": []map[string]interface{}{
			{"exercise_id": squat.ID, "sets": 5, "reps": 5, "weekdays": []string{"wed", "mon"}},
			{"exercise_id": bench.ID, "sets": 3, "reps": 8, "weekdays": []string{"fri"}},
		},
	}
	bodyBytes, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/training-plans", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var plan schedule.TrainingPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))
	require.Equal(t, trainer.ID, plan.TrainerID)
	require.Equal(t, schedule.StatusActive, plan.Status)
	require.Len(t, plan.Items, 2)
	require.Equal(t, "mon,wed", plan.Items[0].Weekdays)
	require.NotNil(t, plan.Items[0].ExerciseName)
	require.Equal(t, "Squat", *plan.Items[0].ExerciseName)
}

func TestCreateTrainingPlan_ArchivesPrevious_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	conn := setupTestDB(t)
	defer conn.Close()

	cleanDatabase(t, conn)

	p := seedPlan(t, conn, "Goi 3 thang", 3, 1300000)
	m := registerMember(t, memberRouter(conn), "lifter@example.com", p.ID)
	trainer := seedTrainer(t, conn)
	squat := seedExercise(t, conn, "Squat", "legs")

	router := trainingPlanRouter(conn, trainer.ID)

	reqBody := map[string]interface{}{
		"member_id": m.Member.ID,
		"items": []map[string]interface{}{
			{"exercise_id": squat.ID, "sets": 5, "reps": 5, "weekdays": []string{"mon"}},
		},
	}
	bodyBytes, _ := json.Marshal(reqBody)

	var first schedule.TrainingPlan
	for i := 0; i < 2; i++ {
		req, _ := http.NewRequest("POST", "/training-plans", bytes.NewBuffer(bodyBytes))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		if i == 0 {
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
		}
	}

	req, _ := http.NewRequest("GET", fmt.Sprintf("/training-plans/%d", first.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var archived schedule.TrainingPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &archived))
	require.Equal(t, schedule.StatusArchived, archived.Status)

	req, _ = http.NewRequest("GET", fmt.Sprintf("/members/%d/training-plans", m.Member.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var plans []schedule.TrainingPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plans))
	require.Len(t, plans, 2)
}

func TestCreateTrainingPlan_DayCap_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	conn := setupTestDB(t)
	defer conn.Close()

	cleanDatabase(t, conn)

	p := seedPlan(t, conn, "Goi 3 thang", 3, 1300000)
	m := registerMember(t, memberRouter(conn), "lifter@example.com", p.ID)
	trainer := seedTrainer(t, conn)
	squat := seedExercise(t, conn, "Squat", "legs")

	capSvc := settings.NewService(settings.NewRepository(conn))
	require.NoError(t, capSvc.SetMaxTrainingDays(context.Background(), 2))

	router := trainingPlanRouter(conn, trainer.ID)

	reqBody := map[string]interface{}{
		"member_id": m.Member.ID,
		"items": []map[string]interface{}{
			{"exercise_id": squat.ID, "sets": 5, "reps": 5, "weekdays": []string{"mon", "wed", "fri"}},
		},
	}
	bodyBytes, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/training-plans", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestDeleteLastItem_Blocked_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	conn := setupTestDB(t)
	defer conn.Close()

	cleanDatabase(t, conn)

	p := seedPlan(t, conn, "Goi 3 thang", 3, 1300000)
	m := registerMember(t, memberRouter(conn), "lifter@example.com", p.ID)
	trainer := seedTrainer(t, conn)
	squat := seedExercise(t, conn, "Squat", "legs")

	router := trainingPlanRouter(conn, trainer.ID)

	reqBody := map[string]interface{}{
		"member_id": m.Member.ID,
		"items": []map[string]interface{}{
			{"exercise_id": squat.ID, "sets": 5, "reps": 5, "weekdays": []string{"mon"}},
		},
	}
	bodyBytes, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/training-plans", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var plan schedule.TrainingPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))
	require.Len(t, plan.Items, 1)

	req, _ = http.NewRequest("DELETE",
		fmt.Sprintf("/training-plans/%d/items/%d", plan.ID, plan.Items[0].ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
