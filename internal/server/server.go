package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/ndt123-fs/Code-Gym/internal/auth"
	"github.com/ndt123-fs/Code-Gym/internal/config"
	"github.com/ndt123-fs/Code-Gym/internal/email"
	"github.com/ndt123-fs/Code-Gym/internal/exercise"
	"github.com/ndt123-fs/Code-Gym/internal/member"
	"github.com/ndt123-fs/Code-Gym/internal/payment"
	"github.com/ndt123-fs/Code-Gym/internal/plan"
	"github.com/ndt123-fs/Code-Gym/internal/report"
	"github.com/ndt123-fs/Code-Gym/internal/schedule"
	"github.com/ndt123-fs/Code-Gym/internal/settings"
	"github.com/ndt123-fs/Code-Gym/internal/user"
)

type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	db         *sqlx.DB
	config     *config.Config
	email      *email.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.Default()
	router.Use(corsMiddleware(), RequestLoggingMiddleware(), MetricsMiddleware())

	userHandler := user.NewHandler(db, cfg.JWTSecret)
	planHandler := plan.NewHandler(db)
	exerciseHandler := exercise.NewHandler(db)
	settingsHandler := settings.NewHandler(db)
	scheduleHandler := schedule.NewHandler(db, settingsHandler.Service())
	paymentHandler := payment.NewHandler(db, emailService)
	renewer := payment.NewService(payment.NewRepository(db), emailService)
	memberHandler := member.NewHandler(db, renewer, emailService)
	reportHandler := report.NewHandler(db)

	// Public endpoints are rate limited per client IP.
	public := router.Group("/")
	public.Use(RateLimitMiddleware(5, 10))
	{
		public.POST("/auth/login", userHandler.Login)
		public.POST("/auth/refresh", userHandler.RefreshToken)
		public.POST("/register", memberHandler.RegisterOnline)
		public.GET("/plans", planHandler.ListActivePlans)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)

	staff := router.Group("/")
	staff.Use(authMiddleware)
	{
		staff.GET("/me", userHandler.GetMe)
		staff.GET("/plans/:planID", planHandler.GetPlan)
		staff.GET("/exercises", exerciseHandler.ListExercises)
		staff.GET("/exercises/:exerciseID", exerciseHandler.GetExercise)
	}

	reception := router.Group("/reception")
	reception.Use(authMiddleware, auth.RequireAnyRole(auth.RoleReception, auth.RoleAdmin))
	{
		reception.POST("/members", memberHandler.Register)
		reception.GET("/members", memberHandler.ListMembers)
		reception.GET("/members/:memberID", memberHandler.GetMember)
		reception.PUT("/members/:memberID/trainer", memberHandler.AssignTrainer)
		reception.POST("/members/:memberID/renew", memberHandler.Renew)
		reception.POST("/members/:memberID/deactivate", memberHandler.DeactivateMember)
	}

	trainer := router.Group("/trainer")
	trainer.Use(authMiddleware, auth.RequireAnyRole(auth.RoleTrainer, auth.RoleAdmin))
	{
		trainer.POST("/training-plans", scheduleHandler.CreatePlan)
		trainer.GET("/training-plans/:planID", scheduleHandler.GetPlan)
		trainer.PUT("/training-plans/:planID", scheduleHandler.UpdatePlan)
		trainer.DELETE("/training-plans/:planID/items/:itemID", scheduleHandler.DeleteItem)
		trainer.GET("/members/:memberID/training-plans", scheduleHandler.ListMemberPlans)
	}

	cashier := router.Group("/cashier")
	cashier.Use(authMiddleware, auth.RequireAnyRole(auth.RoleCashier, auth.RoleAdmin))
	{
		cashier.POST("/payments", paymentHandler.RecordPayment)
		cashier.GET("/payments", paymentHandler.ListPayments)
		cashier.POST("/adjustments", paymentHandler.RecordAdjustment)
		cashier.GET("/members/:memberID/payments", paymentHandler.MemberHistory)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole(auth.RoleAdmin))
	{
		admin.POST("/plans", planHandler.CreatePlan)
		admin.GET("/plans", planHandler.ListAllPlans)
		admin.PUT("/plans/:planID", planHandler.UpdatePlan)
		admin.PATCH("/plans/:planID/price", planHandler.UpdatePrice)
		admin.POST("/plans/:planID/deactivate", planHandler.DeactivatePlan)

		admin.POST("/exercises", exerciseHandler.CreateExercise)
		admin.PUT("/exercises/:exerciseID", exerciseHandler.UpdateExercise)
		admin.DELETE("/exercises/:exerciseID", exerciseHandler.DeleteExercise)

		admin.POST("/users", userHandler.CreateUser)
		admin.GET("/users", userHandler.ListUsers)
		admin.PUT("/users/:userID", userHandler.UpdateUser)
		admin.POST("/users/:userID/toggle-active", userHandler.ToggleUserActive)

		admin.GET("/settings", settingsHandler.ListSettings)
		admin.PUT("/settings/max-training-days", settingsHandler.UpdateMaxTrainingDays)

		admin.GET("/reports/active-members", reportHandler.ActiveMembers)
		admin.GET("/reports/revenue", reportHandler.MonthlyRevenue)
		admin.GET("/reports/revenue-by-month", reportHandler.RevenueByMonth)
		admin.GET("/reports/active-by-plan", reportHandler.ActiveByPlan)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start(port string) error {
	s.httpServer = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
