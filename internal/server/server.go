package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/gradebench/webapp/internal/config"
	"github.com/gradebench/webapp/internal/middleware"
	"github.com/gradebench/webapp/internal/notification"

	accountRepo "github.com/gradebench/webapp/internal/modules/account/repository"
	accountService "github.com/gradebench/webapp/internal/modules/account/service"

	assignmentHttp "github.com/gradebench/webapp/internal/modules/assignment/delivery/http"
	assignmentRepo "github.com/gradebench/webapp/internal/modules/assignment/repository"
	assignmentService "github.com/gradebench/webapp/internal/modules/assignment/service"

	healthHttp "github.com/gradebench/webapp/internal/modules/health/delivery/http"

	submissionHttp "github.com/gradebench/webapp/internal/modules/submission/delivery/http"
	submissionRepo "github.com/gradebench/webapp/internal/modules/submission/repository"
	submissionService "github.com/gradebench/webapp/internal/modules/submission/service"
)

type Server struct {
	engine *gin.Engine
	db     *gorm.DB
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	// Assignment payloads accept exactly the recognized fields; anything
	// else is a 400 at bind time.
	binding.EnableDecoderDisallowUnknownFields = true

	accounts := accountRepo.NewAccountRepository(db)
	accountSvc := accountService.NewAccountService(accounts)

	var publisher notification.Publisher = notification.NoopPublisher{}
	if redisClient != nil {
		publisher = notification.NewRedisPublisher(redisClient, cfg.NotificationKey, cfg.NotificationTimeout)
	}

	assignments := assignmentRepo.NewAssignmentRepository(db)
	submissions := submissionRepo.NewSubmissionRepository(db)

	assignmentSvc := assignmentService.NewAssignmentService(assignments, submissions)
	assignmentHandler := assignmentHttp.NewAssignmentHandler(assignmentSvc)

	submissionSvc := submissionService.NewSubmissionService(submissions, assignments, publisher)
	submissionHandler := submissionHttp.NewSubmissionHandler(submissionSvc)

	healthHandler := healthHttp.NewHealthHandler(healthHttp.GormPinger{DB: db})

	router := gin.New()
	router.HandleMethodNotAllowed = true

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", middleware.RejectBody(), middleware.RejectQuery(), healthHandler.Check)

	authMiddleware := middleware.NewAuthMiddleware(accountSvc)

	v1 := router.Group("/v1")
	v1.Use(authMiddleware.RequireAuth())
	{
		v1.GET("/assignments", middleware.RejectBody(), middleware.RejectQuery(), assignmentHandler.GetAllAssignments)
		v1.POST("/assignments", assignmentHandler.CreateAssignment)
		v1.GET("/assignments/:id", middleware.RejectBody(), middleware.RejectQuery(), assignmentHandler.GetAssignmentByID)
		v1.PUT("/assignments/:id", assignmentHandler.UpdateAssignment)
		v1.DELETE("/assignments/:id", middleware.RejectBody(), assignmentHandler.DeleteAssignment)

		v1.POST("/assignments/:id/submissions", submissionHandler.SubmitAssignment)
	}

	return &Server{
		engine: router,
		db:     db,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the context is cancelled, then drains in-flight
// requests before returning.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
