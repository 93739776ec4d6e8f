package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/cache"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/config"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/database"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/llm"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/metrics"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/middleware"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/modules/auth"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/modules/clients"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/modules/dashboard"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/modules/goals"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/modules/notifications"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/modules/payments"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/modules/submissions"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/modules/summary"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/modules/visits"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/pkg/jwt"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/pkg/logging"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/pkg/response"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/realtime"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/repository"
)

const refreshInterval = 5 * time.Minute

// collections adapts the entity services to the dashboard's read interface.
type collections struct {
	clients  *clients.Service
	payments *payments.Service
	goals    *goals.Service
	visits   *visits.Service
}

func (c collections) Clients() []domain.Client       { return c.clients.List() }
func (c collections) Payments() []domain.Payment     { return c.payments.List() }
func (c collections) Goals() []domain.Goal           { return c.goals.List() }
func (c collections) Visits() []domain.BusinessVisit { return c.visits.List() }

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.NewLogger("info").Error("configuration is invalid", "err", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error("could not connect to database", "err", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("could not run migrations", "err", err)
		os.Exit(1)
	}

	m := metrics.Registry("aichatflows")
	bus := realtime.NewBus()
	hub := realtime.NewHub(bus)
	tokens := jwt.New(cfg.JWTSecret, cfg.JWTTTL)

	var deduper notifications.Deduper
	if cfg.RedisAddr != "" {
		rc := cache.New(cache.Config{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}, logger)
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rc.Ping(pingCtx); err != nil {
			logger.Warn("redis unavailable, notification dedup falls back to the database", "err", err)
		} else {
			deduper = rc
		}
		cancel()
	}

	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	goalRepo := repository.NewGoalRepository(db, logger, m)
	visitRepo := repository.NewVisitRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	dispatcher := notifications.NewDispatcher(notificationRepo, userRepo, deduper, bus, logger, m)

	clientsSvc := clients.NewService(clientRepo, bus, dispatcher, logger, m)
	paymentsSvc := payments.NewService(paymentRepo, bus, clientsSvc, dispatcher, logger, m)
	goalsSvc := goals.NewService(goalRepo, bus, clientsSvc, dispatcher, logger, m)
	visitsSvc := visits.NewService(visitRepo, bus, clientsSvc, dispatcher, logger, m)
	submissionsSvc := submissions.NewService(submissionRepo, bus, clientsSvc, dispatcher, logger, m)
	notificationsSvc := notifications.NewService(notificationRepo, logger)

	dashboardSvc := dashboard.NewService(collections{
		clients:  clientsSvc,
		payments: paymentsSvc,
		goals:    goalsSvc,
		visits:   visitsSvc,
	}, goalsSvc, bus, logger)

	keyReport := config.DiagnoseOpenAIKey(cfg.OpenAIKey)
	var summarizer llm.Summarizer
	if keyReport.Valid {
		summarizer = llm.NewOpenAI(cfg.OpenAIKey, cfg.OpenAIModel, m)
	} else {
		logger.Warn("summary endpoint disabled", "problems", strings.Join(keyReport.Problems, "; "))
	}
	summarySvc := summary.NewService(summarizer, dashboardSvc, keyReport, logger)

	authSvc := auth.NewService(userRepo, tokens, logger)

	// Warm the caches, then keep them fresh on an interval. Failures here are
	// background failures: recorded, retried on the next tick.
	ctx := context.Background()
	warm := func(refresh func(context.Context, bool) error) {
		go func() {
			_ = refresh(ctx, false)
		}()
	}
	warm(clientsSvc.Refresh)
	warm(paymentsSvc.Refresh)
	warm(goalsSvc.Refresh)
	warm(visitsSvc.Refresh)
	warm(submissionsSvc.Refresh)

	clientsSvc.Store().StartRefreshLoop(ctx, refreshInterval)
	paymentsSvc.Store().StartRefreshLoop(ctx, refreshInterval)
	goalsSvc.Store().StartRefreshLoop(ctx, refreshInterval)
	visitsSvc.Store().StartRefreshLoop(ctx, refreshInterval)
	submissionsSvc.Store().StartRefreshLoop(ctx, refreshInterval)

	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := auth.NewHandler(authSvc)

	api := router.Group("/api/v1")
	authHandler.RegisterPublicRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.Auth(tokens))
	authHandler.RegisterProtectedRoutes(protected)
	clients.NewHandler(clientsSvc).RegisterRoutes(protected)
	payments.NewHandler(paymentsSvc).RegisterRoutes(protected)
	goals.NewHandler(goalsSvc).RegisterRoutes(protected)
	visits.NewHandler(visitsSvc).RegisterRoutes(protected)
	submissions.NewHandler(submissionsSvc).RegisterRoutes(protected)
	notifications.NewHandler(notificationsSvc).RegisterRoutes(protected)
	dashboard.NewHandler(dashboardSvc).RegisterRoutes(protected)
	summary.NewHandler(summarySvc).RegisterRoutes(protected)

	// Websocket change feed. Browsers cannot set headers on the handshake, so
	// the token rides the query string.
	router.GET("/ws", func(c *gin.Context) {
		claims, err := tokens.ValidateToken(c.Query("token"))
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or missing token")
			return
		}

		conn, err := realtime.Upgrade(c.Writer, c.Request)
		if err != nil {
			logger.Warn("websocket upgrade failed", "err", err)
			return
		}

		var tables []string
		if raw := c.Query("tables"); raw != "" {
			tables = strings.Split(raw, ",")
		}
		hub.ServeWS(conn, claims.UserID, tables)
	})

	logger.Info("listening", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
