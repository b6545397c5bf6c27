package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	auditservice "github.com/zerorisk/claimledger/internal/audit/service"
	authdomain "github.com/zerorisk/claimledger/internal/auth/domain"
	billdomain "github.com/zerorisk/claimledger/internal/bill/domain"
	"github.com/zerorisk/claimledger/internal/config"
	contactdomain "github.com/zerorisk/claimledger/internal/contact/domain"
	followupdomain "github.com/zerorisk/claimledger/internal/followup/domain"
	obslogger "github.com/zerorisk/claimledger/internal/observability/logger"
	"github.com/zerorisk/claimledger/internal/observability/metrics"
	"github.com/zerorisk/claimledger/internal/observability/tracing"
	recoverydomain "github.com/zerorisk/claimledger/internal/recovery/domain"
	templatedomain "github.com/zerorisk/claimledger/internal/template/domain"
)

type Param struct {
	fx.In

	Config config.Config
	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node

	RecoverySvc recoverydomain.Service `optional:"true"`
	BillSvc     billdomain.Service     `optional:"true"`
	ContactSvc  contactdomain.Service  `optional:"true"`
	TemplateSvc templatedomain.Service `optional:"true"`
	FollowUpSvc followupdomain.Service `optional:"true"`
	AuditSvc    *auditservice.Service  `optional:"true"`
}

// Server holds the HTTP handler dependencies. Services are optional so a
// partially wired app still serves its healthy subset.
type Server struct {
	cfg     config.Config
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	limiter *rateLimiter

	recoverySvc recoverydomain.Service
	billSvc     billdomain.Service
	contactSvc  contactdomain.Service
	templateSvc templatedomain.Service
	followUpSvc followupdomain.Service
	auditSvc    *auditservice.Service
}

func NewServer(p Param) *Server {
	return &Server{
		cfg:     p.Config,
		db:      p.DB,
		log:     p.Log.Named("server"),
		genID:   p.GenID,
		limiter: newRateLimiter(p.Config.RateLimitPerMinute, time.Minute),

		recoverySvc: p.RecoverySvc,
		billSvc:     p.BillSvc,
		contactSvc:  p.ContactSvc,
		templateSvc: p.TemplateSvc,
		followUpSvc: p.FollowUpSvc,
		auditSvc:    p.AuditSvc,
	}
}

var Module = fx.Module("server",
	fx.Provide(NewServer),
	fx.Provide(NewEngine),
	fx.Invoke(RegisterAPIRoutes),
	fx.Invoke(RunHTTP),
)

// NewEngine builds the gin engine with the ambient middleware chain.
func NewEngine(cfg config.Config, log *zap.Logger, httpMetrics *metrics.HTTPMetrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("panic recovered",
			zap.Any("recovered", recovered),
			zap.Any("request", obslogger.SafeFieldsFromRequest(c.Request)))
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	engine.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Logger:    log.Named("http"),
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	engine.Use(tracing.GinMiddleware("claimledger"))
	engine.Use(metrics.GinMiddleware(httpMetrics))
	return engine
}

// RegisterAPIRoutes mounts the API surface.
func RegisterAPIRoutes(engine *gin.Engine, s *Server, registry *prometheus.Registry) {
	engine.GET("/healthz", s.Health)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	engine.POST("/api/auth/login", s.Login)

	api := engine.Group("/api", s.RateLimit(), s.SessionRequired())
	{
		api.GET("/bills", s.ListBills)
		api.POST("/bills", s.CreateBill)
		api.POST("/bills/import", s.ImportBills)
		api.PATCH("/bills/:id", s.UpdateBill)

		api.GET("/recovery/payers", s.GetPayerSummaries)
		api.GET("/recovery/summary", s.GetRecoverySummary)

		api.GET("/contacts", s.ListContacts)
		api.POST("/contacts", s.CreateContact)
		api.PUT("/contacts/:id", s.UpdateContact)
		api.DELETE("/contacts/:id", s.DeleteContact)

		api.GET("/templates", s.ListTemplates)
		api.POST("/templates", s.CreateTemplate)
		api.POST("/templates/:id/render", s.RenderTemplate)
		api.DELETE("/templates/:id", s.DeleteTemplate)

		api.GET("/followups", s.ListFollowUps)
		api.POST("/followups/:id/close", s.CloseFollowUp)

		admin := api.Group("", s.RoleRequired(authdomain.RoleHospitalAdmin, authdomain.RoleSuperAdmin))
		{
			admin.GET("/audit", s.ListAuditLogs)
		}
	}

	if !s.cfg.IsProduction() {
		engine.POST("/api/test/cleanup", s.TestCleanup)
	}
}

// RunHTTP starts the HTTP listener under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

// RateLimit applies a fixed window per client IP.
func (s *Server) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.limiter == nil || s.limiter.Allow(c.ClientIP()) {
			c.Next()
			return
		}
		AbortWithError(c, ErrTooManyRequests)
	}
}

// Health reports process liveness and database reachability.
func (s *Server) Health(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
