package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/wardworks/roster/internal/config"
	memberdomain "github.com/wardworks/roster/internal/member/domain"
	"github.com/wardworks/roster/internal/observability"
	obsmiddleware "github.com/wardworks/roster/internal/observability/logger"
	obsmetrics "github.com/wardworks/roster/internal/observability/metrics"
	obstracing "github.com/wardworks/roster/internal/observability/tracing"
	roledomain "github.com/wardworks/roster/internal/role/domain"
	scheduledomain "github.com/wardworks/roster/internal/schedule/domain"
	unavailabilitydomain "github.com/wardworks/roster/internal/unavailability/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.RequestTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.ShutdownTimeout)*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine            *gin.Engine
	cfg               config.Config
	memberSvc         memberdomain.Service
	roleSvc           roledomain.Service
	scheduleSvc       scheduledomain.Service
	unavailabilitySvc unavailabilitydomain.Service
}

type ServerParams struct {
	fx.In

	Gin               *gin.Engine
	Cfg               config.Config
	MemberSvc         memberdomain.Service
	RoleSvc           roledomain.Service
	ScheduleSvc       scheduledomain.Service
	UnavailabilitySvc unavailabilitydomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:            p.Gin,
		cfg:               p.Cfg,
		memberSvc:         p.MemberSvc,
		roleSvc:           p.RoleSvc,
		scheduleSvc:       p.ScheduleSvc,
		unavailabilitySvc: p.UnavailabilitySvc,
	}

	svc.registerAPIRoutes()

	return svc
}

// Engine exposes the router for in-process test servers.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")

	api.GET("/members", s.ListMembers)
	api.POST("/members", s.CreateMember)
	api.PUT("/members/:id", s.UpdateMember)
	api.DELETE("/members/:id", s.DeleteMember)

	api.GET("/roles", s.ListRoles)
	api.PUT("/roles", s.ReplaceRoles)

	api.GET("/schedule", s.GetSchedule)
	api.GET("/schedule/candidates", s.GetCandidates)
	api.POST("/schedule/assignments", s.Assign)
	api.DELETE("/schedule/assignments", s.Unassign)

	api.GET("/unavailability", s.GetUnavailability)
	api.POST("/unavailability", s.SetUnavailability)
}
