package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"imgresize/internal/config"
	"imgresize/internal/handler"
	"imgresize/internal/repository"
	"imgresize/internal/service"
)

type Server struct {
	httpServer *http.Server
	cfg        *config.Config
	log        *zap.Logger
}

func New(cfg *config.Config, log *zap.Logger) (*Server, error) {
	store, err := repository.NewS3Store(&cfg.S3, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 store: %w", err)
	}

	resizeService := service.NewResizeService(store, cfg, log)

	h := handler.New(resizeService, cfg.App.MaxUploadSize, log)

	server := &Server{
		httpServer: &http.Server{
			Addr:           cfg.Server.Host + ":" + cfg.Server.Port,
			Handler:        NewRouter(h),
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   30 * time.Second,
			MaxHeaderBytes: 1 << 20, // 1 MB
		},
		cfg: cfg,
		log: log,
	}

	log.Info("Server created successfully",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port))

	return server, nil
}

// NewRouter wires the route table. Anything outside it, wrong methods on
// known paths included, falls through to the 404 handler.
func NewRouter(h *handler.Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/hello", h.Hello)
	router.GET("/health", h.HealthCheck)
	router.POST("/resize", h.Resize)

	router.NoRoute(h.NotFound)

	return router
}

func (s *Server) Run() error {
	s.log.Info("Server is running",
		zap.String("address", s.httpServer.Addr))

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down server")
	return s.httpServer.Shutdown(ctx)
}
