package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	v1 "towerweight/internal/api/v1"
	"towerweight/internal/config"
	"towerweight/internal/service/calculator"
	"towerweight/internal/service/session"
)

// Server HTTP服务器
type Server struct {
	router   *gin.Engine
	sessions *session.Manager
	v1       *v1.Handler
	httpSrv  *http.Server
}

// NewServer 创建服务器；exportDir 为流式导出临时目录
func NewServer(cfg *config.AppConfig, engine *calculator.Engine, exportDir string) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	sessions := session.NewManager(cfg.IdleTimeout())

	s := &Server{
		router:   gin.Default(),
		sessions: sessions,
		v1: v1.NewHandler(v1.Options{
			Engine:      engine,
			Sessions:    sessions,
			ExportDir:   exportDir,
			FileName:    cfg.Excel.FileName,
			SheetName:   cfg.Excel.SheetName,
			DownloadTTL: cfg.DownloadTTL(),
		}),
	}

	s.setupRoutes(cfg)

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(cfg *config.AppConfig) {
	// CORS
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.Server.CORSOrigins) == 0 || containsWildcard(cfg.Server.CORSOrigins) {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.Server.CORSOrigins
	}
	s.router.Use(cors.New(corsCfg))

	// V1 API 路由，/api 与 /api/v1 等价
	s.v1.RegisterRoutes(s.router.Group("/api"))
	s.v1.RegisterRoutes(s.router.Group("/api/v1"))

	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "接口不存在"})
	})
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

// Handler 路由（用于测试）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 启动服务器，阻塞直到 ctx 结束或监听失败
func (s *Server) Run(ctx context.Context, addr string, sweepInterval time.Duration) error {
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sessions.Run(ctx, sweepInterval)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	}
}
