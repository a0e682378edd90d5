package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"towerweight/internal/model"
	"towerweight/internal/service/calculator"
	"towerweight/internal/service/excel"
	"towerweight/internal/service/session"
)

// Options 处理器依赖
type Options struct {
	Engine   *calculator.Engine
	Sessions *session.Manager

	// ExportDir 流式导出临时文件目录，为空时使用系统临时目录
	ExportDir   string
	FileName    string
	SheetName   string
	DownloadTTL time.Duration
}

// Handler V1 API 处理器
type Handler struct {
	engine    *calculator.Engine
	sessions  *session.Manager
	exporter  *excel.Exporter
	downloads *exportDownloadStore

	exportDir   string
	fileName    string
	sheetName   string
	downloadTTL time.Duration
}

// NewHandler 创建 V1 API 处理器
func NewHandler(opts Options) *Handler {
	h := &Handler{
		engine:      opts.Engine,
		sessions:    opts.Sessions,
		exporter:    excel.NewExporter(),
		downloads:   newExportDownloadStore(),
		exportDir:   opts.ExportDir,
		fileName:    opts.FileName,
		sheetName:   opts.SheetName,
		downloadTTL: opts.DownloadTTL,
	}
	if h.fileName == "" {
		h.fileName = excel.DefaultFileName
	}
	if h.downloadTTL <= 0 {
		h.downloadTTL = 10 * time.Minute
	}
	return h
}

// RegisterRoutes 注册 V1 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 重量目录
	router.GET("/catalog", h.GetCatalog)
	router.GET("/catalog/:tower", h.GetTowerCatalog)

	// 无状态计算
	router.POST("/resolve", h.Resolve)

	// 会话
	router.POST("/sessions", h.CreateSession)
	router.GET("/sessions/:id", h.GetSession)
	router.DELETE("/sessions/:id", h.DeleteSession)

	// 计算台账
	router.GET("/sessions/:id/results", h.ListResults)
	router.POST("/sessions/:id/calculate", h.Calculate)
	router.DELETE("/sessions/:id/results/last", h.RemoveLast)
	router.DELETE("/sessions/:id/results", h.RemoveAll)

	// 数据导出
	router.POST("/sessions/:id/export", h.Export)
	router.POST("/sessions/:id/export/stream", h.ExportStream)
	router.GET("/export/download/:token", h.DownloadExport)
}

// respondError 将领域错误映射为 HTTP 状态码
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidSelection):
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的选择", "detail": err.Error()})
	case errors.Is(err, session.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "会话不存在或已过期"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
