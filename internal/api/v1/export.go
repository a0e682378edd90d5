package v1

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"

	"towerweight/internal/service/excel"
	"towerweight/internal/service/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type exportProgressEvent struct {
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// buildExportContentDisposition 附件头，同时给出 ASCII 文件名与 RFC 5987 编码名
func buildExportContentDisposition(fileName string) string {
	ascii := strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			return '_'
		}
		return r
	}, fileName)
	return fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s", ascii, url.PathEscape(fileName))
}

// sessionTable 读取会话台账生成结果表
func (h *Handler) sessionTable(id string) (*report.Table, error) {
	ledger, err := h.sessions.Ledger(id)
	if err != nil {
		return nil, err
	}
	return report.Build(ledger.Entries(), ledger.GrandTotal()), nil
}

// Export 直接下载 Excel
// POST /api/sessions/:id/export
func (h *Handler) Export(c *gin.Context) {
	table, err := h.sessionTable(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	file, err := h.exporter.Export(table, excel.ExportOptions{SheetName: h.sheetName})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "导出失败: " + err.Error()})
		return
	}
	defer file.Close()

	// 设置响应头
	c.Header("Content-Disposition", buildExportContentDisposition(h.fileName))
	c.Header("Content-Type", xlsxContentType)

	if err := file.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "写入文件失败"})
		return
	}
}

// ExportStream 导出 Excel（SSE 进度 + 完成后提供下载地址）
// POST /api/sessions/:id/export/stream
func (h *Handler) ExportStream(c *gin.Context) {
	table, err := h.sessionTable(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "不支持流式响应"})
		return
	}

	send := func(event exportProgressEvent) {
		event.Timestamp = time.Now()
		if event.Data == nil {
			event.Data = map[string]any{}
		}
		b, err := json.Marshal(event)
		if err != nil {
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", b)
		flusher.Flush()
	}

	send(exportProgressEvent{
		Type:    "start",
		Message: "开始导出",
		Data:    map[string]any{"rows": len(table.Rows)},
	})

	lastPercent := -1
	file, err := h.exporter.Export(table, excel.ExportOptions{
		SheetName: h.sheetName,
		Progress: func(p excel.ProgressEvent) {
			if p.Percent == lastPercent {
				return
			}
			lastPercent = p.Percent
			send(exportProgressEvent{
				Type:    "progress",
				Message: p.Stage,
				Data:    map[string]any{"percent": p.Percent},
			})
		},
	})
	if err != nil {
		send(exportProgressEvent{Type: "error", Message: "导出失败: " + err.Error()})
		return
	}
	defer file.Close()

	dir := h.exportDir
	if dir == "" {
		dir = os.TempDir()
	}
	tempPath := filepath.Join(dir, fmt.Sprintf("towerweight_export_%d_%d.xlsx", time.Now().UnixNano(), os.Getpid()))
	if err := file.SaveAs(tempPath); err != nil {
		send(exportProgressEvent{Type: "error", Message: "写入导出文件失败: " + err.Error()})
		removeQuietly(tempPath)
		return
	}

	token := h.downloads.put(tempPath, h.fileName, h.downloadTTL)
	prefix := "/api"
	if strings.HasPrefix(c.Request.URL.Path, "/api/v1/") {
		prefix = "/api/v1"
	}

	send(exportProgressEvent{
		Type:    "done",
		Message: "导出完成",
		Data: map[string]any{
			"percent":     100,
			"downloadUrl": fmt.Sprintf("%s/export/download/%s", prefix, token),
		},
	})
}

// DownloadExport 下载导出的 Excel 文件（一次性）
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 token"})
		return
	}

	item, ok := h.downloads.take(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接已失效"})
		return
	}
	defer removeQuietly(item.filePath)

	if _, err := os.Stat(item.filePath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "导出文件不存在"})
		return
	}

	c.Header("Content-Disposition", buildExportContentDisposition(item.fileName))
	c.Header("Content-Type", xlsxContentType)
	c.File(item.filePath)
}

func removeQuietly(path string) {
	if path != "" {
		_ = os.Remove(path)
	}
}
