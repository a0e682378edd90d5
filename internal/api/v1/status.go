package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Ready          bool     `json:"ready"`          // 重量目录已加载
	TowerTypes     []string `json:"towerTypes"`     // 可选塔型
	ActiveSessions int      `json:"activeSessions"` // 活跃会话数
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{
		ActiveSessions: h.sessions.Count(),
	}
	if h.engine != nil && h.engine.Catalog() != nil {
		for _, t := range h.engine.Catalog().Towers() {
			resp.TowerTypes = append(resp.TowerTypes, string(t))
		}
		resp.Ready = len(resp.TowerTypes) > 0
	}
	c.JSON(http.StatusOK, resp)
}
