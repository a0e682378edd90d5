package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"towerweight/internal/model"
	"towerweight/internal/service/report"
	"towerweight/internal/service/store"
)

// 台账操作提示
const (
	msgRemovedLast = "Last calculation removed."
	msgNothingToRm = "No calculations to remove."
	msgRemovedAll  = "All calculations removed."
)

// CalculateRequest 计算请求；未填写的 BE 默认 E0，腿默认 +0M
type CalculateRequest struct {
	TowerType     string   `json:"towerType"`
	BodyExtension string   `json:"bodyExtension"`
	Legs          []string `json:"legs"`
}

// toSelection 请求转为计算输入
func (r CalculateRequest) toSelection() (model.Selection, error) {
	return model.ParseSelection(r.TowerType, r.BodyExtension, r.Legs)
}

// resultsResponse 台账结果表
type resultsResponse struct {
	SessionID string        `json:"sessionId"`
	Table     *report.Table `json:"table"`
}

func newResultsResponse(id string, ledger *store.Ledger) resultsResponse {
	return resultsResponse{
		SessionID: id,
		Table:     report.Build(ledger.Entries(), ledger.GrandTotal()),
	}
}

// Resolve 无状态计算，不写入台账
// POST /api/resolve
func (h *Handler) Resolve(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}
	sel, err := req.toSelection()
	if err != nil {
		respondError(c, err)
		return
	}
	res, err := h.engine.Resolve(sel)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"result": res,
		"row":    report.NewRow(res),
	})
}

// CreateSession 新建会话
// POST /api/sessions
func (h *Handler) CreateSession(c *gin.Context) {
	c.JSON(http.StatusCreated, h.sessions.Create())
}

// GetSession 会话概要
// GET /api/sessions/:id
func (h *Handler) GetSession(c *gin.Context) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// DeleteSession 结束会话并丢弃台账
// DELETE /api/sessions/:id
func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListResults 结果表与总重（吨）
// GET /api/sessions/:id/results
func (h *Handler) ListResults(c *gin.Context) {
	id := c.Param("id")
	ledger, err := h.sessions.Ledger(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newResultsResponse(id, ledger))
}

// Calculate 计算并追加到台账
// POST /api/sessions/:id/calculate
func (h *Handler) Calculate(c *gin.Context) {
	id := c.Param("id")
	ledger, err := h.sessions.Ledger(id)
	if err != nil {
		respondError(c, err)
		return
	}

	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}
	sel, err := req.toSelection()
	if err != nil {
		respondError(c, err)
		return
	}
	res, err := h.engine.Resolve(sel)
	if err != nil {
		// 非法选择不写入台账
		respondError(c, err)
		return
	}
	res = ledger.Append(res)

	resp := newResultsResponse(id, ledger)
	c.JSON(http.StatusOK, gin.H{
		"result":    res,
		"sessionId": resp.SessionID,
		"table":     resp.Table,
	})
}

// RemoveLast 删除最后一条计算；台账为空时返回提示而非错误
// DELETE /api/sessions/:id/results/last
func (h *Handler) RemoveLast(c *gin.Context) {
	id := c.Param("id")
	ledger, err := h.sessions.Ledger(id)
	if err != nil {
		respondError(c, err)
		return
	}

	removed, err := ledger.RemoveLast()
	table := report.Build(ledger.Entries(), ledger.GrandTotal())
	if errors.Is(err, store.ErrEmptyLedger) {
		c.JSON(http.StatusOK, gin.H{
			"removed": false,
			"warning": msgNothingToRm,
			"table":   table,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"removed": true,
		"message": msgRemovedLast,
		"result":  removed,
		"table":   table,
	})
}

// RemoveAll 清空台账
// DELETE /api/sessions/:id/results
func (h *Handler) RemoveAll(c *gin.Context) {
	id := c.Param("id")
	ledger, err := h.sessions.Ledger(id)
	if err != nil {
		respondError(c, err)
		return
	}
	n := ledger.RemoveAll()
	c.JSON(http.StatusOK, gin.H{
		"message":      msgRemovedAll,
		"removedCount": n,
		"table":        report.Build(nil, ledger.GrandTotal()),
	})
}
