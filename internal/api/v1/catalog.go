package v1

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"towerweight/internal/catalog"
	"towerweight/internal/model"
)

// btbOptionView BTB 选项
type btbOptionView struct {
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
}

// weightOptionView BE/腿代码选项；Weight 为数值或按腿类别区分的映射
type weightOptionView struct {
	Code   string `json:"code"`
	Weight any    `json:"weight"`
}

// towerCatalogView 单个塔型的重量表
type towerCatalogView struct {
	TowerType      string             `json:"towerType"`
	Slug           string             `json:"slug"`
	BtbOptions     []btbOptionView    `json:"btbOptions"`
	BodyExtensions []weightOptionView `json:"bodyExtensions"`
	LegExtensions  []weightOptionView `json:"legExtensions"`
}

func newTowerCatalogView(e *catalog.Entry) towerCatalogView {
	v := towerCatalogView{
		TowerType: string(e.Tower()),
		Slug:      e.Tower().Slug(),
	}
	for _, label := range e.BtbLabels() {
		w, _ := e.Btb(label)
		v.BtbOptions = append(v.BtbOptions, btbOptionView{Label: string(label), Weight: w})
	}
	for _, code := range e.BeCodes() {
		be, _ := e.Be(code)
		var w any = be.Flat()
		if be.IsConditional() {
			branches := make(map[string]float64, 2)
			for cat, bw := range be.Branches() {
				branches[string(cat)] = bw
			}
			w = branches
		}
		v.BodyExtensions = append(v.BodyExtensions, weightOptionView{Code: string(code), Weight: w})
	}
	for _, code := range e.LegCodes() {
		w, _ := e.Leg(code)
		v.LegExtensions = append(v.LegExtensions, weightOptionView{Code: string(code), Weight: w})
	}
	return v
}

// GetCatalog 获取全部塔型的重量表
// GET /api/catalog
func (h *Handler) GetCatalog(c *gin.Context) {
	cat := h.engine.Catalog()
	items := make([]towerCatalogView, 0, len(model.AllTowerTypes))
	for _, t := range cat.Towers() {
		e, err := cat.Lookup(t)
		if err != nil {
			respondError(c, err)
			return
		}
		items = append(items, newTowerCatalogView(e))
	}
	c.JSON(http.StatusOK, gin.H{"towers": items})
}

// GetTowerCatalog 获取单个塔型的重量表
// GET /api/catalog/:tower （HA5/DE5 使用 HA5-DE5）
func (h *Handler) GetTowerCatalog(c *gin.Context) {
	raw := c.Param("tower")
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}
	tower, ok := model.ParseTowerType(raw)
	if !ok {
		tower = model.TowerType(raw)
	}
	e, err := h.engine.Catalog().Lookup(tower)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTowerCatalogView(e))
}
