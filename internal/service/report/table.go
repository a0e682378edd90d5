package report

import (
	"strconv"

	"towerweight/internal/model"
	"towerweight/internal/util"
)

// Columns 结果表列（展示与导出顺序一致）
var Columns = []string{
	"SNO", "Tower Type", "Body Extension", "Leg Extensions",
	"Leg A", "Leg B", "Leg C", "Leg D",
	"BTB Weight", "BE Weight", "BB+BE Weight", "ALL Legs", "Total Weight",
}

// TotalColumn 合计列下标
const TotalColumn = 12

// GrandTotalLabel 合计行标签
const GrandTotalLabel = "Grand_Total (Ton)"

// Row 展示行
type Row struct {
	SNO           int       `json:"sno"`
	TowerType     string    `json:"towerType"`
	BodyExtension string    `json:"bodyExtension"`
	LegExtensions string    `json:"legExtensions"`
	Legs          [4]string `json:"legs"`
	BtbWeight     string    `json:"btbWeight"`
	BeWeight      string    `json:"beWeight"`
	BtbBeWeight   string    `json:"btbBeWeight"`
	AllLegs       string    `json:"allLegs"`
	TotalWeight   string    `json:"totalWeight"`
	Total         float64   `json:"total"`
}

// Cells 按列顺序返回单元格文本
func (r Row) Cells() []string {
	return []string{
		strconv.Itoa(r.SNO), r.TowerType, r.BodyExtension, r.LegExtensions,
		r.Legs[0], r.Legs[1], r.Legs[2], r.Legs[3],
		r.BtbWeight, r.BeWeight, r.BtbBeWeight, r.AllLegs, r.TotalWeight,
	}
}

// Table 结果表
type Table struct {
	Columns        []string `json:"columns"`
	Rows           []Row    `json:"rows"`
	GrandTotal     float64  `json:"grandTotal"`
	GrandTotalText string   `json:"grandTotalText"`
}

// NewRow 格式化单条结果
func NewRow(r model.ResolvedResult) Row {
	row := Row{
		SNO:           r.SNO,
		TowerType:     string(r.Tower),
		BodyExtension: string(r.BodyExtension),
		LegExtensions: r.LegExtensions(),
		BtbWeight:     util.FormatWeight(r.BtbWeight),
		BeWeight:      util.FormatWeight(r.BeWeight),
		BtbBeWeight:   util.FormatWeight(r.BtbBeWeight),
		AllLegs:       util.FormatWeight(r.LegSum),
		TotalWeight:   util.FormatWeight(r.Total),
		Total:         r.Total,
	}
	for i, w := range r.LegWeights {
		row.Legs[i] = util.FormatWeight(w)
	}
	return row
}

// Build 由台账条目生成结果表；grandTotal 单位为吨
func Build(entries []model.ResolvedResult, grandTotal float64) *Table {
	t := &Table{
		Columns:        Columns,
		Rows:           make([]Row, 0, len(entries)),
		GrandTotal:     grandTotal,
		GrandTotalText: util.FormatWeight(grandTotal),
	}
	for _, e := range entries {
		t.Rows = append(t.Rows, NewRow(e))
	}
	return t
}

// GrandTotalLine 合计行文本
func (t *Table) GrandTotalLine() string {
	return GrandTotalLabel + ": " + t.GrandTotalText
}
