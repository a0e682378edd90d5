package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"towerweight/internal/service/report"
)

// DefaultFileName 导出文件名
const DefaultFileName = "tower_weight_calculations.xlsx"

// DefaultSheetName 导出工作表名
const DefaultSheetName = "Sheet1"

// ExportOptions 导出选项
type ExportOptions struct {
	SheetName string
	Progress  func(ProgressEvent)
}

// Exporter Excel导出器
type Exporter struct{}

// NewExporter 创建导出器
func NewExporter() *Exporter {
	return &Exporter{}
}

// 各列字体颜色，与结果表展示一致
var columnColors = map[int]string{
	8:  "#008000", // BTB Weight
	9:  "#800080", // BE Weight
	10: "#0000FF", // BB+BE Weight
	11: "#0000FF", // ALL Legs
}

// Export 导出结果表：一行表头 + 每条结果一行，不含索引列
//
// Total Weight 写入数值（保留两位小数显示），其余重量列为展示文本。
func (e *Exporter) Export(table *report.Table, opts ExportOptions) (*excelize.File, error) {
	sheetName := opts.SheetName
	if sheetName == "" {
		sheetName = DefaultSheetName
	}

	f := excelize.NewFile()
	if sheetName != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheetName); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("设置工作表名失败: %w", err)
		}
	}

	reportProgress(opts.Progress, 5, "写入表头")

	// 设置表头
	for i, h := range table.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("写入表头失败: %w", err)
		}
	}

	// 设置表头样式
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	_ = f.SetRowStyle(sheetName, 1, 1, headerStyle)

	centered := &excelize.Alignment{Horizontal: "center"}
	colStyles := make(map[int]int, len(columnColors)+1)
	for col, color := range columnColors {
		id, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: color}, Alignment: centered})
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		colStyles[col] = id
	}
	numFmt := "#,##0.00"
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true, Color: "#FF0000"},
		Alignment:    centered,
		CustomNumFmt: &numFmt,
	})
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	colStyles[report.TotalColumn] = totalStyle

	// 写入数据
	n := len(table.Rows)
	for i, r := range table.Rows {
		row := i + 2
		values := make([]interface{}, 0, len(table.Columns))
		for ci, cell := range r.Cells() {
			switch ci {
			case 0:
				values = append(values, r.SNO)
			case report.TotalColumn:
				values = append(values, r.Total)
			default:
				values = append(values, cell)
			}
		}
		start, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheetName, start, &values); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("写入第 %d 行失败: %w", row, err)
		}
		if n > 0 {
			reportProgress(opts.Progress, 5+90*(i+1)/n, "写入结果")
		}
	}

	if n > 0 {
		for col, style := range colStyles {
			from, _ := excelize.CoordinatesToCellName(col+1, 2)
			to, _ := excelize.CoordinatesToCellName(col+1, n+1)
			if err := f.SetCellStyle(sheetName, from, to, style); err != nil {
				_ = f.Close()
				return nil, err
			}
		}
	}

	// 设置列宽
	_ = f.SetColWidth(sheetName, "A", "A", 6)
	_ = f.SetColWidth(sheetName, "B", "C", 15)
	_ = f.SetColWidth(sheetName, "D", "D", 22)
	_ = f.SetColWidth(sheetName, "E", "M", 14)

	reportProgress(opts.Progress, 100, "导出完成")
	return f, nil
}

// ProgressEvent 导出进度事件（用于 UI 展示）
type ProgressEvent struct {
	Percent int
	Stage   string
}

func reportProgress(progress func(ProgressEvent), percent int, stage string) {
	if progress != nil {
		progress(ProgressEvent{Percent: max(0, min(percent, 100)), Stage: stage})
	}
}
