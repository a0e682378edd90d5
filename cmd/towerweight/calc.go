package main

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"towerweight/internal/catalog"
	"towerweight/internal/model"
	"towerweight/internal/service/calculator"
	"towerweight/internal/service/excel"
	"towerweight/internal/service/report"
	"towerweight/internal/service/store"
)

// batchFile 批量计算文件
type batchFile struct {
	Calculations []batchItem `yaml:"calculations"`
}

type batchItem struct {
	TowerType     string   `yaml:"towerType"`
	BodyExtension string   `yaml:"bodyExtension"`
	Legs          []string `yaml:"legs"`
}

type calcOptions struct {
	jsonOut   bool
	xlsxPath  string
	sheetName string
}

func calcCmd() *cobra.Command {
	var (
		tower     string
		be        string
		legs      []string
		batchPath string
		opts      calcOptions
	)
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "计算铁塔重量并输出结果表",
		Example: `  towerweight calc --tower NS5 --be E3 --legs +0M,-5M,+0M,+0M
  towerweight calc --batch towers.yaml --xlsx tower_weight_calculations.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var sels []model.Selection
			switch {
			case batchPath != "":
				var err error
				if sels, err = readBatch(batchPath); err != nil {
					return err
				}
			case tower != "":
				sel, err := model.ParseSelection(tower, be, legs)
				if err != nil {
					return err
				}
				sels = append(sels, sel)
			default:
				return fmt.Errorf("--tower or --batch is required")
			}

			cfg, _ := loadConfig()
			cat, err := loadCatalog(cfg.Catalog.Path)
			if err != nil {
				return err
			}
			if opts.sheetName == "" {
				opts.sheetName = cfg.Excel.SheetName
			}
			return runCalc(cmd.OutOrStdout(), cat, sels, opts)
		},
	}
	cmd.Flags().StringVar(&tower, "tower", "", "塔型 (NS5, LA5, MA5, HA5/DE5)")
	cmd.Flags().StringVar(&be, "be", string(model.BeE0), "塔身接腿代码")
	cmd.Flags().StringSliceVar(&legs, "legs", nil, "腿 A..D 接腿代码，逗号分隔，缺省为 +0M")
	cmd.Flags().StringVar(&batchPath, "batch", "", "批量计算 YAML 文件")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "以 JSON 输出结果表")
	cmd.Flags().StringVar(&opts.xlsxPath, "xlsx", "", "同时导出到 Excel 文件")
	return cmd
}

func readBatch(path string) ([]model.Selection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}
	var bf batchFile
	if err := yaml.Unmarshal(data, &bf); err != nil {
		return nil, fmt.Errorf("parse batch file %s: %w", path, err)
	}
	if len(bf.Calculations) == 0 {
		return nil, fmt.Errorf("batch file %s has no calculations", path)
	}
	sels := make([]model.Selection, 0, len(bf.Calculations))
	for i, it := range bf.Calculations {
		sel, err := model.ParseSelection(it.TowerType, it.BodyExtension, it.Legs)
		if err != nil {
			return nil, fmt.Errorf("calculation %d: %w", i+1, err)
		}
		sels = append(sels, sel)
	}
	return sels, nil
}

// runCalc 依次计算并追加到台账，任一选择非法即中止
func runCalc(w io.Writer, cat *catalog.Catalog, sels []model.Selection, opts calcOptions) error {
	engine := calculator.NewEngine(cat)
	ledger := store.NewLedger()
	for i, sel := range sels {
		res, err := engine.Resolve(sel)
		if err != nil {
			return fmt.Errorf("calculation %d: %w", i+1, err)
		}
		ledger.Append(res)
	}
	table := report.Build(ledger.Entries(), ledger.GrandTotal())

	if opts.jsonOut {
		b, err := json.MarshalIndent(table, "", "  ")
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, string(b)); err != nil {
			return err
		}
	} else if err := table.WriteText(w); err != nil {
		return err
	}

	if opts.xlsxPath != "" {
		f, err := excel.NewExporter().Export(table, excel.ExportOptions{SheetName: opts.sheetName})
		if err != nil {
			return err
		}
		defer f.Close()
		if err := f.SaveAs(opts.xlsxPath); err != nil {
			return fmt.Errorf("failed to save %s: %w", opts.xlsxPath, err)
		}
	}
	return nil
}
