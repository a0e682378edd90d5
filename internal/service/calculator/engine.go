package calculator

import (
	"errors"
	"fmt"

	"towerweight/internal/catalog"
	"towerweight/internal/model"
)

// Engine 铁塔重量计算引擎
type Engine struct {
	catalog *catalog.Catalog
}

// NewEngine 创建计算引擎
func NewEngine(cat *catalog.Catalog) *Engine {
	return &Engine{catalog: cat}
}

// Catalog 当前使用的重量目录
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Resolve 计算一次选择的各项重量
func (e *Engine) Resolve(sel model.Selection) (model.ResolvedResult, error) {
	return Resolve(e.catalog, sel)
}

// Resolve 按目录计算：四腿重量、塔身接腿、基本塔身与合计
//
// 任一代码不在目录中都直接返回 model.ErrInvalidSelection，不做默认值兜底。
func Resolve(cat *catalog.Catalog, sel model.Selection) (model.ResolvedResult, error) {
	entry, err := cat.Lookup(sel.Tower)
	if err != nil {
		return model.ResolvedResult{}, err
	}

	res := model.ResolvedResult{
		Tower:         sel.Tower,
		BodyExtension: sel.BodyExtension,
		Legs:          sel.Legs,
	}

	// 四腿重量
	for i, code := range sel.Legs {
		w, ok := entry.Leg(code)
		if !ok {
			return model.ResolvedResult{}, invalid(sel.Tower, "leg"+model.LegNames[i], string(code))
		}
		res.LegWeights[i] = w
		res.LegSum += w
	}

	// 塔身接腿
	be, ok := entry.Be(sel.BodyExtension)
	if !ok {
		return model.ResolvedResult{}, invalid(sel.Tower, "bodyExtension", string(sel.BodyExtension))
	}
	legCat := beCategory(sel)
	res.BeWeight, ok = be.For(legCat)
	if !ok {
		return model.ResolvedResult{}, invalid(sel.Tower, "bodyExtension", fmt.Sprintf("%s (%s)", sel.BodyExtension, legCat))
	}

	// 基本塔身
	rule, ok := btbRules[sel.Tower]
	if !ok {
		return model.ResolvedResult{}, invalid(sel.Tower, "tower", string(sel.Tower))
	}
	res.BtbLabel = rule(sel)
	res.BtbWeight, ok = entry.Btb(res.BtbLabel)
	if !ok {
		return model.ResolvedResult{}, invalid(sel.Tower, "btb", string(res.BtbLabel))
	}

	res.BtbBeWeight = res.BtbWeight + res.BeWeight
	res.Total = res.BtbBeWeight + res.LegSum
	return res, nil
}

// VerifyCatalog 检查目录是否包含选择规则需要的全部基本塔身方案
func VerifyCatalog(cat *catalog.Catalog) error {
	var errs []error
	for _, tower := range model.AllTowerTypes {
		entry, err := cat.Lookup(tower)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, label := range requiredBtb[tower] {
			if _, ok := entry.Btb(label); !ok {
				errs = append(errs, fmt.Errorf("tower %s: btb option %q is required", tower, label))
			}
		}
	}
	return errors.Join(errs...)
}

func invalid(tower model.TowerType, field, value string) error {
	return &model.SelectionError{Tower: tower, Field: field, Value: value}
}
