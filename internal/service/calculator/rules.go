package calculator

import "towerweight/internal/model"

// btbRule 按型号选择基本塔身方案（按优先级判断）
type btbRule func(sel model.Selection) model.BtbLabel

var btbRules = map[model.TowerType]btbRule{
	model.TowerNS5:    ns5Btb,
	model.TowerHA5DE5: ha5Btb,
	model.TowerLA5:    laMaBtb,
	model.TowerMA5:    laMaBtb,
}

// requiredBtb 各型号选择规则可能命中的方案
var requiredBtb = map[model.TowerType][]model.BtbLabel{
	model.TowerNS5:    {model.BtbWithM5, model.BtbWithE3, model.BtbWithE6ToE12, model.BtbWithM4ToP2},
	model.TowerHA5DE5: {model.BtbWithM4M5, model.BtbWithM3ToP2},
	model.TowerLA5:    {model.BtbWithM4M5, model.BtbWithBeOrM3ToP2},
	model.TowerMA5:    {model.BtbWithM4M5, model.BtbWithBeOrM3ToP2},
}

// ns5Btb 任一腿 -5M 优先，其次看塔身接腿
func ns5Btb(sel model.Selection) model.BtbLabel {
	switch {
	case sel.HasLeg(model.LegM5):
		return model.BtbWithM5
	case sel.BodyExtension == model.BeE3:
		return model.BtbWithE3
	case sel.BodyExtension == model.BeE6 || sel.BodyExtension == model.BeE9 || sel.BodyExtension == model.BeE12:
		return model.BtbWithE6ToE12
	default:
		return model.BtbWithM4ToP2
	}
}

// ha5Btb ALL BODY EXTENSION 方案不参与选择
func ha5Btb(sel model.Selection) model.BtbLabel {
	if sel.HasLeg(model.LegM4, model.LegM5) {
		return model.BtbWithM4M5
	}
	return model.BtbWithM3ToP2
}

func laMaBtb(sel model.Selection) model.BtbLabel {
	if sel.HasLeg(model.LegM4, model.LegM5) {
		return model.BtbWithM4M5
	}
	return model.BtbWithBeOrM3ToP2
}

// beCategory 条件塔身接腿只看 A 腿
//
// 四腿不一致时（如 A=+0M、B=-5M），塔身接腿取 -3M~+2M 分支，
// 而基本塔身按四腿判断取 -4M & -5M 方案，两者不一致，保持现状。
func beCategory(sel model.Selection) model.LegCategory {
	return model.CategoryOf(sel.Legs[0])
}
