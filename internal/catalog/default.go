package catalog

import (
	"sync"

	"towerweight/internal/model"
)

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default 内置铁塔重量目录（单位 kg）
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := New(defaultEntries()...)
		if err != nil {
			panic("built-in catalog is invalid: " + err.Error())
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

func defaultEntries() []*Entry {
	return []*Entry{
		NewEntry(model.TowerNS5,
			map[model.BtbLabel]float64{
				model.BtbWithE3:      7657.795,
				model.BtbWithE6ToE12: 7318.671,
				model.BtbWithM4ToP2:  7657.795,
				model.BtbWithM5:      7318.671,
			},
			map[model.BeCode]model.BeValue{
				model.BeE0:  model.FlatBe(0),
				model.BeE3:  model.FlatBe(1398.814),
				model.BeE6:  model.FlatBe(2535.785),
				model.BeE9:  model.FlatBe(3185.689),
				model.BeE12: model.FlatBe(4297.383),
			},
			map[model.LegCode]float64{
				model.LegP0: 471.061,
				model.LegM5: 171.491,
				model.LegM4: 236.135,
				model.LegM3: 264.864,
				model.LegM2: 342.284,
				model.LegM1: 407.650,
				model.LegP1: 535.807,
				model.LegP2: 623.249,
			},
		),
		NewEntry(model.TowerLA5,
			map[model.BtbLabel]float64{
				model.BtbWithM4M5:       0,
				model.BtbWithBeOrM3ToP2: 11390.96,
			},
			map[model.BeCode]model.BeValue{
				model.BeE0: model.FlatBe(0),
				model.BeE3: model.ConditionalBe(0, 2151.75),
				model.BeE6: model.ConditionalBe(0, 3572.72),
				model.BeE9: model.ConditionalBe(0, 4694.68),
			},
			map[model.LegCode]float64{
				model.LegP0: 574.689,
				model.LegM5: 187.406,
				model.LegM4: 266.396,
				model.LegM3: 335.810,
				model.LegM2: 416.244,
				model.LegM1: 514.038,
				model.LegP1: 669.806,
				model.LegP2: 765.783,
			},
		),
		NewEntry(model.TowerMA5,
			map[model.BtbLabel]float64{
				model.BtbWithM4M5:       13726.899,
				model.BtbWithBeOrM3ToP2: 13724.584,
			},
			map[model.BeCode]model.BeValue{
				model.BeE0: model.FlatBe(0),
				model.BeE3: model.ConditionalBe(2228.388, 2228.100),
				model.BeE6: model.ConditionalBe(3690.482, 3688.048),
				model.BeE9: model.ConditionalBe(5240.190, 5237.598),
			},
			map[model.LegCode]float64{
				model.LegP0: 588.899,
				model.LegM5: 219.517,
				model.LegM4: 307.324,
				model.LegM3: 357.019,
				model.LegM2: 448.234,
				model.LegM1: 576.856,
				model.LegP1: 757.754,
				model.LegP2: 852.382,
			},
		),
		// ALL BODY EXTENSION 方案保留在数据中，选择规则不会命中
		NewEntry(model.TowerHA5DE5,
			map[model.BtbLabel]float64{
				model.BtbWithAllBodyExts: 14513.530,
				model.BtbWithM4M5:        14515.305,
				model.BtbWithM3ToP2:      14513.530,
			},
			map[model.BeCode]model.BeValue{
				model.BeE0: model.FlatBe(0),
				model.BeE3: model.FlatBe(2691.752),
				model.BeE6: model.FlatBe(4344.253),
				model.BeE9: model.FlatBe(5849.610),
			},
			map[model.LegCode]float64{
				model.LegP0: 588.899,
				model.LegM5: 322.898,
				model.LegM4: 408.242,
				model.LegM3: 516.451,
				model.LegM2: 585.859,
				model.LegM1: 705.206,
				model.LegP1: 936.229,
				model.LegP2: 1044.828,
			},
		),
	}
}
