package calculator

import (
	"errors"
	"math"
	"testing"

	"towerweight/internal/catalog"
	"towerweight/internal/model"
)

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func sel(tower model.TowerType, be model.BeCode, a, b, c, d model.LegCode) model.Selection {
	return model.Selection{Tower: tower, BodyExtension: be, Legs: [4]model.LegCode{a, b, c, d}}
}

// TestResolveNS5Baseline NS5 + E0 + 四腿 +0M
func TestResolveNS5Baseline(t *testing.T) {
	engine := NewEngine(catalog.Default())

	res, err := engine.Resolve(model.DefaultSelection(model.TowerNS5))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	for i, w := range res.LegWeights {
		if !floatEquals(w, 471.061) {
			t.Errorf("leg %s weight = %v, want 471.061", model.LegNames[i], w)
		}
	}
	if !floatEquals(res.LegSum, 1884.244) {
		t.Errorf("LegSum = %v, want 1884.244", res.LegSum)
	}
	if res.BtbLabel != model.BtbWithM4ToP2 {
		t.Errorf("BtbLabel = %q, want %q", res.BtbLabel, model.BtbWithM4ToP2)
	}
	if !floatEquals(res.BtbWeight, 7657.795) {
		t.Errorf("BtbWeight = %v, want 7657.795", res.BtbWeight)
	}
	if res.BeWeight != 0 {
		t.Errorf("BeWeight = %v, want 0", res.BeWeight)
	}
	if !floatEquals(res.BtbBeWeight, 7657.795) {
		t.Errorf("BtbBeWeight = %v, want 7657.795", res.BtbBeWeight)
	}
	if !floatEquals(res.Total, 9542.039) {
		t.Errorf("Total = %v, want 9542.039", res.Total)
	}
}

// TestResolveHA5E9ShortLeg HA5/DE5 + E9 + A 腿 -4M
func TestResolveHA5E9ShortLeg(t *testing.T) {
	res, err := Resolve(catalog.Default(), sel(model.TowerHA5DE5, model.BeE9, model.LegM4, model.LegP0, model.LegP0, model.LegP0))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if res.BtbLabel != model.BtbWithM4M5 || !floatEquals(res.BtbWeight, 14515.305) {
		t.Errorf("btb = %q %v, want -4M & -5M 14515.305", res.BtbLabel, res.BtbWeight)
	}
	if !floatEquals(res.BeWeight, 5849.610) {
		t.Errorf("BeWeight = %v, want 5849.610", res.BeWeight)
	}
	if !floatEquals(res.LegSum, 2174.939) {
		t.Errorf("LegSum = %v, want 2174.939", res.LegSum)
	}
	if !floatEquals(res.Total, 22539.854) {
		t.Errorf("Total = %v, want 22539.854", res.Total)
	}
}

// TestResolveAdditiveIdentity 全组合：合计 = 基本塔身 + 塔身接腿 + 四腿之和
func TestResolveAdditiveIdentity(t *testing.T) {
	cat := catalog.Default()

	for _, tower := range cat.Towers() {
		entry, err := cat.Lookup(tower)
		if err != nil {
			t.Fatalf("Lookup(%s) failed: %v", tower, err)
		}
		legs := entry.LegCodes()
		for _, be := range entry.BeCodes() {
			for _, a := range legs {
				for _, b := range legs {
					for _, c := range legs {
						for _, d := range legs {
							res, err := Resolve(cat, sel(tower, be, a, b, c, d))
							if err != nil {
								t.Fatalf("Resolve(%s %s %s %s %s %s) failed: %v", tower, be, a, b, c, d, err)
							}
							var legSum float64
							for _, w := range res.LegWeights {
								legSum += w
							}
							if res.Total != res.BtbWeight+res.BeWeight+res.LegSum {
								t.Fatalf("total identity broken for %s %s %v: %+v", tower, be, res.Legs, res)
							}
							if !floatEquals(res.LegSum, legSum) || !floatEquals(res.BtbBeWeight, res.BtbWeight+res.BeWeight) {
								t.Fatalf("subtotals inconsistent for %s %s %v: %+v", tower, be, res.Legs, res)
							}
						}
					}
				}
			}
		}
	}
}

// TestResolveNS5MinusFiveOverrides 任一腿 -5M 时无论塔身接腿如何都取 -5M 方案
func TestResolveNS5MinusFiveOverrides(t *testing.T) {
	cat := catalog.Default()
	for _, be := range model.AllBeCodes {
		for slot := 0; slot < 4; slot++ {
			s := model.DefaultSelection(model.TowerNS5)
			s.BodyExtension = be
			s.Legs[slot] = model.LegM5

			res, err := Resolve(cat, s)
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if res.BtbLabel != model.BtbWithM5 {
				t.Errorf("be=%s slot=%d: BtbLabel = %q, want %q", be, slot, res.BtbLabel, model.BtbWithM5)
			}
			if !floatEquals(res.BtbWeight, 7318.671) {
				t.Errorf("be=%s slot=%d: BtbWeight = %v", be, slot, res.BtbWeight)
			}
		}
	}
}

// TestResolveConditionalBeUsesLegAOnly LA5/MA5 塔身接腿只看 A 腿
func TestResolveConditionalBeUsesLegAOnly(t *testing.T) {
	cat := catalog.Default()

	tests := []struct {
		tower     model.TowerType
		wantShort float64
		wantStd   float64
	}{
		{model.TowerLA5, 0, 2151.75},
		{model.TowerMA5, 2228.388, 2228.100},
	}

	for _, tt := range tests {
		t.Run(string(tt.tower), func(t *testing.T) {
			r1, err := Resolve(cat, sel(tt.tower, model.BeE3, model.LegM5, model.LegP0, model.LegP0, model.LegP0))
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			r2, err := Resolve(cat, sel(tt.tower, model.BeE3, model.LegM5, model.LegP2, model.LegP2, model.LegP2))
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			r3, err := Resolve(cat, sel(tt.tower, model.BeE3, model.LegP0, model.LegM5, model.LegM5, model.LegM5))
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}

			if r1.BeWeight != r2.BeWeight || !floatEquals(r1.BeWeight, tt.wantShort) {
				t.Errorf("A=-5M BeWeight = %v / %v, want %v", r1.BeWeight, r2.BeWeight, tt.wantShort)
			}
			if !floatEquals(r3.BeWeight, tt.wantStd) {
				t.Errorf("A=+0M BeWeight = %v, want %v", r3.BeWeight, tt.wantStd)
			}
			// 基本塔身仍按四腿判断
			if r3.BtbLabel != model.BtbWithM4M5 {
				t.Errorf("A=+0M BtbLabel = %q, want %q", r3.BtbLabel, model.BtbWithM4M5)
			}
		})
	}
}

// TestResolveBtbSelection 各型号基本塔身方案选择
func TestResolveBtbSelection(t *testing.T) {
	cat := catalog.Default()

	tests := []struct {
		name string
		sel  model.Selection
		want model.BtbLabel
	}{
		{"NS5 E3", sel(model.TowerNS5, model.BeE3, model.LegP0, model.LegP0, model.LegP0, model.LegP0), model.BtbWithE3},
		{"NS5 E6", sel(model.TowerNS5, model.BeE6, model.LegP0, model.LegP0, model.LegP0, model.LegP0), model.BtbWithE6ToE12},
		{"NS5 E12", sel(model.TowerNS5, model.BeE12, model.LegM4, model.LegP0, model.LegP0, model.LegP0), model.BtbWithE6ToE12},
		{"NS5 E0 -4M", sel(model.TowerNS5, model.BeE0, model.LegM4, model.LegM4, model.LegM4, model.LegM4), model.BtbWithM4ToP2},
		{"HA5 无短腿", sel(model.TowerHA5DE5, model.BeE6, model.LegM3, model.LegP2, model.LegP0, model.LegM1), model.BtbWithM3ToP2},
		{"HA5 D 腿 -5M", sel(model.TowerHA5DE5, model.BeE0, model.LegP0, model.LegP0, model.LegP0, model.LegM5), model.BtbWithM4M5},
		{"LA5 无短腿", sel(model.TowerLA5, model.BeE9, model.LegP1, model.LegP1, model.LegP1, model.LegP1), model.BtbWithBeOrM3ToP2},
		{"MA5 C 腿 -4M", sel(model.TowerMA5, model.BeE0, model.LegP0, model.LegP0, model.LegM4, model.LegP0), model.BtbWithM4M5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Resolve(cat, tt.sel)
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if res.BtbLabel != tt.want {
				t.Errorf("BtbLabel = %q, want %q", res.BtbLabel, tt.want)
			}
			if res.BtbLabel == model.BtbWithAllBodyExts {
				t.Errorf("ALL BODY EXTENSION must never be selected")
			}
		})
	}
}

// TestResolveInvalidSelection 非法代码直接报错，不做兜底
func TestResolveInvalidSelection(t *testing.T) {
	cat := catalog.Default()

	tests := []struct {
		name  string
		sel   model.Selection
		field string
	}{
		{"未知型号", sel("XX9", model.BeE0, model.LegP0, model.LegP0, model.LegP0, model.LegP0), "tower"},
		{"LA5 无 E12", sel(model.TowerLA5, model.BeE12, model.LegP0, model.LegP0, model.LegP0, model.LegP0), "bodyExtension"},
		{"未知塔身接腿", sel(model.TowerNS5, "E4", model.LegP0, model.LegP0, model.LegP0, model.LegP0), "bodyExtension"},
		{"C 腿非法", sel(model.TowerMA5, model.BeE0, model.LegP0, model.LegP0, "+3M", model.LegP0), "legC"},
		{"空腿", model.Selection{Tower: model.TowerNS5, BodyExtension: model.BeE0}, "legA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(cat, tt.sel)
			if !errors.Is(err, model.ErrInvalidSelection) {
				t.Fatalf("expected ErrInvalidSelection, got %v", err)
			}
			var se *model.SelectionError
			if !errors.As(err, &se) {
				t.Fatalf("expected *SelectionError, got %T", err)
			}
			if se.Field != tt.field {
				t.Errorf("Field = %q, want %q", se.Field, tt.field)
			}
		})
	}
}
