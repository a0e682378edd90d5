package catalog

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"towerweight/internal/model"
)

// Entry 单个铁塔型号的重量表
//
// 字段不导出，构造后只能通过访问器读取，运行期不可修改。
type Entry struct {
	tower model.TowerType
	btb   map[model.BtbLabel]float64
	be    map[model.BeCode]model.BeValue
	legs  map[model.LegCode]float64
}

// NewEntry 创建重量表（复制传入的 map）
func NewEntry(tower model.TowerType, btb map[model.BtbLabel]float64, be map[model.BeCode]model.BeValue, legs map[model.LegCode]float64) *Entry {
	e := &Entry{
		tower: tower,
		btb:   make(map[model.BtbLabel]float64, len(btb)),
		be:    make(map[model.BeCode]model.BeValue, len(be)),
		legs:  make(map[model.LegCode]float64, len(legs)),
	}
	for k, v := range btb {
		e.btb[k] = v
	}
	for k, v := range be {
		if v.IsConditional() {
			b := v.Branches()
			v = model.ConditionalBe(b[model.LegCategoryShort], b[model.LegCategoryStandard])
		}
		e.be[k] = v
	}
	for k, v := range legs {
		e.legs[k] = v
	}
	return e
}

// Tower 型号
func (e *Entry) Tower() model.TowerType {
	return e.tower
}

// Btb 基本塔身重量
func (e *Entry) Btb(label model.BtbLabel) (float64, bool) {
	w, ok := e.btb[label]
	return w, ok
}

// Be 塔身接腿重量定义
func (e *Entry) Be(code model.BeCode) (model.BeValue, bool) {
	v, ok := e.be[code]
	return v, ok
}

// Leg 单腿接腿重量
func (e *Entry) Leg(code model.LegCode) (float64, bool) {
	w, ok := e.legs[code]
	return w, ok
}

// BtbOptions 基本塔身方案副本
func (e *Entry) BtbOptions() map[model.BtbLabel]float64 {
	out := make(map[model.BtbLabel]float64, len(e.btb))
	for k, v := range e.btb {
		out[k] = v
	}
	return out
}

// BtbLabels 基本塔身方案名称（按名称排序）
func (e *Entry) BtbLabels() []model.BtbLabel {
	out := make([]model.BtbLabel, 0, len(e.btb))
	for k := range e.btb {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// BeCodes 该型号可选的塔身接腿代码（E0 在前，按高度排序）
func (e *Entry) BeCodes() []model.BeCode {
	out := make([]model.BeCode, 0, len(e.be))
	for _, c := range model.AllBeCodes {
		if _, ok := e.be[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// LegCodes 该型号可选的接腿代码（+0M 在前）
func (e *Entry) LegCodes() []model.LegCode {
	out := make([]model.LegCode, 0, len(e.legs))
	for _, c := range model.AllLegCodes {
		if _, ok := e.legs[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Validate 校验单个重量表的结构约束
func (e *Entry) Validate() error {
	var errs []error

	if len(e.btb) == 0 {
		errs = append(errs, errors.New("no basic tower body options"))
	}
	for label, w := range e.btb {
		if label == "" {
			errs = append(errs, errors.New("empty basic tower body label"))
		}
		if err := checkWeight(w); err != nil {
			errs = append(errs, fmt.Errorf("btb %q: %w", label, err))
		}
	}

	e0, ok := e.be[model.BeE0]
	if !ok {
		errs = append(errs, errors.New("body extension E0 is missing"))
	} else if e0.IsConditional() || e0.Flat() != 0 {
		errs = append(errs, errors.New("body extension E0 must be a flat 0"))
	}
	for code, v := range e.be {
		if !isKnownBe(code) {
			errs = append(errs, fmt.Errorf("unknown body extension %q", code))
			continue
		}
		if !v.IsConditional() {
			if err := checkWeight(v.Flat()); err != nil {
				errs = append(errs, fmt.Errorf("body extension %s: %w", code, err))
			}
			continue
		}
		for _, cat := range []model.LegCategory{model.LegCategoryShort, model.LegCategoryStandard} {
			w, ok := v.For(cat)
			if !ok {
				errs = append(errs, fmt.Errorf("body extension %s: branch %q is missing", code, cat))
				continue
			}
			if err := checkWeight(w); err != nil {
				errs = append(errs, fmt.Errorf("body extension %s %q: %w", code, cat, err))
			}
		}
	}

	if len(e.legs) != len(model.AllLegCodes) {
		errs = append(errs, fmt.Errorf("expected %d leg extensions, got %d", len(model.AllLegCodes), len(e.legs)))
	}
	for _, code := range model.AllLegCodes {
		w, ok := e.legs[code]
		if !ok {
			errs = append(errs, fmt.Errorf("leg extension %s is missing", code))
			continue
		}
		if err := checkWeight(w); err != nil {
			errs = append(errs, fmt.Errorf("leg extension %s: %w", code, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("tower %s: %w", e.tower, errors.Join(errs...))
	}
	return nil
}

func checkWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return errors.New("weight is not a finite number")
	}
	if w < 0 {
		return fmt.Errorf("weight %v is negative", w)
	}
	return nil
}

func isKnownBe(code model.BeCode) bool {
	for _, c := range model.AllBeCodes {
		if c == code {
			return true
		}
	}
	return false
}

// Catalog 铁塔重量目录（只读）
type Catalog struct {
	entries map[model.TowerType]*Entry
}

// New 创建目录并校验；必须覆盖全部型号
func New(entries ...*Entry) (*Catalog, error) {
	c := &Catalog{entries: make(map[model.TowerType]*Entry, len(entries))}
	for _, e := range entries {
		if e == nil {
			continue
		}
		if _, dup := c.entries[e.tower]; dup {
			return nil, fmt.Errorf("duplicate tower type %s", e.tower)
		}
		c.entries[e.tower] = e
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate 校验目录
func (c *Catalog) Validate() error {
	var errs []error
	for tower := range c.entries {
		if _, ok := model.ParseTowerType(string(tower)); !ok {
			errs = append(errs, fmt.Errorf("unknown tower type %q", tower))
		}
	}
	for _, tower := range model.AllTowerTypes {
		e, ok := c.entries[tower]
		if !ok {
			errs = append(errs, fmt.Errorf("tower %s is missing", tower))
			continue
		}
		if err := e.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid catalog: %w", errors.Join(errs...))
	}
	return nil
}

// Lookup 查找型号对应的重量表
func (c *Catalog) Lookup(tower model.TowerType) (*Entry, error) {
	e, ok := c.entries[tower]
	if !ok {
		return nil, &model.SelectionError{Tower: tower, Field: "tower", Value: string(tower)}
	}
	return e, nil
}

// Towers 目录中的型号（固定顺序）
func (c *Catalog) Towers() []model.TowerType {
	out := make([]model.TowerType, 0, len(c.entries))
	for _, t := range model.AllTowerTypes {
		if _, ok := c.entries[t]; ok {
			out = append(out, t)
		}
	}
	return out
}
