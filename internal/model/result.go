package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSelection 所选代码不在当前型号的重量表中
var ErrInvalidSelection = errors.New("invalid selection")

// SelectionError 非法选择的明细
type SelectionError struct {
	Tower TowerType
	Field string // tower / bodyExtension / legA..legD / btb
	Value string
}

func (e *SelectionError) Error() string {
	if e.Field == "tower" {
		return fmt.Sprintf("invalid selection: unknown tower type %q", e.Value)
	}
	return fmt.Sprintf("invalid selection: %s %q not defined for tower %s", e.Field, e.Value, e.Tower)
}

func (e *SelectionError) Unwrap() error {
	return ErrInvalidSelection
}

// LegNames 四条腿的固定顺序
var LegNames = [4]string{"A", "B", "C", "D"}

// Selection 用户一次计算的输入
type Selection struct {
	Tower         TowerType  `json:"towerType" yaml:"towerType"`
	BodyExtension BeCode     `json:"bodyExtension" yaml:"bodyExtension"`
	Legs          [4]LegCode `json:"legs" yaml:"legs"`
}

// DefaultSelection 界面默认值：E0 + 四腿 +0M
func DefaultSelection(tower TowerType) Selection {
	return Selection{
		Tower:         tower,
		BodyExtension: BeE0,
		Legs:          [4]LegCode{LegP0, LegP0, LegP0, LegP0},
	}
}

// ParseSelection 由文本输入构造选择；BE 为空取 E0，缺省的腿取 +0M
//
// 只校验格式，代码是否在重量表中由计算时判断。
func ParseSelection(tower, be string, legs []string) (Selection, error) {
	t, ok := ParseTowerType(tower)
	if !ok {
		return Selection{}, &SelectionError{Field: "tower", Value: tower}
	}
	sel := DefaultSelection(t)
	if v := strings.TrimSpace(be); v != "" {
		sel.BodyExtension = BeCode(strings.ToUpper(v))
	}
	if len(legs) > len(sel.Legs) {
		return Selection{}, &SelectionError{Tower: t, Field: "legs", Value: strings.Join(legs, ",")}
	}
	for i, l := range legs {
		if v := strings.TrimSpace(l); v != "" {
			sel.Legs[i] = LegCode(strings.ToUpper(v))
		}
	}
	return sel, nil
}

// HasLeg 四条腿中是否出现任一代码
func (s Selection) HasLeg(codes ...LegCode) bool {
	for _, l := range s.Legs {
		for _, c := range codes {
			if l == c {
				return true
			}
		}
	}
	return false
}

// ResolvedResult 单次计算结果，创建后不再修改
//
// 所有重量保留全精度，仅在展示/导出时保留两位小数。
type ResolvedResult struct {
	SNO           int        `json:"sno"`
	Tower         TowerType  `json:"towerType"`
	BodyExtension BeCode     `json:"bodyExtension"`
	Legs          [4]LegCode `json:"legs"`
	LegWeights    [4]float64 `json:"legWeights"`
	BtbLabel      BtbLabel   `json:"btbLabel"`
	BtbWeight     float64    `json:"btbWeight"`
	BeWeight      float64    `json:"beWeight"`
	BtbBeWeight   float64    `json:"btbBeWeight"`
	LegSum        float64    `json:"legSum"`
	Total         float64    `json:"total"`
}

// LegExtensions 四腿代码拼接，用于展示
func (r ResolvedResult) LegExtensions() string {
	parts := make([]string, len(r.Legs))
	for i, l := range r.Legs {
		parts[i] = string(l)
	}
	return strings.Join(parts, ", ")
}
