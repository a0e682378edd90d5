package model

import "strings"

// TowerType 铁塔型号
type TowerType string

const (
	TowerNS5    TowerType = "NS5"
	TowerLA5    TowerType = "LA5"
	TowerMA5    TowerType = "MA5"
	TowerHA5DE5 TowerType = "HA5/DE5"
)

// AllTowerTypes 全部铁塔型号（界面下拉顺序）
var AllTowerTypes = []TowerType{TowerNS5, TowerLA5, TowerMA5, TowerHA5DE5}

// ParseTowerType 解析铁塔型号，兼容 URL 中的 "HA5-DE5" 写法
func ParseTowerType(s string) (TowerType, bool) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "HA5-DE5" || v == "HA5_DE5" {
		v = string(TowerHA5DE5)
	}
	for _, t := range AllTowerTypes {
		if string(t) == v {
			return t, true
		}
	}
	return "", false
}

// Slug URL 安全的型号名
func (t TowerType) Slug() string {
	return strings.ReplaceAll(string(t), "/", "-")
}

// BeCode 塔身接腿（Body Extension）代码
type BeCode string

const (
	BeE0  BeCode = "E0"
	BeE3  BeCode = "E3"
	BeE6  BeCode = "E6"
	BeE9  BeCode = "E9"
	BeE12 BeCode = "E12"
)

// AllBeCodes 按高度排序
var AllBeCodes = []BeCode{BeE0, BeE3, BeE6, BeE9, BeE12}

// LegCode 单腿接腿代码
type LegCode string

const (
	LegM5 LegCode = "-5M"
	LegM4 LegCode = "-4M"
	LegM3 LegCode = "-3M"
	LegM2 LegCode = "-2M"
	LegM1 LegCode = "-1M"
	LegP0 LegCode = "+0M"
	LegP1 LegCode = "+1M"
	LegP2 LegCode = "+2M"
)

// AllLegCodes 8 个标准接腿代码，+0M 为默认值排在首位
var AllLegCodes = []LegCode{LegP0, LegM5, LegM4, LegM3, LegM2, LegM1, LegP1, LegP2}

// IsShortLeg 是否为 -4M / -5M 短腿
func (l LegCode) IsShortLeg() bool {
	return l == LegM4 || l == LegM5
}

// LegCategory 条件塔身接腿的分支键
type LegCategory string

const (
	LegCategoryShort    LegCategory = "with -4M & -5M leg extensions"
	LegCategoryStandard LegCategory = "with -3M to +2M leg extensions"
)

// CategoryOf 按单腿代码归类
func CategoryOf(l LegCode) LegCategory {
	if l.IsShortLeg() {
		return LegCategoryShort
	}
	return LegCategoryStandard
}

// BtbLabel 基本塔身（Basic Tower Body）方案名称
type BtbLabel string

const (
	BtbWithE3          BtbLabel = "BASIC TOWER BODY WHEN WITH E3 BODY EXTENSION"
	BtbWithE6ToE12     BtbLabel = "BASIC TOWER BODY WHEN WITH E6 to E12 BODY EXTENSIONS"
	BtbWithM4ToP2      BtbLabel = "BASIC TOWER BODY WHEN WITH -4M to +2M LEG EXTENSIONS"
	BtbWithM5          BtbLabel = "BASIC TOWER BODY WHEN WITH -5M LEG EXTENSION"
	BtbWithM4M5        BtbLabel = "BASIC TOWER BODY WHEN WITH -4M & -5M LEG EXTENSIONS"
	BtbWithBeOrM3ToP2  BtbLabel = "BASIC TOWER BODY WHEN WITH BE OR -3M,-2M,-1M,+0M,+1M AND +2M LEG EXTENSIONS"
	BtbWithM3ToP2      BtbLabel = "BASIC TOWER BODY WHEN WITH -3M,-2M,-1M,+0M,+1M & +2M LEG EXTENSIONS"
	BtbWithAllBodyExts BtbLabel = "BASIC TOWER BODY WHEN WITH ALL BODY EXTENSION"
)

// BeValue 塔身接腿重量：固定值，或按腿型分支取值
//
// LA5/MA5 的塔身接腿重量依赖所选接腿，其余型号为固定值。
type BeValue struct {
	flat        float64
	conditional map[LegCategory]float64
}

// FlatBe 固定重量
func FlatBe(w float64) BeValue {
	return BeValue{flat: w}
}

// ConditionalBe 按腿型分支的重量
func ConditionalBe(short, standard float64) BeValue {
	return BeValue{conditional: map[LegCategory]float64{
		LegCategoryShort:    short,
		LegCategoryStandard: standard,
	}}
}

// IsConditional 是否为分支取值
func (v BeValue) IsConditional() bool {
	return v.conditional != nil
}

// Flat 固定重量（分支取值时为 0）
func (v BeValue) Flat() float64 {
	return v.flat
}

// For 取指定腿型分支的重量
func (v BeValue) For(c LegCategory) (float64, bool) {
	if v.conditional == nil {
		return v.flat, true
	}
	w, ok := v.conditional[c]
	return w, ok
}

// Branches 返回分支副本
func (v BeValue) Branches() map[LegCategory]float64 {
	if v.conditional == nil {
		return nil
	}
	out := make(map[LegCategory]float64, len(v.conditional))
	for k, w := range v.conditional {
		out[k] = w
	}
	return out
}
