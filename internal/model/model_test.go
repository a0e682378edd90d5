package model

import (
	"errors"
	"testing"
)

func TestParseTowerType(t *testing.T) {
	tests := []struct {
		in   string
		want TowerType
		ok   bool
	}{
		{"NS5", TowerNS5, true},
		{" la5 ", TowerLA5, true},
		{"HA5/DE5", TowerHA5DE5, true},
		{"HA5-DE5", TowerHA5DE5, true},
		{"ha5_de5", TowerHA5DE5, true},
		{"HA5", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseTowerType(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseTowerType(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
	if TowerHA5DE5.Slug() != "HA5-DE5" {
		t.Errorf("Slug = %q", TowerHA5DE5.Slug())
	}
}

func TestParseSelection(t *testing.T) {
	sel, err := ParseSelection("MA5", "e6", []string{"-5m", "", "+1M"})
	if err != nil {
		t.Fatalf("ParseSelection: %v", err)
	}
	want := Selection{
		Tower:         TowerMA5,
		BodyExtension: BeE6,
		Legs:          [4]LegCode{LegM5, LegP0, LegP1, LegP0},
	}
	if sel != want {
		t.Errorf("sel = %+v, want %+v", sel, want)
	}

	sel, err = ParseSelection("NS5", "", nil)
	if err != nil || sel != DefaultSelection(TowerNS5) {
		t.Errorf("defaults: sel = %+v, err = %v", sel, err)
	}

	_, err = ParseSelection("ZZ1", "E0", nil)
	var se *SelectionError
	if !errors.As(err, &se) || se.Field != "tower" || !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("unknown tower err = %v", err)
	}

	_, err = ParseSelection("NS5", "E0", []string{"+0M", "+0M", "+0M", "+0M", "+0M"})
	if !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("five legs err = %v", err)
	}
}

func TestCategoryOf(t *testing.T) {
	for _, l := range AllLegCodes {
		want := LegCategoryStandard
		if l == LegM4 || l == LegM5 {
			want = LegCategoryShort
		}
		if got := CategoryOf(l); got != want {
			t.Errorf("CategoryOf(%s) = %q, want %q", l, got, want)
		}
	}
}

func TestBeValue(t *testing.T) {
	flat := FlatBe(1398.814)
	if flat.IsConditional() {
		t.Fatal("flat value reported as conditional")
	}
	if w, ok := flat.For(LegCategoryShort); !ok || w != 1398.814 {
		t.Errorf("flat.For = %v, %v", w, ok)
	}

	cond := ConditionalBe(0, 2151.75)
	if w, _ := cond.For(LegCategoryShort); w != 0 {
		t.Errorf("short branch = %v", w)
	}
	if w, _ := cond.For(LegCategoryStandard); w != 2151.75 {
		t.Errorf("standard branch = %v", w)
	}

	b := cond.Branches()
	b[LegCategoryShort] = 99
	if w, _ := cond.For(LegCategoryShort); w != 0 {
		t.Error("Branches returned shared map")
	}
}

func TestResolvedResultLegExtensions(t *testing.T) {
	r := ResolvedResult{Legs: [4]LegCode{LegM4, LegP0, LegP2, LegM1}}
	if got := r.LegExtensions(); got != "-4M, +0M, +2M, -1M" {
		t.Errorf("LegExtensions = %q", got)
	}
	if !DefaultSelection(TowerNS5).HasLeg(LegP0) || DefaultSelection(TowerNS5).HasLeg(LegM5) {
		t.Error("HasLeg mismatch")
	}
}
