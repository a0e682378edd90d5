package catalog

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"towerweight/internal/model"
)

// 目录文件格式（YAML）
//
//	towers:
//	  - type: LA5
//	    basicTowerBody:
//	      "BASIC TOWER BODY WHEN WITH -4M & -5M LEG EXTENSIONS": 0
//	    bodyExtensions:
//	      E0: 0
//	      E3:
//	        "with -4M & -5M leg extensions": 0
//	        "with -3M to +2M leg extensions": 2151.75
//	    legExtensions:
//	      "+0M": 574.689
type fileCatalog struct {
	Towers []fileEntry `yaml:"towers"`
}

type fileEntry struct {
	Type           string                 `yaml:"type"`
	BasicTowerBody map[string]float64     `yaml:"basicTowerBody"`
	BodyExtensions map[string]fileBeValue `yaml:"bodyExtensions"`
	LegExtensions  map[string]float64     `yaml:"legExtensions"`
}

// fileBeValue 标量为固定重量，映射为按腿型分支
type fileBeValue struct {
	flat     float64
	branches map[string]float64
}

func (v *fileBeValue) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&v.flat)
	case yaml.MappingNode:
		v.branches = make(map[string]float64)
		return node.Decode(&v.branches)
	default:
		return fmt.Errorf("line %d: body extension must be a number or a mapping", node.Line)
	}
}

func (v fileBeValue) MarshalYAML() (interface{}, error) {
	if v.branches != nil {
		return v.branches, nil
	}
	return v.flat, nil
}

// Decode 从 YAML 读取目录并校验
func Decode(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var fc fileCatalog
	if err := dec.Decode(&fc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	entries := make([]*Entry, 0, len(fc.Towers))
	for i, fe := range fc.Towers {
		e, err := fe.toEntry()
		if err != nil {
			return nil, fmt.Errorf("decode catalog: towers[%d]: %w", i, err)
		}
		entries = append(entries, e)
	}
	return New(entries...)
}

// LoadFile 从文件加载目录
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

func (fe fileEntry) toEntry() (*Entry, error) {
	tower, ok := model.ParseTowerType(fe.Type)
	if !ok {
		return nil, fmt.Errorf("unknown tower type %q", fe.Type)
	}

	btb := make(map[model.BtbLabel]float64, len(fe.BasicTowerBody))
	for label, w := range fe.BasicTowerBody {
		btb[model.BtbLabel(label)] = w
	}

	be := make(map[model.BeCode]model.BeValue, len(fe.BodyExtensions))
	for code, v := range fe.BodyExtensions {
		bc := model.BeCode(code)
		if !isKnownBe(bc) {
			return nil, fmt.Errorf("unknown body extension %q", code)
		}
		if v.branches == nil {
			be[bc] = model.FlatBe(v.flat)
			continue
		}
		for k := range v.branches {
			if c := model.LegCategory(k); c != model.LegCategoryShort && c != model.LegCategoryStandard {
				return nil, fmt.Errorf("body extension %s: unknown leg category %q", code, k)
			}
		}
		short, ok := v.branches[string(model.LegCategoryShort)]
		if !ok {
			return nil, fmt.Errorf("body extension %s: branch %q is missing", code, model.LegCategoryShort)
		}
		standard, ok := v.branches[string(model.LegCategoryStandard)]
		if !ok {
			return nil, fmt.Errorf("body extension %s: branch %q is missing", code, model.LegCategoryStandard)
		}
		be[bc] = model.ConditionalBe(short, standard)
	}

	legs := make(map[model.LegCode]float64, len(fe.LegExtensions))
	for code, w := range fe.LegExtensions {
		lc := model.LegCode(code)
		if !isKnownLeg(lc) {
			return nil, fmt.Errorf("unknown leg extension %q", code)
		}
		legs[lc] = w
	}

	return NewEntry(tower, btb, be, legs), nil
}

func isKnownLeg(code model.LegCode) bool {
	for _, c := range model.AllLegCodes {
		if c == code {
			return true
		}
	}
	return false
}

// WriteYAML 以 YAML 输出目录（与 Decode 格式一致）
func WriteYAML(w io.Writer, c *Catalog) error {
	fc := fileCatalog{Towers: make([]fileEntry, 0, len(c.entries))}
	for _, tower := range c.Towers() {
		e := c.entries[tower]
		fe := fileEntry{
			Type:           string(tower),
			BasicTowerBody: make(map[string]float64, len(e.btb)),
			BodyExtensions: make(map[string]fileBeValue, len(e.be)),
			LegExtensions:  make(map[string]float64, len(e.legs)),
		}
		for label, wt := range e.btb {
			fe.BasicTowerBody[string(label)] = wt
		}
		for code, v := range e.be {
			if !v.IsConditional() {
				fe.BodyExtensions[string(code)] = fileBeValue{flat: v.Flat()}
				continue
			}
			branches := make(map[string]float64, 2)
			for k, wt := range v.Branches() {
				branches[string(k)] = wt
			}
			fe.BodyExtensions[string(code)] = fileBeValue{branches: branches}
		}
		for code, wt := range e.legs {
			fe.LegExtensions[string(code)] = wt
		}
		fc.Towers = append(fc.Towers, fe)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(fc); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return enc.Close()
}
