// Package units maps length-unit names reported by CAD files to display symbols.
//
// Matching is exact and case-insensitive against each unit's name and aliases,
// so "MILLIMETRE" (STEP), "millimeter" (3MF) and "mm" resolve to the same Unit.
package units

import (
	"sort"
	"strings"
)

// UnknownSymbol is shown when no unit name is available
const UnknownSymbol = "?"

// Unit is a length unit
type Unit struct {
	Name      string   `json:"name" yaml:"name"`
	Symbol    string   `json:"symbol" yaml:"symbol"`
	MetersPer float64  `json:"metersPer" yaml:"metersPer"`
	Aliases   []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

// Table resolves unit names to units
type Table struct {
	units []Unit
	index map[string]int
}

var defaultUnits = []Unit{
	{Name: "micron", Symbol: "µm", MetersPer: 1e-6, Aliases: []string{"micrometre", "micrometer", "um", "µm"}},
	{Name: "millimetre", Symbol: "mm", MetersPer: 1e-3, Aliases: []string{"millimeter", "mm"}},
	{Name: "centimetre", Symbol: "cm", MetersPer: 1e-2, Aliases: []string{"centimeter", "cm"}},
	{Name: "metre", Symbol: "m", MetersPer: 1, Aliases: []string{"meter", "m"}},
	{Name: "inch", Symbol: "in", MetersPer: 0.0254, Aliases: []string{"inches", "in"}},
	{Name: "foot", Symbol: "ft", MetersPer: 0.3048, Aliases: []string{"feet", "ft"}},
}

// Default is the built-in table
var Default = NewTable(defaultUnits)

// NewTable builds a table from units; later entries win on duplicate names
func NewTable(units []Unit) *Table {
	t := &Table{index: make(map[string]int)}
	for _, u := range units {
		t.add(u)
	}
	return t
}

func (t *Table) add(u Unit) {
	t.units = append(t.units, u)
	i := len(t.units) - 1
	t.index[normalize(u.Name)] = i
	for _, alias := range u.Aliases {
		t.index[normalize(alias)] = i
	}
}

// WithAliases returns a copy of the table where each alias resolves to the
// unit named (or symbolised) by its target. Targets that are not in the
// table become new units using the target as symbol.
func (t *Table) WithAliases(aliases map[string]string) *Table {
	out := NewTable(t.units)

	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, alias := range names {
		target := aliases[alias]
		if i, ok := out.index[normalize(target)]; ok {
			u := out.units[i]
			u.Aliases = append(append([]string(nil), u.Aliases...), alias)
			out.units[i] = u
			out.index[normalize(alias)] = i
			continue
		}
		out.add(Unit{Name: alias, Symbol: target})
	}
	return out
}

// Lookup finds a unit by name or alias
func (t *Table) Lookup(name string) (Unit, bool) {
	i, ok := t.index[normalize(name)]
	if !ok {
		return Unit{}, false
	}
	return t.units[i], true
}

// Symbol returns the display symbol for name. Unknown names are returned
// unchanged and an empty name yields UnknownSymbol.
func (t *Table) Symbol(name string) string {
	if strings.TrimSpace(name) == "" {
		return UnknownSymbol
	}
	if u, ok := t.Lookup(name); ok {
		return u.Symbol
	}
	return name
}

// Units returns the table entries in insertion order
func (t *Table) Units() []Unit {
	out := make([]Unit, len(t.units))
	copy(out, t.units)
	return out
}

// Lookup finds a unit in the default table
func Lookup(name string) (Unit, bool) {
	return Default.Lookup(name)
}

// Symbol returns the display symbol from the default table
func Symbol(name string) string {
	return Default.Symbol(name)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
