package vr

import (
	"fmt"
	"strings"
)

// Components of a person name group.
const (
	Family = iota
	Given
	Middle
	Prefix
	Suffix
)

// Component groups of a person name, separated by '='.
const (
	Alphabetic = iota
	Ideographic
	Phonetic
)

// PersonName holds the components of a PN value as
// family^given^middle^prefix^suffix, in up to three groups.
type PersonName [3][5]string

// ParsePersonName splits a PN value into its components.
func ParsePersonName(s string) (PersonName, error) {
	var pn PersonName
	s = strings.TrimSpace(s)
	if s == "" {
		return pn, nil
	}
	groups := strings.Split(s, "=")
	if len(groups) > 3 {
		return pn, fmt.Errorf("invalid PN value %q: too many component groups", s)
	}
	for g, group := range groups {
		comps := strings.Split(group, "^")
		if len(comps) > 5 {
			return pn, fmt.Errorf("invalid PN value %q: too many components", s)
		}
		for c, comp := range comps {
			pn[g][c] = strings.TrimSpace(comp)
		}
	}
	return pn, nil
}

// Get returns a component of the alphabetic group.
func (pn PersonName) Get(component int) string {
	return pn[Alphabetic][component]
}

// Set replaces a component of `group`.
func (pn *PersonName) Set(group, component int, s string) {
	pn[group][component] = strings.TrimSpace(s)
}

// Group renders one component group. With `trim` unset, all four delimiters are written.
func (pn PersonName) Group(group int, trim bool) string {
	last := -1
	for c := range pn[group] {
		if pn[group][c] != "" {
			last = c
		}
	}
	if last < 0 {
		return ""
	}
	if !trim {
		last = Suffix
	}
	return strings.Join(pn[group][:last+1], "^")
}

func (pn PersonName) String() string {
	last := -1
	for g := range pn {
		if pn.Group(g, true) != "" {
			last = g
		}
	}
	parts := make([]string, last+1)
	for g := range parts {
		parts[g] = pn.Group(g, true)
	}
	return strings.Join(parts, "=")
}
