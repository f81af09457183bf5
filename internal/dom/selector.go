package dom

import (
	"fmt"
	"strings"
)

// Selector matches elements by kind, id and classes. A selector is a
// comma-separated list of compound selectors such as "row.file",
// "#trash" or "*"; an element matches when any compound matches.
type Selector struct {
	source    string
	compounds []compound
}

type compound struct {
	kind    string
	id      string
	classes []string
}

// ParseSelector compiles a selector string. The empty string yields the
// empty selector, which matches nothing and is used for direct (non
// delegated) bindings.
func ParseSelector(s string) (Selector, error) {
	trimmed := strings.TrimSpace(s)
	sel := Selector{source: trimmed}
	if trimmed == "" {
		return sel, nil
	}
	for _, part := range strings.Split(trimmed, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return Selector{}, fmt.Errorf("selector %q: empty compound", s)
		}
		c, err := parseCompound(part)
		if err != nil {
			return Selector{}, fmt.Errorf("selector %q: %w", s, err)
		}
		sel.compounds = append(sel.compounds, c)
	}
	return sel, nil
}

// MustParseSelector is ParseSelector for selectors known at compile time.
func MustParseSelector(s string) Selector {
	sel, err := ParseSelector(s)
	if err != nil {
		panic(err)
	}
	return sel
}

func parseCompound(part string) (compound, error) {
	var c compound
	if strings.ContainsAny(part, " \t\n>+~[]:") {
		return c, fmt.Errorf("unsupported syntax in %q", part)
	}
	if part == "*" {
		return c, nil
	}
	i := 0
	for i < len(part) && part[i] != '.' && part[i] != '#' {
		i++
	}
	c.kind = part[:i]
	for i < len(part) {
		marker := part[i]
		j := i + 1
		for j < len(part) && part[j] != '.' && part[j] != '#' {
			j++
		}
		name := part[i+1 : j]
		if name == "" {
			return c, fmt.Errorf("dangling %q in %q", marker, part)
		}
		switch marker {
		case '#':
			if c.id != "" {
				return c, fmt.Errorf("multiple ids in %q", part)
			}
			c.id = name
		case '.':
			c.classes = append(c.classes, name)
		}
		i = j
	}
	return c, nil
}

// Empty reports whether the selector has no compounds.
func (s Selector) Empty() bool {
	return len(s.compounds) == 0
}

// String returns the normalised source text.
func (s Selector) String() string {
	return s.source
}

// Match reports whether the element satisfies the selector.
func (s Selector) Match(e *Element) bool {
	if e == nil {
		return false
	}
	for _, c := range s.compounds {
		if c.match(e) {
			return true
		}
	}
	return false
}

func (c compound) match(e *Element) bool {
	if c.kind != "" && c.kind != e.kind {
		return false
	}
	if c.id != "" && c.id != e.id {
		return false
	}
	for _, class := range c.classes {
		if !e.HasClass(class) {
			return false
		}
	}
	return true
}
