package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/atomicstack/minimenu/internal/dom"
	"github.com/atomicstack/minimenu/internal/menu"
	"github.com/pelletier/go-toml/v2"
)

// MenuFile is the decoded menu definition: the panels that make up the
// scene, the menus bound inside them and the commands run for tokens.
type MenuFile struct {
	Panels  []Panel  `toml:"panel"`
	Menus   []Menu   `toml:"menu"`
	Actions []Action `toml:"action"`
}

// Panel is a titled column of rows. It is the context element of the menus
// that name it.
type Panel struct {
	ID    string `toml:"id"`
	Title string `toml:"title"`
	Rows  []Row  `toml:"row"`
}

// Row is one selectable line. Tags become element classes, so selectors and
// item requirements can match on them.
type Row struct {
	ID    string   `toml:"id"`
	Label string   `toml:"label"`
	Tags  []string `toml:"tags"`
}

// Menu binds a list of items to rows matching Selector inside Panel. An
// empty panel binds the whole screen.
type Menu struct {
	Panel    string     `toml:"panel"`
	Selector string     `toml:"selector"`
	Trigger  string     `toml:"trigger"`
	Items    []MenuItem `toml:"item"`
}

// MenuItem describes one entry. When Requires names a tag the target row
// lacks, the entry is shown disabled with Reason as its annotation.
type MenuItem struct {
	Label    string `toml:"label"`
	Token    string `toml:"token"`
	Icon     string `toml:"icon"`
	Hint     string `toml:"hint"`
	Requires string `toml:"requires"`
	Reason   string `toml:"reason"`
}

// Action maps a token to a shell command. "{target}" in the command expands
// to the id of the row the menu was opened on.
type Action struct {
	Token   string `toml:"token"`
	Command string `toml:"command"`
}

const defaultTrigger = "contextmenu"

// LoadMenuFile reads and decodes path.
func LoadMenuFile(path string) (MenuFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MenuFile{}, fmt.Errorf("read menu file: %w", err)
	}
	mf, err := ParseMenuFile(data)
	if err != nil {
		return MenuFile{}, fmt.Errorf("%s: %w", path, err)
	}
	return mf, nil
}

// ParseMenuFile decodes and validates TOML menu definitions.
func ParseMenuFile(data []byte) (MenuFile, error) {
	var mf MenuFile
	if err := toml.Unmarshal(data, &mf); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return MenuFile{}, fmt.Errorf("decode menu file (line %d, column %d): %w\n%s", row, col, err, derr.String())
		}
		return MenuFile{}, fmt.Errorf("decode menu file: %w", err)
	}
	mf.applyDefaults()
	if err := mf.Validate(); err != nil {
		return MenuFile{}, err
	}
	return mf, nil
}

func (mf *MenuFile) applyDefaults() {
	for i := range mf.Menus {
		if strings.TrimSpace(mf.Menus[i].Trigger) == "" {
			mf.Menus[i].Trigger = defaultTrigger
		}
	}
}

// Validate checks cross references the decoder cannot.
func (mf MenuFile) Validate() error {
	ids := make(map[string]string)
	claim := func(id, owner string) error {
		if strings.HasPrefix(id, menu.IDPrefix) {
			return fmt.Errorf("%s: id %q uses the reserved prefix %q", owner, id, menu.IDPrefix)
		}
		if prev, ok := ids[id]; ok {
			return fmt.Errorf("duplicate id %q (%s and %s)", id, prev, owner)
		}
		ids[id] = owner
		return nil
	}
	panels := make(map[string]bool, len(mf.Panels))
	for i, p := range mf.Panels {
		if strings.TrimSpace(p.ID) == "" {
			return fmt.Errorf("panel %d: missing id", i)
		}
		if err := claim(p.ID, "panel "+p.ID); err != nil {
			return err
		}
		panels[p.ID] = true
		for j, r := range p.Rows {
			if strings.TrimSpace(r.Label) == "" {
				return fmt.Errorf("panel %s row %d: missing label", p.ID, j)
			}
			if r.ID == "" {
				continue
			}
			if err := claim(r.ID, "row in "+p.ID); err != nil {
				return err
			}
		}
	}
	for i, m := range mf.Menus {
		if m.Panel != "" && !panels[m.Panel] {
			return fmt.Errorf("menu %d: unknown panel %q", i, m.Panel)
		}
		if len(m.Items) == 0 {
			return fmt.Errorf("menu %d: no items", i)
		}
		for j, it := range m.Items {
			if dom.Reserved(it.Token) {
				return fmt.Errorf("menu %d item %d: token %q is a reserved event name", i, j, it.Token)
			}
		}
	}
	seen := make(map[string]bool, len(mf.Actions))
	for i, a := range mf.Actions {
		if strings.TrimSpace(a.Token) == "" || strings.TrimSpace(a.Command) == "" {
			return fmt.Errorf("action %d: token and command are required", i)
		}
		if dom.Reserved(a.Token) {
			return fmt.Errorf("action %d: token %q is a reserved event name", i, a.Token)
		}
		if seen[a.Token] {
			return fmt.Errorf("action %d: duplicate token %q", i, a.Token)
		}
		seen[a.Token] = true
	}
	return nil
}

// Action returns the command configured for token.
func (mf MenuFile) Action(token string) (Action, bool) {
	for _, a := range mf.Actions {
		if a.Token == token {
			return a, true
		}
	}
	return Action{}, false
}

// DefaultMenuFile returns the built-in demo used when no file is given.
func DefaultMenuFile() MenuFile {
	mf, err := ParseMenuFile([]byte(defaultMenus))
	if err != nil {
		panic(fmt.Sprintf("built-in menu file: %v", err))
	}
	return mf
}

const defaultMenus = `
[[panel]]
id = "files"
title = "Files"

  [[panel.row]]
  id = "readme"
  label = "README.md"
  tags = ["file", "writable"]

  [[panel.row]]
  id = "config"
  label = "config.toml"
  tags = ["file"]

  [[panel.row]]
  id = "notes"
  label = "notes.txt"
  tags = ["file", "writable"]

[[panel]]
id = "tasks"
title = "Tasks"

  [[panel.row]]
  id = "build"
  label = "build"
  tags = ["task", "idle"]

  [[panel.row]]
  id = "deploy"
  label = "deploy"
  tags = ["task"]

[[menu]]
panel = "files"
selector = ".file"

  [[menu.item]]
  label = "Open"
  token = "open"
  icon = ">"
  hint = "o"

  [[menu.item]]
  label = "Rename"
  token = "rename"
  requires = "writable"
  reason = "read only"

  [[menu.item]]
  label = "Delete"
  token = "delete"
  icon = "x"
  requires = "writable"
  reason = "read only"

[[menu]]
panel = "tasks"
selector = ".task"

  [[menu.item]]
  label = "Run"
  token = "run"
  requires = "idle"
  reason = "running"

  [[menu.item]]
  label = "Show logs"
  token = "logs"

[[action]]
token = "logs"
command = "echo logs for {target}"
`
