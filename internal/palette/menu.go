package palette

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	backAction    = "__back__"
	submenuPrefix = "__submenu__:"
)

// MenuItem is an entry of a menu tree. Items with a submenu open it when
// selected.
type MenuItem struct {
	Label     string
	Action    string
	Icon      string
	Meta      string
	IsHeader  bool
	IsDivider bool
	IsActive  bool
	IsUrgent  bool
	Submenu   []MenuItem
}

// IsParent reports whether the item opens a submenu.
func (m MenuItem) IsParent() bool {
	return len(m.Submenu) > 0
}

// Menu walks a menu tree with a backend. Each submenu starts with a back
// row, and cancelling a submenu returns to its parent.
type Menu struct {
	backend Backend
	prompt  string
	root    []MenuItem
	message string
}

func NewMenu(backend Backend, prompt string, items []MenuItem) *Menu {
	return &Menu{backend: backend, prompt: prompt, root: items}
}

// SetMessage sets the text of the launcher message bar.
func (m *Menu) SetMessage(msg string) {
	m.message = msg
}

// Show returns the action of the selected leaf, or ErrCancelled.
func (m *Menu) Show() (string, error) {
	return m.showLevel(m.root, nil)
}

func (m *Menu) showLevel(items []MenuItem, breadcrumb []string) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("menu: no items to show")
	}

	rows := make([]Item, 0, len(items)+1)
	if len(breadcrumb) > 0 {
		rows = append(rows, Item{Label: "← Back", Action: backAction, Icon: "go-previous"})
	}
	for i, item := range items {
		row := Item{
			Label:     item.Label,
			Action:    item.Action,
			Icon:      item.Icon,
			Meta:      item.Meta,
			IsHeader:  item.IsHeader,
			IsDivider: item.IsDivider,
			IsActive:  item.IsActive,
			IsUrgent:  item.IsUrgent,
		}
		if item.IsParent() {
			row.Label += " →"
			row.Action = submenuPrefix + strconv.Itoa(i)
			if row.Icon == "" {
				row.Icon = "folder"
			}
		}
		rows = append(rows, row)
	}

	prompt := m.prompt
	if len(breadcrumb) > 0 {
		prompt = breadcrumb[len(breadcrumb)-1]
	}

	for {
		selected, err := m.backend.Show(prompt, rows, m.message)
		if err != nil {
			return "", err
		}
		// dmenu cannot refuse headers and dividers.
		if selected.IsHeader || selected.IsDivider || strings.TrimSpace(selected.Action) == "" {
			continue
		}
		if selected.Action == backAction {
			return "", ErrCancelled
		}

		idxStr, ok := strings.CutPrefix(selected.Action, submenuPrefix)
		if !ok {
			return selected.Action, nil
		}
		idx, err := strconv.Atoi(idxStr)
		if err != nil || idx < 0 || idx >= len(items) || !items[idx].IsParent() {
			continue
		}
		action, err := m.showLevel(items[idx].Submenu, append(breadcrumb, items[idx].Label))
		if errors.Is(err, ErrCancelled) {
			continue
		}
		return action, err
	}
}
