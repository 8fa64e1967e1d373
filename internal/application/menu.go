// Package application is the terminal UI: a menu tree over the loaded
// tables and a step-by-step wizard that walks the platform cascade.
package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/JonMunkholm/promomod/internal/config"
	"github.com/JonMunkholm/promomod/internal/core"
	tea "github.com/charmbracelet/bubbletea"
)

/* ----------------------------------------
	MENU TREE
---------------------------------------- */

type MenuItem struct {
	Label   string
	Submenu *Menu
	Action  func() tea.Cmd
}

type Menu struct {
	Title  string
	Items  []MenuItem
	Parent *Menu
}

// Messages produced by menu actions.
type (
	StatusMsg   string
	ErrMsg      struct{ Err error }
	startWizard struct{}
)

/* ----------------------------------------
	MENU TREE DEFINITION
---------------------------------------- */

func linkParents(menu *Menu, parent *Menu) {
	menu.Parent = parent

	for i := range menu.Items {
		item := &menu.Items[i]

		if item.Label == "Back" {
			item.Submenu = parent
			continue
		}

		if item.Submenu != nil {
			linkParents(item.Submenu, menu)
		}
	}
}

func buildMenuTree(m *Model) *Menu {
	root := &Menu{
		Title: "PROMOMODALIDAD",
		Items: []MenuItem{
			{Label: "Build code ->", Action: func() tea.Cmd {
				return func() tea.Msg { return startWizard{} }
			}},
			{Label: "Tables ->", Submenu: loadTablesMenu(m)},
			{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
		},
	}

	linkParents(root, nil)

	return root
}

/* ----------------------------------------
	LOAD MENUS
---------------------------------------- */

func loadTablesMenu(m *Model) *Menu {
	items := []MenuItem{
		{Label: "Show status", Action: m.statusCmd},
		{Label: "Show column warnings", Action: m.warningsCmd},
	}
	if m.reloader != nil {
		items = append(items, MenuItem{Label: "Reload tables", Action: m.reloadCmd})
	}
	items = append(items, MenuItem{Label: "Back"})

	return &Menu{Title: "Tables", Items: items}
}

func (m *Model) statusCmd() tea.Cmd {
	store := m.provider.Current().Store()
	return func() tea.Msg {
		var b strings.Builder
		fmt.Fprintf(&b, "Snapshot %s from %s, loaded %s\n",
			store.ID, config.MaskURL(store.Source), store.LoadedAt.Format("2006-01-02 15:04:05 MST"))
		for _, def := range core.Tables() {
			fmt.Fprintf(&b, "  %-14s %d rows\n", def.Key, store.Table(def.Key).Len())
		}
		return StatusMsg(strings.TrimRight(b.String(), "\n"))
	}
}

func (m *Model) warningsCmd() tea.Cmd {
	ws := m.provider.Current().Store().Warnings()
	return func() tea.Msg {
		if len(ws) == 0 {
			return StatusMsg("No missing columns")
		}
		return StatusMsg("Missing columns: " + core.FormatWarnings(ws))
	}
}

func (m *Model) reloadCmd() tea.Cmd {
	return func() tea.Msg {
		store, err := m.reloader.Reload(context.Background(), "tui")
		if err != nil {
			return ErrMsg{Err: err}
		}
		return StatusMsg(fmt.Sprintf("Tables reloaded (snapshot %s)", store.ID))
	}
}
