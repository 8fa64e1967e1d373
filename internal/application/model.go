package application

import (
	"fmt"
	"strings"

	"github.com/JonMunkholm/promomod/internal/admin"
	"github.com/JonMunkholm/promomod/internal/core"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the bubbletea model for the terminal UI.
type Model struct {
	provider *core.Provider
	reloader *admin.Reloader

	menu   *Menu
	cursor int

	// wizard state: chosen holds the fields the user confirmed, in walk
	// order; sel holds their values.
	inWizard bool
	chosen   []core.FieldKey
	sel      core.Selection
	optIdx   int

	status string
	err    error
}

// New returns a model over provider. reloader may be nil, which hides the
// reload action.
func New(provider *core.Provider, reloader *admin.Reloader) *Model {
	m := &Model{provider: provider, reloader: reloader}
	m.menu = buildMenuTree(m)
	return m
}

// Run starts the program on the terminal's alternate screen.
func Run(provider *core.Provider, reloader *admin.Reloader) error {
	_, err := tea.NewProgram(New(provider, reloader), tea.WithAltScreen()).Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StatusMsg:
		m.status, m.err = string(msg), nil
		return m, nil
	case ErrMsg:
		m.status, m.err = "", msg.Err
		return m, nil
	case startWizard:
		m.inWizard = true
		m.chosen = nil
		m.sel = core.Selection{}
		m.optIdx = 0
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.inWizard {
			return m.updateWizard(msg)
		}
		return m.updateMenu(msg)
	}
	return m, nil
}

func (m *Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.menu.Items)-1 {
			m.cursor++
		}
	case "esc", "backspace":
		if m.menu.Parent != nil {
			m.menu, m.cursor = m.menu.Parent, 0
		}
	case "enter":
		item := m.menu.Items[m.cursor]
		switch {
		case item.Submenu != nil:
			m.menu, m.cursor = item.Submenu, 0
		case item.Label == "Back" && m.menu.Parent != nil:
			m.menu, m.cursor = m.menu.Parent, 0
		case item.Action != nil:
			m.status, m.err = "", nil
			return m, item.Action()
		}
	}
	return m, nil
}

// current returns the walked form and the field awaiting a choice, if any.
func (m *Model) current() (core.Form, *core.FieldState) {
	form := m.provider.Current().Walk(m.sel)
	if len(m.chosen) < len(form.Fields) {
		return form, &form.Fields[len(m.chosen)]
	}
	return form, nil
}

func (m *Model) updateWizard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	_, field := m.current()

	switch msg.String() {
	case "q":
		m.inWizard = false
	case "up", "k":
		if m.optIdx > 0 {
			m.optIdx--
		}
	case "down", "j":
		if field != nil && m.optIdx < len(field.Options)-1 {
			m.optIdx++
		}
	case "esc", "backspace":
		if len(m.chosen) == 0 {
			m.inWizard = false
			return m, nil
		}
		last := m.chosen[len(m.chosen)-1]
		m.chosen = m.chosen[:len(m.chosen)-1]
		delete(m.sel, last)
		m.optIdx = 0
	case "enter":
		if field == nil || len(field.Options) == 0 {
			return m, nil
		}
		m.sel[field.Key] = field.Options[m.optIdx]
		m.chosen = append(m.chosen, field.Key)
		m.optIdx = 0
	}
	return m, nil
}

func (m *Model) View() string {
	var b strings.Builder
	if m.inWizard {
		m.viewWizard(&b)
	} else {
		m.viewMenu(&b)
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render(core.FormatUserError(m.err)) + "\n")
	} else if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}
	return b.String()
}

func (m *Model) viewMenu(b *strings.Builder) {
	b.WriteString(titleStyle.Render(m.menu.Title) + "\n")
	for i, item := range m.menu.Items {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> "+item.Label) + "\n")
		} else {
			b.WriteString("  " + item.Label + "\n")
		}
	}
	b.WriteString(helpStyle.Render("↑/↓ move · enter select · esc back · q quit"))
}

func (m *Model) viewWizard(b *strings.Builder) {
	form, field := m.current()
	b.WriteString(titleStyle.Render("Build PROMOMODALIDAD") + "\n")

	for _, key := range m.chosen {
		for _, fs := range form.Fields {
			if fs.Key == key {
				b.WriteString(chosenStyle.Render(fmt.Sprintf("%s: %s", fs.Label, fs.Value)) + "\n")
			}
		}
	}

	switch {
	case field != nil && len(field.Options) == 0:
		b.WriteString(labelStyle.Render(field.Label) + "\n")
		b.WriteString(noticeStyle.Render(form.Notice) + "\n")
	case field != nil:
		b.WriteString(labelStyle.Render(field.Label) + "\n")
		for i, opt := range field.Options {
			if i == m.optIdx {
				b.WriteString(cursorStyle.Render("> "+opt) + "\n")
			} else {
				b.WriteString("  " + opt + "\n")
			}
		}
	case form.Notice != "":
		b.WriteString(noticeStyle.Render(form.Notice) + "\n")
	default:
		m.viewOutcome(b)
	}
	b.WriteString(helpStyle.Render("↑/↓ move · enter choose · esc back · q menu"))
}

func (m *Model) viewOutcome(b *strings.Builder) {
	o := m.provider.Current().Resolve(m.sel)
	for _, f := range o.Metadata {
		b.WriteString(chosenStyle.Render(fmt.Sprintf("%s: %s", f.Label, f.Value)) + "\n")
	}
	if !o.HasCode() {
		b.WriteString(incompleteStyle.Render("No promotion or modality matches this selection") + "\n")
		return
	}
	b.WriteString(codeStyle.Render(o.Code.String) + "\n")
}

// Code returns the code for the wizard's current selection, if complete.
func (m *Model) Code() (string, bool) {
	o := m.provider.Current().Resolve(m.sel)
	if len(m.chosen) < len(o.Fields) || !o.HasCode() {
		return "", false
	}
	return o.Code.String, true
}
