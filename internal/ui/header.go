package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/emphub/internal/dashboard"
	"github.com/five82/emphub/internal/form"
)

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	// Header line
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderTabBar())
	b.WriteString("\n")

	b.WriteString(m.renderContent())
	b.WriteString("\n")

	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.renderStatusLine())

	return b.String()
}

// renderHeader renders the top bar with the signed-in user.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	user := m.dash.User()

	parts := []string{
		bg.Render("emphub", styles.Logo),
		bg.Render("Employee Dashboard", styles.MutedText),
		bg.Render(user.Initial(), styles.AccentText.Bold(true)) + bg.Space() +
			bg.Render(orDash(user.Name), styles.Text),
	}
	if m.width >= LayoutCompactWidth && user.Email != "" {
		parts = append(parts, bg.Render(user.Email, styles.FaintText))
	}
	if m.loading {
		parts = append(parts, bg.Render("Refreshing...", styles.WarningText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, 2))
}

// renderTabBar renders the tab strip, highlighting the active tab.
func (m Model) renderTabBar() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	active := m.activeTab()

	tabs := make([]string, 0, len(dashboard.AllTabs))
	for i, tab := range dashboard.AllTabs {
		label := fmt.Sprintf("%d %s", i+1, tab)
		if tab == active {
			tabs = append(tabs, styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, styles.InactiveTab.Render(label))
		}
	}
	return bg.FillLine(strings.Join(tabs, bg.Space()), m.width)
}

// renderCommandBar renders the key hints for the current context.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.searching:
		commands = []cmd{
			{"enter", "Apply"},
			{"esc", "Clear"},
		}
	case m.form != nil && m.form.tab == dashboard.Leaves:
		commands = []cmd{
			{"tab", "Next field"},
			{"←/→", "Leave type"},
			{"ctrl+s", "Submit"},
			{"esc", "Cancel"},
		}
	case m.form != nil:
		commands = []cmd{
			{"tab", "Next field"},
			{"ctrl+s", "Submit"},
			{"esc", "Cancel"},
		}
	default:
		commands = []cmd{
			{"1-5", "Tabs"},
			{"j/k", "Navigate"},
			{"/", "Search"},
		}
		if _, ok := m.dash.FormFor(m.activeTab()); ok {
			label := "New"
			if m.activeTab() == dashboard.Profile {
				label = "Edit"
			}
			commands = append(commands, cmd{"n", label})
		}
		commands = append(commands,
			cmd{"r", "Reload"},
			cmd{"L", "Logout"},
			cmd{"?", "More"},
		)
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	if q := m.dash.Query(); q != "" && !m.searching {
		segments = append(segments, bg.Render("/"+truncate(q, 18), styles.AccentText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(bg.Join(segments, 2))
}

// renderStatusLine shows the search input, the flash message or the form
// state, in that order of precedence.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)

	var content string
	switch {
	case m.searching:
		content = m.search.View()
	case m.flash.text != "":
		style := styles.Text
		switch m.flash.kind {
		case flashSuccess:
			style = styles.SuccessText
		case flashError:
			style = styles.DangerText
		}
		content = bg.Render(m.flash.text, style)
	default:
		if state, ok := m.formState(m.activeTab()); ok && state == form.Submitting {
			content = bg.Render("Submitting...", styles.WarningText)
		}
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Background)).
		Width(m.width).
		Render(" " + content)
}
