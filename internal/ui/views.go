package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/emphub/internal/dashboard"
	"github.com/five82/emphub/internal/model"
)

// column describes one table column. Optional columns are dropped in
// compact layouts.
type column struct {
	title    string
	width    int
	optional bool
}

// renderContent renders the active tab inside a titled box.
func (m Model) renderContent() string {
	width := m.width
	height := max(m.height-chromeHeight, 5)
	focused := m.form != nil
	bgColor := m.theme.SurfaceAlt
	if focused {
		bgColor = m.theme.FocusBg
	}
	inner := width - 4

	tab := m.activeTab()
	var content string
	switch tab {
	case dashboard.Overview:
		content = m.renderOverview(inner, bgColor)
	case dashboard.Leaves:
		content = m.renderLeaves(inner, bgColor)
	case dashboard.Timesheets:
		content = m.renderTimesheets(inner, bgColor)
	case dashboard.Allocations:
		content = m.renderAllocations(inner, bgColor)
	case dashboard.Profile:
		content = m.renderProfile(inner, bgColor)
	}

	return m.renderTitledBox(m.contentTitle(tab), padLines(content, bgColor), width, height, focused)
}

func (m Model) contentTitle(tab dashboard.Tab) string {
	title := tab.String()
	switch tab {
	case dashboard.Leaves:
		title = fmt.Sprintf("%s (%d)", title, len(m.dash.FilteredLeaves()))
	case dashboard.Timesheets:
		title = fmt.Sprintf("%s (%d)", title, len(m.dash.FilteredTimesheets()))
	case dashboard.Allocations:
		title = fmt.Sprintf("%s (%d)", title, len(m.dash.FilteredAllocations()))
	}
	if m.dash.Query() != "" && tab != dashboard.Overview && tab != dashboard.Profile {
		title += " matching \"" + truncate(m.dash.Query(), 20) + "\""
	}
	return title
}

// padLines indents every line by one column.
func padLines(content, bgColor string) string {
	bg := NewBgStyle(bgColor)
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = bg.Space() + line
	}
	return strings.Join(lines, "\n")
}

// renderTitledBox renders content in a bordered box with the title embedded
// in the top border.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	var borderColorStr, bgColorStr string
	if focused {
		borderColorStr = m.theme.BorderFocus
		bgColorStr = m.theme.FocusBg
	} else {
		borderColorStr = m.theme.Border
		bgColorStr = m.theme.SurfaceAlt
	}
	bg := NewBgStyle(bgColorStr)
	bgColor := lipgloss.Color(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	title = truncate(title, max(innerWidth-4, 1))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth).Background(bgColor)
	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)

	lines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(lines, "\n") + "\n" + bottomBorder
}

// renderOverview renders the welcome line and statistics cards.
func (m Model) renderOverview(width int, bgColor string) string {
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)
	stats := m.dash.Stats(m.now())
	user := m.dash.User()

	name := user.Name
	if first, _, ok := strings.Cut(name, " "); ok {
		name = first
	}

	type stat struct {
		label string
		value string
		style lipgloss.Style
	}
	remainingStyle := styles.SuccessText
	if stats.LeaveDaysRemaining() == 0 {
		remainingStyle = styles.DangerText
	}
	pendingStyle := styles.Text
	if stats.PendingRequests > 0 {
		pendingStyle = styles.WarningText
	}
	items := []stat{
		{"Leave days used", fmt.Sprintf("%d / %d", stats.LeaveDaysUsed, stats.LeaveAllowance), styles.Text},
		{"Leave days remaining", strconv.Itoa(stats.LeaveDaysRemaining()), remainingStyle},
		{"Hours this month", model.FormatHours(stats.HoursThisMonth), styles.Text},
		{"Active allocations", strconv.Itoa(stats.ActiveAllocations), styles.Text},
		{"Pending requests", strconv.Itoa(stats.PendingRequests), pendingStyle},
	}

	lines := []string{
		bg.Render("Welcome back, "+orDash(name)+"!", styles.AccentText.Bold(true)),
		bg.Render("Here is what's happening with your work today.", styles.MutedText),
		"",
	}
	for _, it := range items {
		lines = append(lines,
			bg.Render(padRight(it.label, 24), styles.MutedText)+bg.Render(it.value, it.style.Bold(true)))
	}

	if status := m.overviewStatus(); status != "" {
		lines = append(lines, "", bg.Render(truncate(status, width), styles.WarningText))
	}
	return strings.Join(lines, "\n")
}

func (m Model) overviewStatus() string {
	var parts []string
	for _, tab := range []dashboard.Tab{dashboard.Leaves, dashboard.Timesheets, dashboard.Allocations} {
		if s := m.dash.Status(tab); s != "" {
			parts = append(parts, tab.String()+": "+s)
		}
	}
	return strings.Join(parts, "; ")
}

func (m Model) renderLeaves(width int, bgColor string) string {
	if m.form != nil && m.form.tab == dashboard.Leaves {
		return m.renderForm(width, bgColor)
	}
	leaves := m.dash.FilteredLeaves()
	cols := []column{
		{"Type", 18, false},
		{"Start", 11, false},
		{"End", 11, false},
		{"Days", 5, false},
		{"Status", 10, false},
		{"Reason", 0, true},
	}
	rows := make([][]string, len(leaves))
	statuses := make([]string, len(leaves))
	for i, l := range leaves {
		rows[i] = []string{l.Type, l.StartDate, l.EndDate, strconv.Itoa(l.Days), l.Status, orDash(l.Reason)}
		statuses[i] = l.Status
	}
	return m.renderTable(cols, rows, statuses, 4, width, bgColor, "No leave requests yet. Press n to apply.")
}

func (m Model) renderTimesheets(width int, bgColor string) string {
	if m.form != nil && m.form.tab == dashboard.Timesheets {
		return m.renderForm(width, bgColor)
	}
	timesheets := m.dash.FilteredTimesheets()
	cols := []column{
		{"Date", 11, false},
		{"Project", 20, false},
		{"Hours", 6, false},
		{"Status", 10, false},
		{"Description", 0, true},
	}
	rows := make([][]string, len(timesheets))
	statuses := make([]string, len(timesheets))
	for i, ts := range timesheets {
		rows[i] = []string{ts.Date, ts.Project, model.FormatHours(ts.HoursWorked), ts.Status, orDash(ts.Description)}
		statuses[i] = ts.Status
	}
	return m.renderTable(cols, rows, statuses, 3, width, bgColor, "No timesheets yet. Press n to submit one.")
}

func (m Model) renderAllocations(width int, bgColor string) string {
	allocations := m.dash.FilteredAllocations()
	cols := []column{
		{"Project", 20, false},
		{"Role", 18, false},
		{"Start", 11, false},
		{"End", 11, false},
		{"Allocation", 10, false},
	}
	rows := make([][]string, len(allocations))
	for i, a := range allocations {
		rows[i] = []string{a.ProjectName, a.Role, a.StartDate, a.EndDate, a.Allocation}
	}
	return m.renderTable(cols, rows, nil, -1, width, bgColor, "No project allocations.")
}

// renderTable renders rows under a header line. statusCol names the column
// rendered as a status badge; -1 disables badges. A zero column width takes
// the remaining space.
func (m Model) renderTable(cols []column, rows [][]string, statuses []string, statusCol, width int, bgColor, empty string) string {
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	if len(rows) == 0 {
		msg := empty
		if m.dash.Query() != "" {
			msg = "No matches for \"" + m.dash.Query() + "\"."
		}
		return bg.Render(msg, styles.MutedText)
	}

	compact := m.width < LayoutCompactWidth
	visible := make([]int, 0, len(cols))
	fixed := 0
	for i, c := range cols {
		if compact && c.optional {
			continue
		}
		visible = append(visible, i)
		fixed += c.width + 2
	}
	widths := make([]int, len(cols))
	for _, i := range visible {
		widths[i] = cols[i].width
		if widths[i] == 0 {
			widths[i] = max(width-fixed, 8)
		}
	}

	header := make([]string, 0, len(visible))
	for _, i := range visible {
		header = append(header, bg.Render(cell(cols[i].title, widths[i]), styles.FaintText.Bold(true)))
	}
	lines := []string{strings.Join(header, bg.Spaces(2))}

	// Keep the selected row in view.
	avail := max(m.height-chromeHeight-3, 1)
	start := 0
	if m.selectedRow >= avail {
		start = m.selectedRow - avail + 1
	}

	for r := start; r < len(rows) && r < start+avail; r++ {
		selected := r == m.selectedRow
		rowBg := bgColor
		if selected {
			rowBg = m.theme.SelectionBg
		}
		rb := NewBgStyle(rowBg)
		text := styles.Text.Background(lipgloss.Color(rowBg))
		if selected {
			text = text.Foreground(lipgloss.Color(m.theme.SelectionText))
		}

		cells := make([]string, 0, len(visible))
		for _, i := range visible {
			value := cell(rows[r][i], widths[i])
			if i == statusCol && statuses != nil {
				badge := m.theme.Styles().StatusStyle(statuses[r]).Render(truncate(rows[r][i], widths[i]-2))
				cells = append(cells, badge+rb.Spaces(max(widths[i]-lipgloss.Width(badge), 0)))
				continue
			}
			cells = append(cells, rb.Render(value, text))
		}
		lines = append(lines, rb.FillLine(strings.Join(cells, rb.Spaces(2)), width))
	}
	return strings.Join(lines, "\n")
}

// renderProfile renders the user card and either the profile details or
// the edit form.
func (m Model) renderProfile(width int, bgColor string) string {
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)
	user := m.dash.User()

	avatar := lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Accent)).
		Foreground(lipgloss.Color(m.theme.Background)).
		Bold(true).
		Padding(0, 1).
		Render(user.Initial())

	lines := []string{
		avatar + bg.Spaces(2) + bg.Render(orDash(user.Name), styles.Text.Bold(true)),
		bg.Render(employeeID(user.ID), styles.FaintText) + bg.Spaces(2) +
			bg.Render(orDash(user.Email), styles.MutedText),
		bg.Render("Department", styles.FaintText) + bg.Space() + bg.Render("Engineering", styles.Text) + bg.Spaces(3) +
			bg.Render("Designation", styles.FaintText) + bg.Space() + bg.Render("Software Developer", styles.Text),
		"",
	}

	if m.form != nil && m.form.tab == dashboard.Profile {
		lines = append(lines, m.renderForm(width, bgColor))
		return strings.Join(lines, "\n")
	}

	editor := m.dash.Profile
	if msg := editor.LoadMessage(); msg != "" {
		lines = append(lines, bg.Render(msg, styles.DangerText), "")
	}

	p := editor.Profile()
	fields := []struct{ label, value string }{
		{"Phone", p.Phone},
		{"Date of birth", p.DateOfBirth},
		{"Address", p.Address},
		{"City", p.City},
		{"State", p.State},
		{"Country", p.Country},
		{"Postal code", p.PostalCode},
		{"Emergency contact", p.EmergencyContactName},
		{"Emergency phone", p.EmergencyContactPhone},
	}
	for _, f := range fields {
		lines = append(lines,
			bg.Render(padRight(f.label, labelWidth), styles.MutedText)+
				bg.Render(truncate(orDash(f.value), max(width-labelWidth, 8)), styles.Text))
	}
	return strings.Join(lines, "\n")
}
