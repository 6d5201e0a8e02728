package ui

import (
	"errors"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/emphub/internal/dashboard"
	"github.com/five82/emphub/internal/form"
	"github.com/five82/emphub/internal/model"
)

// leaveTypeField is chosen with left/right instead of typed.
const leaveTypeField = "leaveType"

var fieldLabels = map[string]string{
	"leaveType":             "Leave type",
	"startDate":             "Start date",
	"endDate":               "End date",
	"reason":                "Reason",
	"date":                  "Date",
	"project":               "Project",
	"hoursWorked":           "Hours worked",
	"description":           "Description",
	"phone":                 "Phone",
	"dateOfBirth":           "Date of birth",
	"address":               "Address",
	"city":                  "City",
	"state":                 "State",
	"country":               "Country",
	"postalCode":            "Postal code",
	"emergencyContactName":  "Emergency contact",
	"emergencyContactPhone": "Emergency phone",
}

var fieldPlaceholders = map[string]string{
	"startDate":   "YYYY-MM-DD",
	"endDate":     "YYYY-MM-DD",
	"date":        "YYYY-MM-DD",
	"dateOfBirth": "YYYY-MM-DD",
	"hoursWorked": "0-24",
}

func fieldLabel(name string) string {
	if label, ok := fieldLabels[name]; ok {
		return label
	}
	return name
}

// formInputs mirrors one form session's draft in text inputs.
type formInputs struct {
	tab    dashboard.Tab
	fields []string
	inputs []textinput.Model
	focus  int
}

func newFormInputs(tab dashboard.Tab, f dashboard.Form, width int) *formInputs {
	fields := f.Fields()
	fi := &formInputs{tab: tab, fields: fields, inputs: make([]textinput.Model, len(fields))}
	for i, name := range fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = fieldPlaceholders[name]
		ti.CharLimit = 200
		ti.Width = width
		ti.SetValue(f.Value(name))
		fi.inputs[i] = ti
	}
	return fi
}

func (fi *formInputs) focused() string {
	return fi.fields[fi.focus]
}

// focusField moves focus to index i, wrapping around.
func (fi *formInputs) focusField(i int) tea.Cmd {
	n := len(fi.inputs)
	fi.inputs[fi.focus].Blur()
	fi.focus = ((i % n) + n) % n
	return fi.inputs[fi.focus].Focus()
}

func (fi *formInputs) setWidth(width int) {
	for i := range fi.inputs {
		fi.inputs[i].Width = width
	}
}

func (m Model) inputWidth() int {
	return max(m.width-labelWidth-8, 10)
}

const labelWidth = 20

// openForm toggles the active tab's form open and builds its inputs.
func (m Model) openForm() (tea.Model, tea.Cmd) {
	tab := m.activeTab()
	f, ok := m.dash.FormFor(tab)
	if !ok {
		return m, nil
	}
	if err := f.Toggle(); err != nil {
		cmd := m.setFlash(err.Error(), flashError)
		return m, cmd
	}
	if f.State() != form.Open {
		m.form = nil
		return m, nil
	}
	m.form = newFormInputs(tab, f, m.inputWidth())
	return m, m.form.focusField(0)
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f, ok := m.dash.FormFor(m.form.tab)
	if !ok {
		m.form = nil
		return m, nil
	}
	if m.submitting || f.State() == form.Submitting {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		if err := f.Toggle(); err != nil {
			cmd := m.setFlash(err.Error(), flashError)
			return m, cmd
		}
		m.form = nil
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		m.submitting = true
		return m, submitCmd(m.ctx, m.dash, m.form.tab)

	case key.Matches(msg, m.keys.NextField):
		return m, m.form.focusField(m.form.focus + 1)

	case key.Matches(msg, m.keys.PrevField):
		return m, m.form.focusField(m.form.focus - 1)
	}

	name := m.form.focused()
	if name == leaveTypeField {
		delta := 0
		switch {
		case key.Matches(msg, m.keys.CycleNext):
			delta = 1
		case key.Matches(msg, m.keys.CyclePrev):
			delta = -1
		}
		if delta != 0 {
			next := model.NextLeaveType(f.Value(name), delta)
			if err := f.UpdateField(name, next); err != nil {
				log.Printf("update %s: %v", name, err)
			}
			m.form.inputs[m.form.focus].SetValue(next)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	if err := f.UpdateField(name, m.form.inputs[m.form.focus].Value()); err != nil {
		log.Printf("update %s: %v", name, err)
	}
	return m, cmd
}

func (m Model) handleSubmitResult(msg submitResultMsg) (tea.Model, tea.Cmd) {
	m.submitting = false
	f, ok := m.dash.FormFor(msg.tab)
	if ok && f.State() == form.Closed {
		m.form = nil
	}
	if msg.err == nil {
		m.selectedRow = 0
		cmd := m.setFlash(msg.message, flashSuccess)
		return m, cmd
	}
	text := msg.message
	if text == "" {
		text = msg.err.Error()
	}
	if !form.IsValidation(msg.err) && !errors.Is(msg.err, form.ErrNotOpen) {
		log.Printf("%s submit: %v", msg.tab, msg.err)
	}
	cmd := m.setFlash(text, flashError)
	return m, cmd
}

// renderForm renders the open form's fields, one per line.
func (m Model) renderForm(width int, bgColor string) string {
	if m.form == nil {
		return ""
	}
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)
	labelStyle := lipgloss.NewStyle().Width(labelWidth).Background(lipgloss.Color(bgColor))

	title := "New " + strings.TrimSuffix(strings.ToLower(m.form.tab.String()), "s") + " request"
	if m.form.tab == dashboard.Timesheets {
		title = "New timesheet entry"
	}
	if m.form.tab == dashboard.Profile {
		title = "Edit profile"
	}

	lines := []string{bg.Render(title, styles.AccentText.Bold(true)), ""}
	for i, name := range m.form.fields {
		labelText := styles.MutedText
		marker := "  "
		if i == m.form.focus {
			labelText = styles.AccentText
			marker = "> "
		}
		label := labelStyle.Render(bg.Render(marker+fieldLabel(name), labelText))
		var value string
		if name == leaveTypeField {
			value = bg.Render("< "+m.form.inputs[i].Value()+" >", styles.Text)
		} else {
			value = m.form.inputs[i].View()
		}
		lines = append(lines, bg.FillLine(label+value, width))
	}

	hint := "tab: next field · ctrl+s: submit · esc: cancel"
	if m.submitting {
		hint = "Submitting..."
	}
	lines = append(lines, "", bg.Render(hint, styles.FaintText))
	return strings.Join(lines, "\n")
}
