// Package ui provides the terminal dashboard for emphub.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model holds only presentation state (the
// terminal size, theme, search input, open form inputs, selection and flash
// message); every record, draft and form lifecycle lives in the
// dashboard.Dashboard it is given. Network work runs in tea.Cmd functions
// and reports back as messages, so Update never blocks.
//
// # Package Structure
//
//   - app.go: Model, Update routing, commands and Run
//   - forms.go: text inputs mirroring the open form's draft
//   - header.go: header, tab bar, command bar and status line
//   - views.go: per-tab content and the titled box
//   - help.go: help overlay
//   - theme.go, style_helpers.go: colors and background-safe rendering
//
// # Key Bindings
//
//   - 1-5, tab/shift+tab: select tabs
//   - j/k, g/G: move the selection
//   - /: search the active tab (esc clears)
//   - n: open or close the tab's form; inside it ctrl+s submits, esc cancels,
//     left/right cycle the leave type
//   - r: reload, L: log out, T: cycle theme, ?: help, q/ctrl+c: quit
package ui
