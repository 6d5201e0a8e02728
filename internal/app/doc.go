// Package app provides the orchestration layer for emphub.
//
// # Overview
//
// This package wires together configuration, logging, the session store, the
// API client and the dashboard. It is the composition root shared by every
// CLI command.
//
// # Architecture
//
//  1. Load ~/.config/emphub/config.toml (or defaults plus env overrides)
//  2. Redirect the standard logger to the log file with tea.LogToFile
//  3. Open the diskv session store
//  4. Build the API client with a private prometheus registry
//  5. For the dashboard: load the stored user, fetch every collection, then
//     run the TUI until the user quits or logs out
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> Setup()             config, logging, session, client
//	       ├─────> Env.Dashboard()     requires a stored user
//	       ├─────> prefs.Load()        theme and last tab
//	       ├─────> Dashboard.LoadAll() concurrent initial fetch
//	       └─────> ui.Run()            Start TUI (blocks)
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file unreadable or invalid
//   - Session directory or log file cannot be created
//   - No stored session (ErrNotLoggedIn)
//
// Recoverable errors (logged, the dashboard keeps running):
//   - Collection and profile load failures
//   - Submit failures, which are shown in the status line
//   - Preference save failures
//
// On exit the request counters are written to the log.
package app
