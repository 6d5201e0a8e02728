// Package config loads the emphub client configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/emphub/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. EMPHUB_API_URL and EMPHUB_SESSION_DIR override the result
//
// # Default Values
//
//   - API root: http://localhost:5000/api
//   - Session directory: ~/.local/share/emphub/session
//   - Log file: ~/.local/state/emphub/emphub.log
//   - Request timeout: 10 seconds
//
// # TOML Format
//
//	api_url = "http://localhost:5000/api"
//	session_dir = "~/.local/share/emphub/session"
//	log_file = "~/.local/state/emphub/emphub.log"
//	timeout_seconds = 10
//
// All fields are optional. Tilde expansion uses go-homedir.
//
// # Error Handling
//
// Missing config files are not an error. Unreadable files, invalid TOML and
// negative timeouts are.
package config
