// Package session persists the logged-in user on disk.
//
// The user record is stored as JSON under a single diskv key. Load treats a
// missing or unreadable record as ErrUnauthenticated; callers route that to
// the login command instead of starting the dashboard.
package session
