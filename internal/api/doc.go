// Package api provides the HTTP client for the employee API.
//
// # Overview
//
// Client implements Gateway, the set of remote operations the dashboard
// needs: listing and creating leaves and timesheets, reading and saving the
// profile, and logging in. Wire records use snake_case JSON and are mapped
// to the model package types with dates normalized to YYYY-MM-DD.
//
// # Endpoints
//
//   - GET  /leaves/user/{id}, POST /leaves/apply
//   - GET  /timesheets/user/{id}, POST /timesheets/submit
//   - GET  /profile/user/{id}, POST /profile
//   - POST /users/login
//
// Create endpoints wrap the created record in {"leave": ...} or
// {"timesheet": ...}.
//
// # Errors
//
// Failures are returned as *Error with one of two kinds:
//
//   - KindTransport: the server could not be reached or a success response
//     could not be decoded. UserMessage yields ConnectionMessage.
//   - KindApplication: the server answered non-2xx. UserMessage yields the
//     body's "error" (or "message") field, or a per-operation fallback.
//
// The client never retries.
//
// # Metrics
//
// Every call is counted and timed on the emphub_gateway_* collectors,
// labelled by resource, operation and outcome. Use WithRegisterer to expose
// them; without it they are kept unregistered.
//
// # Collections
//
// Leaves, Timesheets and StaticAllocations adapt a Gateway to the state
// package's Source and Sink interfaces.
package api
