// Package dashboard wires the collections, forms and tabs for one signed-in
// user.
//
// A Dashboard owns three collections (leaves, timesheets and the static
// allocation list), one form per editable tab and a shared search query.
// Forms submit through their collection's Create, so a confirmed record is
// prepended before Submit returns and the next Filtered* call includes it.
// Gateway errors reach the user through api.UserMessage.
package dashboard
