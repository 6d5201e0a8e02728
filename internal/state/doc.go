// Package state holds the in-memory record collections behind the dashboard.
//
// # Overview
//
// A Collection keeps the confirmed records of one kind (leaves, timesheets,
// allocations) for the signed-in user. It is the coordination point between
// the gateway calls issued from UI commands and the render loop that reads
// the records back.
//
// # Load Semantics
//
// LoadInitial and Reload are fail-soft:
//
//	// Success: replace the sequence in server order
//	items := leaves.LoadInitial(ctx, user.ID)
//	→ snapshot.Items = fetched (first occurrence of each id kept)
//	→ snapshot.LastError = nil
//	→ snapshot.ConsecutiveFailures = 0
//
//	// Failure: keep the previous sequence, record the error
//	→ snapshot.Items = <unchanged, empty before the first success>
//	→ snapshot.LastError = err
//	→ snapshot.ConsecutiveFailures++
//
// The error is logged and kept on the snapshot for the status bar; it is
// never returned, so an unreachable backend shows an empty view rather than a
// broken one.
//
// # Create Semantics
//
// Create is the only mutation after a load. It forwards the payload to the
// Sink and, once the server confirms the record, prepends it under the write
// lock before returning. Any Items or Snapshot call made after Create returns
// sees the new record first. Records already held are never changed or
// removed. A collection built without a Sink is read-only and Create fails
// with ErrReadOnly.
//
// # Concurrency Model
//
// Collections use a readers-writer lock held only while copying slices, never
// during network I/O. Items and Snapshot return copies, so callers may keep
// or mutate them freely.
package state
