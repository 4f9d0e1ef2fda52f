// Package state tracks the fetched collection of each view.
//
// # Overview
//
// Every view that shows remote jokes owns a Feed. The Feed remembers the last
// collection that arrived, whether a fetch is in flight, and the error of the
// last failed fetch. The UI reads it through Snapshot.
//
// # Sequencing
//
// A user can submit a new filter while a previous fetch is still running, and
// responses may arrive out of order. Begin hands out a sequence number that
// the fetch carries back with its result:
//
//	seq := feed.Begin()          // Loading = true
//	go fetch(..., seq)
//	...
//	feed.Complete(seq, jokes, err)
//
// Complete ignores any sequence other than the newest one. The newest fetch
// always clears Loading, whether it succeeded or not.
//
// # Update Semantics
//
//	// Success: replace the collection
//	feed.Complete(seq, jokes, nil)
//	→ snapshot.Raw = jokes
//	→ snapshot.LastError = nil
//
//	// Failure: keep the old collection, record the error
//	feed.Complete(seq, nil, err)
//	→ snapshot.Raw = <unchanged>
//	→ snapshot.LastError = err
//	→ snapshot.ConsecutiveFailures++
//
// # Concurrency Model
//
// A Feed is guarded by a sync.RWMutex and returns snapshots by value with the
// joke slice cloned. In the application only the Bubble Tea update loop calls
// Begin and Complete; fetch commands never touch the Feed directly.
//
// The zero value is ready to use.
package state
