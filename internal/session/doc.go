// Package session drives the three joke views.
//
// Each view exposes a display list, a loading flag and a way to submit a
// filter; any view can toggle a favorite. The Jokes and Random views are
// filled from the joke service: Submit starts a sequence-tagged fetch and
// returns a Request, the caller runs it off the UI goroutine with Run, and
// hands the Result back to Apply. The Favorites view is filtered locally from
// the registry and never fetches.
//
// Display lists are not cached. They are rebuilt from the last applied fetch
// and the favorites registry every time they are read.
package session
