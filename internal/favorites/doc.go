// Package favorites keeps the user's favorite jokes across sessions.
//
// A Registry holds the favorites in memory, indexed by jokes.ContentKey, and
// writes a full snapshot to a Store after every change. Two stores exist:
// FileStore writes a JSON document and SQLiteStore writes a row in a key/value
// table. Both keep the snapshot under StorageKey.
//
// Loading never fails. Missing data loads as an empty set and malformed data
// is logged and treated the same way. A failed save is returned wrapped in
// ErrPersist after the in-memory change has been applied, so the session keeps
// working and at most the unsaved changes are lost.
package favorites
