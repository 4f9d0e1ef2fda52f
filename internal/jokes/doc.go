// Package jokes holds the joke collection rules shared by every view.
//
// # Overview
//
// A view shows a display list: the jokes fetched for its current filter, each
// annotated with whether it is a favorite. The package owns the pure pieces
// of that pipeline:
//
//   - Build turns the criteria from a filter panel into service query params.
//   - Reconcile merges a fetched collection with the favorite registry.
//   - Toggle flips a favorite in both the display list and the registry.
//   - FilterFavorites selects stored favorites by category.
//   - EstimateExtent sizes a joke for the virtual list.
//
// # Identity
//
// Remote ids are assigned per request and are not stable, so two jokes are the
// same favorite when their ContentKey matches. ContentKey strips markup,
// decodes entities and collapses whitespace; it is case sensitive.
//
// # Favorite flag
//
// The Favorite field of a Joke is derived. It is never persisted and is
// recomputed from the registry whenever a list is reconciled. Toggle keeps the
// flag and the registry in step for the list it is given.
package jokes
