// Package ui provides the terminal interface of norris, built on Bubble Tea.
//
// # Layout
//
// The screen has three parts:
//
//   - Header: logo, view tabs and the fetch status of the current view
//   - Content: the joke list of the current view, drawn as cards
//   - Command bar: key hints, replaced by the latest notice after an action
//
// # Views
//
// Three views are available, switched with 1-3 or tab:
//
//   - Jokes: every joke the service returns for the current filter
//   - Random: a random draw of a chosen quantity
//   - Favorites: the stored favorites, filtered locally by category
//
// Remote views load the first time they are shown. Each fetch runs in a
// tea.Cmd and reports back as a fetchResultMsg; results of superseded
// fetches are discarded by the session.
//
// # Joke List
//
// The list is virtual. Card heights are estimated from the text extent, only
// the visible cards plus a small overscan are rendered, and the cursor is
// kept on screen by moving the first visible row as little as possible.
//
// # Filter Panel
//
// The filter panel (f) is a Modal. Esc closes it without changes, enter
// submits the filter. While the view is fetching, enter is ignored and the
// panel shows a spinner instead of Done.
//
// # Themes
//
// Themes are cycled with T. The chosen theme and the last view are saved to
// the preferences file.
package ui
