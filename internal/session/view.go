package session

import "strings"

// View identifies one of the joke lists.
type View int

const (
	ViewJokes View = iota
	ViewRandom
	ViewFavorites
)

// Views lists every view in navigation order.
var Views = []View{ViewJokes, ViewRandom, ViewFavorites}

func (v View) String() string {
	switch v {
	case ViewJokes:
		return "jokes"
	case ViewRandom:
		return "random"
	case ViewFavorites:
		return "favorites"
	default:
		return "unknown"
	}
}

// Title is the heading shown for the view.
func (v View) Title() string {
	switch v {
	case ViewJokes:
		return "Jokes"
	case ViewRandom:
		return "Random"
	case ViewFavorites:
		return "Favorites"
	default:
		return ""
	}
}

// Remote reports whether the view is filled from the joke service.
func (v View) Remote() bool {
	return v == ViewJokes || v == ViewRandom
}

// ParseView maps a name to a View. "dashboard" is accepted for the jokes view.
func ParseView(name string) (View, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "jokes", "dashboard", "":
		return ViewJokes, true
	case "random":
		return ViewRandom, true
	case "favorites", "favourites":
		return ViewFavorites, true
	default:
		return ViewJokes, false
	}
}
